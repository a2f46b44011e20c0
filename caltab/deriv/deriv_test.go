package deriv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_Builtins(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		formula string
		args    []float64
		want    float64
		delta   float64
	}{
		// 400 A sensor range resolves to the documented 0.24414 scale.
		{"current_sensor_scale", []float64{400}, 0.24414, 1e-9},
		{"current_sensor_scale", []float64{588.2353}, 0.35905, 1e-4},
		{"hv_batt_scale", []float64{900, 900}, 0.0012207, 1e-12},
		{"lv_batt_scale", []float64{36.3, 6.6, 29.7}, 0.0012207, 1e-12},
		// 2200 ns dead time compensates to 2.1 us.
		{"deadtime_comp", []float64{2200}, 2.1e-6, 1e-12},
		{"zcc_comp", []float64{400}, 20, 1e-12},
		{"zcc_comp_inv", []float64{400}, 0.05, 1e-12},
		{"observer_l1", []float64{376.99}, 1130.97, 1e-2},
		{"observer_l2", []float64{10}, 300, 1e-9},
		{"observer_l3", []float64{10}, 1000, 1e-9},
		{"identity", []float64{42}, 42, 0},
		{"product", []float64{6, 7}, 42, 0},
		{"difference", []float64{50, 8}, 42, 0},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			got, err := r.Eval(tt.formula, tt.args)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	r := NewRegistry()

	t.Run("unknown formula", func(t *testing.T) {
		_, err := r.Eval("no_such_formula", []float64{1})
		assert.Error(t, err)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		_, err := r.Eval("current_sensor_scale", []float64{1, 2})
		assert.Error(t, err)
	})
}

func TestRegister_Custom(t *testing.T) {
	r := NewRegistry()
	r.Register(Formula{
		Name:  "double",
		Arity: 1,
		Eval:  func(a []float64) float64 { return 2 * a[0] },
	})

	got, err := r.Eval("double", []float64{21})
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)

	_, ok := r.Lookup("double")
	assert.True(t, ok)
}
