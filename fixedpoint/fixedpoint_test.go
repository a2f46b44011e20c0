package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name  string
		coeff float64
		scale uint
		want  int32
	}{
		{"half at scale 4", 0.5, 4, 8},
		{"unity at scale 0", 1, 0, 1},
		{"negative", -0.25, 8, -64},
		{"resolver tracking gain K1", 0.5605666, 23, int32(math.Round(0.5605666 * (1 << 23)))},
		{"resolver tracking gain K2", 0.7535489, 23, int32(math.Round(0.7535489 * (1 << 23)))},
		{"gain update K1D", 0.64339817, 23, int32(math.Round(0.64339817 * (1 << 23)))},
		{"rounds to nearest", 0.3, 2, 1}, // 1.2 -> 1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quantize(tt.coeff, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantize_Overflow(t *testing.T) {
	t.Run("at the limit", func(t *testing.T) {
		// |K| must be strictly below 2^(31-scale).
		_, err := Quantize(2048, 20)
		require.Error(t, err)
		var oe *OverflowError
		assert.ErrorAs(t, err, &oe)
	})

	t.Run("just below the limit", func(t *testing.T) {
		got, err := Quantize(2047.5, 20)
		require.NoError(t, err)
		assert.Equal(t, int32(2047.5*(1<<20)), got)
	})

	t.Run("scale out of range", func(t *testing.T) {
		_, err := Quantize(0.5, 32)
		assert.Error(t, err)
	})

	t.Run("non-finite coefficient", func(t *testing.T) {
		_, err := Quantize(math.NaN(), 10)
		assert.Error(t, err)
		_, err = Quantize(math.Inf(1), 10)
		assert.Error(t, err)
	})
}

func TestRoundTrip_WithinOneULP(t *testing.T) {
	coeffs := []float64{0.5605666, 0.7535489, 0.64339817, 0.99471843, -0.333, 1.25}
	scales := []uint{4, 5, 6, 7, 16, 23}

	for _, k := range coeffs {
		for _, s := range scales {
			m, err := Quantize(k, s)
			require.NoError(t, err)
			back := Decode(m, s)
			assert.InDelta(t, k, back, ULP(s), "coeff %v scale %d", k, s)
		}
	}
}
