// Package deriv holds the named pure formulas that compute derived
// calibration constants from resolved literals. Expressing each derivation
// as a registered named function keeps the arithmetic testable apart from
// any specific axis resolution.
package deriv

import (
	"fmt"
	"math"
	"sync"
)

// Formula computes one derived value from resolved numeric inputs.
type Formula struct {
	// Name is the identifier dataset documents reference.
	Name string
	// Arity is the required input count.
	Arity int
	// Eval computes the value. Inputs are guaranteed to match Arity.
	Eval func(args []float64) float64
}

// Registry manages derivation formulas by name.
type Registry struct {
	mu       sync.RWMutex
	formulas map[string]Formula
}

// DefaultRegistry is the global registry with the built-in formulas.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a registry populated with the built-in formulas.
func NewRegistry() *Registry {
	r := &Registry{formulas: make(map[string]Formula)}
	for _, f := range builtins {
		r.Register(f)
	}
	return r
}

// Register adds or replaces a formula.
func (r *Registry) Register(f Formula) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formulas[f.Name] = f
}

// Lookup returns the named formula.
func (r *Registry) Lookup(name string) (Formula, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formulas[name]
	return f, ok
}

// Eval runs the named formula against the given inputs.
func (r *Registry) Eval(name string, args []float64) (float64, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown formula %q", name)
	}
	if len(args) != f.Arity {
		return 0, fmt.Errorf("formula %q: %d inputs, want %d", name, len(args), f.Arity)
	}
	return f.Eval(args), nil
}

// Calibration derivation constants. The ADC scale factors are fixed by the
// 12-bit converter span (2 V / 4096 counts for current, 5 V / 4096 counts
// for voltage); the dead-time compensation subtracts the fixed 100 ns gate
// propagation share before converting to seconds.
const (
	currentADCScale = 0.00061035
	voltageADCScale = 0.0012207
	deadTimeFixedNs = 100.0
	nanosPerSecond  = 1e-9
	zeroCrossFrac   = 0.05
)

var builtins = []Formula{
	{
		Name:  "current_sensor_scale",
		Arity: 1,
		Eval:  func(a []float64) float64 { return a[0] * currentADCScale },
	},
	{
		Name:  "hv_batt_scale",
		Arity: 2, // range, typical range
		Eval:  func(a []float64) float64 { return (a[0] / a[1]) * voltageADCScale },
	},
	{
		Name:  "lv_batt_scale",
		Arity: 3, // range, offset, typical range
		Eval:  func(a []float64) float64 { return ((a[0] - a[1]) / a[2]) * voltageADCScale },
	},
	{
		Name:  "deadtime_comp",
		Arity: 1, // dead time [ns]
		Eval:  func(a []float64) float64 { return (a[0] - deadTimeFixedNs) * nanosPerSecond },
	},
	{
		Name:  "zcc_comp",
		Arity: 1, // sensor range [A]
		Eval:  func(a []float64) float64 { return a[0] * zeroCrossFrac },
	},
	{
		Name:  "zcc_comp_inv",
		Arity: 1, // sensor range [A]
		Eval:  func(a []float64) float64 { return 1 / (a[0] * zeroCrossFrac) },
	},
	{
		Name:  "observer_l1",
		Arity: 1, // observer bandwidth [rad/s]
		Eval:  func(a []float64) float64 { return 3 * a[0] },
	},
	{
		Name:  "observer_l2",
		Arity: 1,
		Eval:  func(a []float64) float64 { return 3 * a[0] * a[0] },
	},
	{
		Name:  "observer_l3",
		Arity: 1,
		Eval:  func(a []float64) float64 { return math.Pow(a[0], 3) },
	},
	{
		Name:  "identity",
		Arity: 1,
		Eval:  func(a []float64) float64 { return a[0] },
	},
	{
		Name:  "product",
		Arity: 2,
		Eval:  func(a []float64) float64 { return a[0] * a[1] },
	},
	{
		Name:  "difference",
		Arity: 2,
		Eval:  func(a []float64) float64 { return a[0] - a[1] },
	},
}
