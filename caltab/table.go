package caltab

import (
	"fmt"

	"github.com/pulsedrive/calres/axis"
)

// Binding is one resolved name→value entry of the constant table. Scalar
// bindings hold exactly one value; per-target bindings hold one value per
// target identity, in global target order.
type Binding struct {
	Name      string
	Kind      Kind
	Unit      string
	Comment   string
	Origin    string // axis or section that bound it, empty for globals
	Derived   bool
	PerTarget bool
	Values    []Value
}

// Scalar returns the value of a scalar binding.
func (b Binding) Scalar() Value {
	if len(b.Values) == 0 {
		return Value{}
	}
	return b.Values[0]
}

// At returns the value for one target identity of a per-target binding.
func (b Binding) At(t axis.Target) Value {
	if int(t) < len(b.Values) {
		return b.Values[t]
	}
	return Value{}
}

// Equal reports bit-identical equality of two bindings.
func (b Binding) Equal(o Binding) bool {
	if b.Name != o.Name || b.Kind != o.Kind || b.PerTarget != o.PerTarget ||
		b.Derived != o.Derived || len(b.Values) != len(o.Values) {
		return false
	}
	for i := range b.Values {
		if !b.Values[i].Equal(o.Values[i]) {
			return false
		}
	}
	return true
}

// Table is the fully resolved, immutable constant table: a flat namespace
// of bindings in deterministic (dataset declaration) order. It is the whole
// contract exposed to the consuming control firmware.
type Table struct {
	order  []string
	byName map[string]Binding
}

func newTable() *Table {
	return &Table{byName: make(map[string]Binding)}
}

// NewTable builds a table from pre-resolved bindings, in the given order.
// Emitters and tests use it; resolution always goes through Resolve.
func NewTable(bindings ...Binding) (*Table, error) {
	t := newTable()
	for _, b := range bindings {
		if err := t.add(b); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(b Binding) error {
	if _, dup := t.byName[b.Name]; dup {
		return fmt.Errorf("duplicate binding %q", b.Name)
	}
	want := 1
	if b.PerTarget {
		want = axis.TargetCount
	}
	if len(b.Values) != want {
		return &ArityError{Binding: b.Name, Got: len(b.Values)}
	}
	t.order = append(t.order, b.Name)
	t.byName[b.Name] = b
	return nil
}

// Get returns the named binding.
func (t *Table) Get(name string) (Binding, bool) {
	b, ok := t.byName[name]
	return b, ok
}

// Names returns all binding names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of bindings.
func (t *Table) Len() int { return len(t.order) }

// Float returns the scalar numeric view of a binding, for verification and
// formula-style consumers.
func (t *Table) Float(name string) (float64, error) {
	b, ok := t.byName[name]
	if !ok {
		return 0, fmt.Errorf("no binding %q", name)
	}
	return b.Scalar().Float(), nil
}

// Equal reports whether two tables are bit-identical, including order.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() {
		return false
	}
	for i, name := range t.order {
		if o.order[i] != name {
			return false
		}
		if !t.byName[name].Equal(o.byName[name]) {
			return false
		}
	}
	return true
}
