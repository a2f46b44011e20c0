package caltab

import (
	"fmt"

	"github.com/pulsedrive/calres/axis"
	"github.com/pulsedrive/calres/caltab/deriv"
	"github.com/pulsedrive/calres/fixedpoint"
)

// Resolve computes the complete constant table for one context. Resolution
// is pure and all-or-nothing: the same dataset and context always produce a
// bit-identical table, and any failure returns a nil table with an error
// matching exactly one of the category sentinels.
//
// Bindings resolve in a fixed order: project-tuple sections first, then the
// hardware axes in dependency order, then unconditional constants, then
// derived bindings in declaration order.
func Resolve(ds *Dataset, ctx Context) (*Table, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}

	tab := newTable()

	if err := resolveSections(ds, ctx, tab); err != nil {
		return nil, err
	}
	if err := resolveAxes(ds, ctx, tab); err != nil {
		return nil, err
	}
	for _, b := range ds.Constants {
		if err := tab.add(b); err != nil {
			return nil, err
		}
	}
	if err := resolveDerived(ds, tab); err != nil {
		return nil, err
	}
	return tab, nil
}

func resolveSections(ds *Dataset, ctx Context, tab *Table) error {
	project, _, _, _ := ctx.Tuple()
	for _, sec := range ds.Sections {
		matched := -1
		for i, br := range sec.Branches {
			if !br.When.Matches(ctx) {
				continue
			}
			if matched >= 0 {
				return fmt.Errorf("section %q: branches %d and %d both match context %s",
					sec.Name, matched, i, ctx)
			}
			matched = i
		}
		if matched < 0 {
			return &AxisError{Axis: axis.Project, Value: project, Section: sec.Name}
		}
		for _, b := range sec.Branches[matched].Constants {
			b.Origin = sec.Name
			if err := tab.add(b); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveAxes(ds *Dataset, ctx Context, tab *Table) error {
	byAxis := make(map[axis.Name]AxisBranches, len(ds.Axes))
	for _, ab := range ds.Axes {
		byAxis[ab.Axis] = ab
	}
	// Iterate the global axis order, not the dataset's, so binding order is
	// independent of document layout.
	for _, a := range axis.All() {
		if axis.IsTupleAxis(a.Name) {
			continue
		}
		ab, ok := byAxis[a.Name]
		if !ok {
			continue // dataset binds nothing on this axis
		}
		member := ctx[a.Name]
		matched := -1
		for i, br := range ab.Branches {
			if contains(br.When, member) {
				matched = i
				break
			}
		}
		if matched < 0 {
			return &AxisError{Axis: a.Name, Value: member}
		}
		for _, b := range ab.Branches[matched].Constants {
			b.Origin = string(a.Name)
			if err := tab.add(b); err != nil {
				return err
			}
		}
	}
	return nil
}

// derivState tracks DFS progress over the derivation graph.
type derivState uint8

const (
	derivPending derivState = iota
	derivVisiting
	derivDone
)

func resolveDerived(ds *Dataset, tab *Table) error {
	defs := make(map[string]*DerivedDef, len(ds.Derived))
	for i := range ds.Derived {
		def := &ds.Derived[i]
		if _, dup := defs[def.Name]; dup {
			return fmt.Errorf("duplicate derived binding %q", def.Name)
		}
		defs[def.Name] = def
	}

	reg := ds.registry()
	states := make(map[string]derivState, len(defs))
	resolved := make(map[string]Binding, len(defs))
	var stack []string

	var eval func(def *DerivedDef) error
	eval = func(def *DerivedDef) error {
		switch states[def.Name] {
		case derivDone:
			return nil
		case derivVisiting:
			return &DependencyError{Binding: def.Name, Cycle: cycleFrom(stack, def.Name)}
		}
		states[def.Name] = derivVisiting
		stack = append(stack, def.Name)
		defer func() { stack = stack[:len(stack)-1] }()

		values := make([]Value, 0, len(def.Inputs))
		for row, terms := range def.Inputs {
			args := make([]float64, 0, len(terms))
			for _, t := range terms {
				f, err := termValue(def, t, row, tab, resolved, defs, eval)
				if err != nil {
					return err
				}
				args = append(args, f)
			}
			v, err := evalRow(def, args, reg)
			if err != nil {
				return err
			}
			values = append(values, v)
		}

		resolved[def.Name] = Binding{
			Name:      def.Name,
			Kind:      def.Kind,
			Unit:      def.Unit,
			Comment:   def.Comment,
			Origin:    def.Formula,
			Derived:   true,
			PerTarget: def.PerTarget,
			Values:    values,
		}
		states[def.Name] = derivDone
		return nil
	}

	for i := range ds.Derived {
		if err := eval(&ds.Derived[i]); err != nil {
			return err
		}
	}
	// Tables keep declaration order regardless of evaluation order.
	for _, def := range ds.Derived {
		if err := tab.add(resolved[def.Name]); err != nil {
			return err
		}
	}
	return nil
}

func termValue(def *DerivedDef, t Term, row int, tab *Table,
	resolved map[string]Binding, defs map[string]*DerivedDef,
	eval func(*DerivedDef) error) (float64, error) {

	if t.IsLit {
		return t.Lit, nil
	}
	b, ok := tab.Get(t.Ref)
	if !ok {
		b, ok = resolved[t.Ref]
	}
	if !ok {
		dep, known := defs[t.Ref]
		if !known {
			return 0, &DependencyError{Binding: def.Name, Ref: t.Ref}
		}
		if err := eval(dep); err != nil {
			return 0, err
		}
		b = resolved[t.Ref]
	}
	if b.PerTarget {
		if !def.PerTarget {
			return 0, &DependencyError{Binding: def.Name, Ref: t.Ref}
		}
		return b.At(axis.Target(row)).Float(), nil
	}
	return b.Scalar().Float(), nil
}

func evalRow(def *DerivedDef, args []float64, reg *deriv.Registry) (Value, error) {
	if def.Formula == FixedPointFormula {
		m, err := fixedpoint.Quantize(args[0], def.Scale)
		if err != nil {
			return Value{}, &RangeError{Binding: def.Name, Kind: def.Kind, Detail: err.Error()}
		}
		return IntValue(I32, int64(m)), nil
	}
	res, err := reg.Eval(def.Formula, args)
	if err != nil {
		return Value{}, &DependencyError{Binding: def.Name, Ref: def.Formula}
	}
	v, err := FromFloat(def.Kind, res)
	if err != nil {
		return Value{}, &RangeError{Binding: def.Name, Kind: def.Kind, Detail: err.Error()}
	}
	return v, nil
}

func cycleFrom(stack []string, name string) []string {
	for i, n := range stack {
		if n == name {
			out := make([]string, 0, len(stack)-i+1)
			out = append(out, stack[i:]...)
			return append(out, name)
		}
	}
	return append([]string{}, name)
}
