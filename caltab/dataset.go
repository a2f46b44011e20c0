package caltab

import (
	"fmt"
	"sort"

	"github.com/pulsedrive/calres/axis"
	"github.com/pulsedrive/calres/caltab/deriv"
)

// FixedPointFormula is the reserved formula name for checked fixed-point
// quantization of a gain coefficient. It is evaluated by the resolver
// itself rather than the deriv registry because its result is an integer
// mantissa with a mandatory overflow check.
const FixedPointFormula = "fixed_point"

// Branch is one literal set of a simple axis: the constants bound when the
// context value for the axis is one of When.
type Branch struct {
	When      []string
	Constants []Binding
}

// AxisBranches holds every branch of one simple axis.
type AxisBranches struct {
	Axis     axis.Name
	Branches []Branch
}

// TupleGuard is the joint guard of a project-tuple branch. A context
// matches when each of its four tuple selections is listed. Guards are
// explicit: an empty list never matches.
type TupleGuard struct {
	Projects     []string
	Performances []string
	Phases       []string
	Markets      []string
}

func contains(list []string, v string) bool {
	for _, m := range list {
		if m == v {
			return true
		}
	}
	return false
}

// Matches reports whether the guard covers the context's project tuple.
func (g TupleGuard) Matches(ctx Context) bool {
	project, performance, phase, market := ctx.Tuple()
	return contains(g.Projects, project) &&
		contains(g.Performances, performance) &&
		contains(g.Phases, phase) &&
		contains(g.Markets, market)
}

// TupleBranch is one constant cluster selected by a project-tuple guard.
type TupleBranch struct {
	When      TupleGuard
	Constants []Binding
}

// Section groups the project-tuple branches that bind one cluster of
// constants. Within a section exactly one branch must match any valid
// context; sections keep independent concerns (current-control selection,
// market-split torque compensation) separately guarded.
type Section struct {
	Name     string
	Branches []TupleBranch
}

// Term is one derivation input: either a reference to another binding or a
// numeric literal.
type Term struct {
	Ref   string
	Lit   float64
	IsLit bool
}

// DerivedDef declares a derived binding: a named formula applied to
// resolved inputs. Per-target derived bindings carry one input row per
// target identity.
type DerivedDef struct {
	Name      string
	Kind      Kind
	Unit      string
	Comment   string
	Formula   string
	Scale     uint // fixed_point only
	PerTarget bool
	Inputs    [][]Term // one row for scalars, TargetCount rows per-target
}

// Dataset is the compiled calibration dataset: every axis branch, tuple
// section, global literal and derived definition, in declaration order.
type Dataset struct {
	Axes      []AxisBranches
	Sections  []Section
	Constants []Binding
	Derived   []DerivedDef

	// Formulas resolves derivation formula names. Nil means the default
	// registry.
	Formulas *deriv.Registry
}

func (d *Dataset) registry() *deriv.Registry {
	if d.Formulas != nil {
		return d.Formulas
	}
	return deriv.DefaultRegistry
}

// Validate checks the dataset's internal consistency: known axes and
// members, per-target literal arity, known formulas and plausible input
// rows. Context-dependent failures (unmatched branches, cycles) surface at
// resolution instead.
func (d *Dataset) Validate() error {
	for _, ab := range d.Axes {
		a, ok := axis.Lookup(ab.Axis)
		if !ok {
			return fmt.Errorf("dataset: unknown axis %q", ab.Axis)
		}
		if axis.IsTupleAxis(ab.Axis) {
			return fmt.Errorf("dataset: tuple axis %q must use project sections", ab.Axis)
		}
		seen := make(map[string]bool)
		var nameSet []string
		for i, br := range ab.Branches {
			if len(br.When) == 0 {
				return fmt.Errorf("dataset: axis %q: branch without guard", ab.Axis)
			}
			for _, m := range br.When {
				if !a.Contains(m) {
					return fmt.Errorf("dataset: axis %q: unknown member %q", ab.Axis, m)
				}
				if seen[m] {
					return fmt.Errorf("dataset: axis %q: member %q guarded twice", ab.Axis, m)
				}
				seen[m] = true
			}
			if err := validateLiterals(br.Constants); err != nil {
				return fmt.Errorf("dataset: axis %q: %w", ab.Axis, err)
			}
			// Every branch of one axis must bind the same constants, so the
			// resolved namespace does not depend on which branch matched.
			names := bindingNames(br.Constants)
			if i == 0 {
				nameSet = names
			} else if !equalStrings(nameSet, names) {
				return fmt.Errorf("dataset: axis %q: branches bind different constant sets", ab.Axis)
			}
		}
	}

	for _, sec := range d.Sections {
		if sec.Name == "" {
			return fmt.Errorf("dataset: project section without name")
		}
		for _, br := range sec.Branches {
			g := br.When
			if len(g.Projects) == 0 || len(g.Performances) == 0 ||
				len(g.Phases) == 0 || len(g.Markets) == 0 {
				return fmt.Errorf("dataset: section %q: guard lists must be explicit and non-empty", sec.Name)
			}
			if err := validateGuardMembers(g); err != nil {
				return fmt.Errorf("dataset: section %q: %w", sec.Name, err)
			}
			if err := validateLiterals(br.Constants); err != nil {
				return fmt.Errorf("dataset: section %q: %w", sec.Name, err)
			}
		}
	}

	if err := validateLiterals(d.Constants); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	reg := d.registry()
	for _, def := range d.Derived {
		if def.Name == "" {
			return fmt.Errorf("dataset: derived binding without name")
		}
		wantRows := 1
		if def.PerTarget {
			wantRows = axis.TargetCount
		}
		if len(def.Inputs) != wantRows {
			return &ArityError{Binding: def.Name, Got: len(def.Inputs)}
		}
		if def.Formula == FixedPointFormula {
			if def.Kind != I32 {
				return fmt.Errorf("dataset: derived %q: fixed_point requires i32, got %s", def.Name, def.Kind)
			}
			if def.Scale > 31 {
				return fmt.Errorf("dataset: derived %q: fixed_point scale %d out of range", def.Name, def.Scale)
			}
			for _, row := range def.Inputs {
				if len(row) != 1 {
					return fmt.Errorf("dataset: derived %q: fixed_point takes one coefficient input", def.Name)
				}
			}
			continue
		}
		f, ok := reg.Lookup(def.Formula)
		if !ok {
			return fmt.Errorf("dataset: derived %q: unknown formula %q", def.Name, def.Formula)
		}
		for _, row := range def.Inputs {
			if len(row) != f.Arity {
				return fmt.Errorf("dataset: derived %q: formula %q wants %d inputs, got %d",
					def.Name, def.Formula, f.Arity, len(row))
			}
		}
	}
	return nil
}

func bindingNames(bindings []Binding) []string {
	out := make([]string, len(bindings))
	for i, b := range bindings {
		out[i] = b.Name
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func validateLiterals(bindings []Binding) error {
	for _, b := range bindings {
		if b.Name == "" {
			return fmt.Errorf("constant without name")
		}
		if _, ok := kindNames[b.Kind]; !ok {
			return fmt.Errorf("constant %q: invalid kind", b.Name)
		}
		want := 1
		if b.PerTarget {
			want = axis.TargetCount
		}
		if len(b.Values) != want {
			return &ArityError{Binding: b.Name, Got: len(b.Values)}
		}
	}
	return nil
}

func validateGuardMembers(g TupleGuard) error {
	checks := []struct {
		axis    axis.Name
		members []string
	}{
		{axis.Project, g.Projects},
		{axis.Performance, g.Performances},
		{axis.DevelopmentPhase, g.Phases},
		{axis.Market, g.Markets},
	}
	for _, c := range checks {
		a, _ := axis.Lookup(c.axis)
		for _, m := range c.members {
			if !a.Contains(m) {
				return fmt.Errorf("axis %q: unknown member %q in guard", c.axis, m)
			}
		}
	}
	return nil
}
