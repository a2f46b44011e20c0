package dataset

import (
	"fmt"
	"strconv"

	"github.com/pulsedrive/calres/axis"
	"github.com/pulsedrive/calres/caltab"
)

// SchemaVersion is the document schema understood by this build.
const SchemaVersion = 1

// Document is one dataset YAML file. All top-level lists are optional so
// files can carry a single concern.
type Document struct {
	Version   int           `yaml:"version"`
	Axes      []AxisDoc     `yaml:"axes,omitempty"`
	Sections  []SectionDoc  `yaml:"sections,omitempty"`
	Constants []ConstantDoc `yaml:"constants,omitempty"`
	Derived   []DerivedDoc  `yaml:"derived,omitempty"`
}

// AxisDoc binds constants to the branches of one simple axis.
type AxisDoc struct {
	Axis     string      `yaml:"axis"`
	Branches []BranchDoc `yaml:"branches"`
}

// BranchDoc is one guarded constant set of a simple axis.
type BranchDoc struct {
	When      []string      `yaml:"when"`
	Constants []ConstantDoc `yaml:"constants"`
}

// SectionDoc groups project-tuple branches binding one constant cluster.
type SectionDoc struct {
	Name     string           `yaml:"name"`
	Branches []TupleBranchDoc `yaml:"branches"`
}

// TupleBranchDoc is one constant cluster guarded by the project tuple.
type TupleBranchDoc struct {
	When      GuardDoc      `yaml:"when"`
	Constants []ConstantDoc `yaml:"constants"`
}

// GuardDoc lists the tuple members a branch covers. Every list must be
// explicit; there is no wildcard.
type GuardDoc struct {
	Projects     []string `yaml:"projects"`
	Performances []string `yaml:"performances"`
	Phases       []string `yaml:"phases"`
	Markets      []string `yaml:"markets"`
}

// ConstantDoc is one literal constant. Scalars set value, per-target arrays
// set values with one entry per target in global target order.
type ConstantDoc struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Unit    string   `yaml:"unit,omitempty"`
	Comment string   `yaml:"comment,omitempty"`
	Value   string   `yaml:"value,omitempty"`
	Values  []string `yaml:"values,omitempty"`
}

// DerivedDoc declares a derived constant. Inputs hold one row of terms for
// scalars and one row per target for per-target derivations; each term is a
// binding name or a numeric literal.
type DerivedDoc struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"`
	Unit      string     `yaml:"unit,omitempty"`
	Comment   string     `yaml:"comment,omitempty"`
	Formula   string     `yaml:"formula"`
	Scale     uint       `yaml:"scale,omitempty"`
	PerTarget bool       `yaml:"per_target,omitempty"`
	Inputs    [][]string `yaml:"inputs"`
}

// Compile merges documents in order into a single resolver dataset. Axes
// and sections sharing a name across documents have their branches
// concatenated; constants and derived definitions are appended.
func Compile(docs ...Document) (*caltab.Dataset, error) {
	ds := &caltab.Dataset{}
	axisIdx := make(map[axis.Name]int)
	sectionIdx := make(map[string]int)

	for _, doc := range docs {
		if doc.Version != SchemaVersion {
			return nil, fmt.Errorf("unsupported document version %d, want %d", doc.Version, SchemaVersion)
		}

		for _, ad := range doc.Axes {
			name := axis.Name(ad.Axis)
			branches, err := compileBranches(ad)
			if err != nil {
				return nil, err
			}
			if i, ok := axisIdx[name]; ok {
				ds.Axes[i].Branches = append(ds.Axes[i].Branches, branches...)
				continue
			}
			axisIdx[name] = len(ds.Axes)
			ds.Axes = append(ds.Axes, caltab.AxisBranches{Axis: name, Branches: branches})
		}

		for _, sd := range doc.Sections {
			branches, err := compileTupleBranches(sd)
			if err != nil {
				return nil, err
			}
			if i, ok := sectionIdx[sd.Name]; ok {
				ds.Sections[i].Branches = append(ds.Sections[i].Branches, branches...)
				continue
			}
			sectionIdx[sd.Name] = len(ds.Sections)
			ds.Sections = append(ds.Sections, caltab.Section{Name: sd.Name, Branches: branches})
		}

		for _, cd := range doc.Constants {
			b, err := compileConstant(cd)
			if err != nil {
				return nil, err
			}
			ds.Constants = append(ds.Constants, b)
		}

		for _, dd := range doc.Derived {
			def, err := compileDerived(dd)
			if err != nil {
				return nil, err
			}
			ds.Derived = append(ds.Derived, def)
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func compileBranches(ad AxisDoc) ([]caltab.Branch, error) {
	out := make([]caltab.Branch, 0, len(ad.Branches))
	for _, bd := range ad.Branches {
		constants, err := compileConstants(bd.Constants)
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", ad.Axis, err)
		}
		out = append(out, caltab.Branch{When: bd.When, Constants: constants})
	}
	return out, nil
}

func compileTupleBranches(sd SectionDoc) ([]caltab.TupleBranch, error) {
	out := make([]caltab.TupleBranch, 0, len(sd.Branches))
	for _, bd := range sd.Branches {
		constants, err := compileConstants(bd.Constants)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sd.Name, err)
		}
		out = append(out, caltab.TupleBranch{
			When: caltab.TupleGuard{
				Projects:     bd.When.Projects,
				Performances: bd.When.Performances,
				Phases:       bd.When.Phases,
				Markets:      bd.When.Markets,
			},
			Constants: constants,
		})
	}
	return out, nil
}

func compileConstants(docs []ConstantDoc) ([]caltab.Binding, error) {
	out := make([]caltab.Binding, 0, len(docs))
	for _, cd := range docs {
		b, err := compileConstant(cd)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func compileConstant(cd ConstantDoc) (caltab.Binding, error) {
	kind, err := caltab.ParseKind(cd.Type)
	if err != nil {
		return caltab.Binding{}, fmt.Errorf("constant %q: %w", cd.Name, err)
	}
	b := caltab.Binding{
		Name:    cd.Name,
		Kind:    kind,
		Unit:    cd.Unit,
		Comment: cd.Comment,
	}
	switch {
	case cd.Value != "" && len(cd.Values) > 0:
		return caltab.Binding{}, fmt.Errorf("constant %q: value and values are exclusive", cd.Name)
	case cd.Value != "":
		v, err := caltab.ParseLiteral(kind, cd.Value)
		if err != nil {
			return caltab.Binding{}, fmt.Errorf("constant %q: %w", cd.Name, err)
		}
		b.Values = []caltab.Value{v}
	case len(cd.Values) > 0:
		b.PerTarget = true
		for _, raw := range cd.Values {
			v, err := caltab.ParseLiteral(kind, raw)
			if err != nil {
				return caltab.Binding{}, fmt.Errorf("constant %q: %w", cd.Name, err)
			}
			b.Values = append(b.Values, v)
		}
	default:
		return caltab.Binding{}, fmt.Errorf("constant %q: no value", cd.Name)
	}
	return b, nil
}

func compileDerived(dd DerivedDoc) (caltab.DerivedDef, error) {
	kind, err := caltab.ParseKind(dd.Type)
	if err != nil {
		return caltab.DerivedDef{}, fmt.Errorf("derived %q: %w", dd.Name, err)
	}
	def := caltab.DerivedDef{
		Name:      dd.Name,
		Kind:      kind,
		Unit:      dd.Unit,
		Comment:   dd.Comment,
		Formula:   dd.Formula,
		Scale:     dd.Scale,
		PerTarget: dd.PerTarget,
	}
	for _, row := range dd.Inputs {
		terms := make([]caltab.Term, 0, len(row))
		for _, raw := range row {
			terms = append(terms, parseTerm(raw))
		}
		def.Inputs = append(def.Inputs, terms)
	}
	return def, nil
}

// parseTerm reads an input term: anything that parses as a float is a
// literal, everything else references a binding by name.
func parseTerm(raw string) caltab.Term {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return caltab.Term{Lit: f, IsLit: true}
	}
	return caltab.Term{Ref: raw}
}
