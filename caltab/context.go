package caltab

import (
	"fmt"
	"sort"

	"github.com/pulsedrive/calres/axis"
)

// Context is the full tuple of active axis values for one build: exactly
// one member per configuration axis. A context is assembled once per
// resolution and never mutated afterwards.
type Context map[axis.Name]string

// NewContext builds a context from axis-name/member pairs as supplied by
// configuration files or flags. Unknown axis names are rejected here;
// missing axes and unknown members surface as ErrUndefinedAxis during
// Validate so that resolution reports them uniformly.
func NewContext(selections map[string]string) (Context, error) {
	ctx := make(Context, len(selections))
	for name, member := range selections {
		if _, ok := axis.Lookup(axis.Name(name)); !ok {
			return nil, fmt.Errorf("unknown axis %q in context", name)
		}
		ctx[axis.Name(name)] = member
	}
	return ctx, nil
}

// Validate checks that every axis is supplied with an enumerated member.
// Axes are checked in dependency order so the first failure is stable.
func (c Context) Validate() error {
	for _, a := range axis.All() {
		v, ok := c[a.Name]
		if !ok || v == "" {
			return &AxisError{Axis: a.Name}
		}
		if !a.Contains(v) {
			return &AxisError{Axis: a.Name, Value: v}
		}
	}
	return nil
}

// Tuple returns the coupled project-tuple selections.
func (c Context) Tuple() (project, performance, phase, market string) {
	return c[axis.Project], c[axis.Performance], c[axis.DevelopmentPhase], c[axis.Market]
}

// String renders the context in a stable order, for logs and error output.
func (c Context) String() string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, string(n))
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += n + "=" + c[axis.Name(n)]
	}
	return out
}
