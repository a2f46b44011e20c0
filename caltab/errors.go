package caltab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pulsedrive/calres/axis"
)

// Configuration error categories. Every resolution failure matches exactly
// one of these sentinels via errors.Is; the concrete error types below carry
// the detail. All of them are build-stage failures: there is no recovery and
// no default substitution.
var (
	// ErrUndefinedAxis marks a context axis that was not supplied, or whose
	// value matched no branch of the dataset.
	ErrUndefinedAxis = errors.New("undefined axis")

	// ErrUnresolvedDependency marks a derived binding referencing an unknown
	// binding or participating in a derivation cycle.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrArityMismatch marks a per-target array that does not supply exactly
	// one entry per target identity.
	ErrArityMismatch = errors.New("per-target arity mismatch")

	// ErrRangeOverflow marks a computed value that exceeds the representable
	// range of its declared width.
	ErrRangeOverflow = errors.New("range overflow")
)

// AxisError reports a missing or unmatched configuration axis.
type AxisError struct {
	Axis    axis.Name
	Value   string // supplied member, empty when the axis was never supplied
	Section string // tuple section name, for project-tuple failures
}

func (e *AxisError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "undefined axis %q", e.Axis)
	if e.Value != "" {
		fmt.Fprintf(&b, ": no branch matches value %q", e.Value)
	} else {
		b.WriteString(": no value supplied")
	}
	if e.Section != "" {
		fmt.Fprintf(&b, " (section %q)", e.Section)
	}
	return b.String()
}

func (e *AxisError) Is(target error) bool { return target == ErrUndefinedAxis }

// DependencyError reports an unresolvable or cyclic derived binding.
type DependencyError struct {
	Binding string
	Ref     string   // the missing reference, empty for cycles
	Cycle   []string // derivation cycle, when one was detected
}

func (e *DependencyError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("derived binding %q: derivation cycle %s",
			e.Binding, strings.Join(e.Cycle, " -> "))
	}
	return fmt.Sprintf("derived binding %q: unresolved reference %q", e.Binding, e.Ref)
}

func (e *DependencyError) Is(target error) bool { return target == ErrUnresolvedDependency }

// ArityError reports a per-target array with the wrong entry count.
type ArityError struct {
	Binding string
	Got     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("binding %q: %d per-target entries, want %d", e.Binding, e.Got, axis.TargetCount)
}

func (e *ArityError) Is(target error) bool { return target == ErrArityMismatch }

// RangeError reports a computed value outside its declared width.
type RangeError struct {
	Binding string
	Kind    Kind
	Detail  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("binding %q (%s): %s", e.Binding, e.Kind, e.Detail)
}

func (e *RangeError) Is(target error) bool { return target == ErrRangeOverflow }
