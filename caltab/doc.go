// Package caltab resolves a build configuration into a calibration-constant
// binding table.
//
// A resolution context supplies exactly one member per configuration axis
// (see package axis). Resolution selects the unique literal branch per axis,
// binds the coupled project-tuple clusters, evaluates derived constants in
// dependency order through the formula registry (package caltab/deriv), and
// applies checked fixed-point conversions (package fixedpoint).
//
// Resolution is a pure function of the context and dataset: identical inputs
// produce identical tables. It is also all-or-nothing: the first
// configuration error aborts resolution and no partial table is ever
// returned, because the consuming firmware assumes every constant it reads
// was intentionally calibrated.
package caltab
