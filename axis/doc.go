// Package axis defines the configuration axes of an inverter calibration
// build: closed enumerations of gate-IC, power-module and sensor variants,
// and the coupled project/performance/phase/market tuple that jointly
// selects project-specific constant clusters.
//
// Every axis has a closed member set fixed at compile time. There are no
// implicit defaults: a resolution context must name exactly one member per
// axis, and an unknown or missing member is a hard resolution failure.
package axis
