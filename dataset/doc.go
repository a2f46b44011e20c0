// Package dataset loads calibration dataset documents from YAML and
// compiles them into the resolver's dataset model. Documents are additive:
// a dataset may be split across files by concern (axes, project sections,
// globals) and merged in sorted filename order. The canonical calibration
// content ships embedded in the binary; external documents loaded through
// glob patterns extend or replace it for local experiments.
package dataset
