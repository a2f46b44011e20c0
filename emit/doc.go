// Package emit renders resolved constant tables into the artifacts the
// firmware build consumes: a C header/source pair with one const object per
// binding, and a YAML report for review tooling. Every artifact carries a
// generation block naming the run, the dataset source and the context, so a
// checked-in file can always be traced back to its inputs.
package emit
