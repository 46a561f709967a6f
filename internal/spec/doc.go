// Package spec models the declarative chart-specification documents that vizc
// consumes and produces.
//
// Input documents are unit specifications: a mark, an encoding that maps
// visual channels to data fields or constants, and an open set of sibling
// fields (data reference, title, selections) the compiler must not interpret.
// Output documents are layered specifications: the same sibling fields plus a
// transform pipeline and an ordered list of primitive layers.
//
// The package round-trips unknown JSON faithfully. Every known record keeps
// an Extra map of raw fields so scale, axis and legend blocks survive
// compilation untouched, and marshalling emits keys in a deterministic order
// so compiled output is stable and golden-testable.
package spec
