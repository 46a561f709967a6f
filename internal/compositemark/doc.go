// Package compositemark expands high-level statistical summary marks into
// layered specifications of primitive marks plus a concrete transform
// pipeline.
//
// The expansion is a pure, synchronous lowering pass: one unit specification
// in, one layered specification out. It decides, from the encoding alone,
// which axis carries the summarized value, synthesizes the aggregate /
// bin / time-unit / calculate steps that derive the fields each primitive
// layer needs, and builds one layer per enabled visual part in a fixed
// drawing order.
//
// Non-fatal findings (dropped channels, ignored aggregates, unusual
// center/extent pairings) go to a diag.Reporter; the only fatal failure is
// an unresolvable orientation.
package compositemark
