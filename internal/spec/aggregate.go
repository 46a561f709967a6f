package spec

// aggregateOps is the closed set of aggregate operators the transform
// pipeline understands. Composite mark keywords ("errorbar") are not in this
// set; they are reserved orientation markers, not executable operators.
var aggregateOps = map[string]bool{
	"count":     true,
	"valid":     true,
	"missing":   true,
	"distinct":  true,
	"sum":       true,
	"product":   true,
	"mean":      true,
	"average":   true,
	"variance":  true,
	"variancep": true,
	"stdev":     true,
	"stdevp":    true,
	"stderr":    true,
	"median":    true,
	"q1":        true,
	"q3":        true,
	"ci0":       true,
	"ci1":       true,
	"min":       true,
	"max":       true,
	"argmin":    true,
	"argmax":    true,
}

// IsAggregateOp reports whether op is a recognized aggregate operator.
func IsAggregateOp(op string) bool {
	return aggregateOps[op]
}
