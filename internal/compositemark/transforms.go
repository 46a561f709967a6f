package compositemark

import (
	"fmt"

	"vizc/internal/spec"
)

// derivedFields carries the names of every field the transform pipeline
// computes for the continuous axis. Threading this record through the
// pipeline, instead of re-deriving names by concatenation at each use site,
// keeps the synthesizer and the layer assembler in agreement by
// construction.
type derivedFields struct {
	continuousField string
	center          string
	lowerWhisker    string
	upperWhisker    string
	extent          string
}

func deriveFields(center CenterMeasure, field string) derivedFields {
	return derivedFields{
		continuousField: field,
		center:          string(center) + "_" + field,
		lowerWhisker:    "lower_whisker_" + field,
		upperWhisker:    "upper_whisker_" + field,
		extent:          "extent_" + field,
	}
}

// transformPlan is the synthesizer's output: the synthesized steps, the
// grouping keys, the derived field names, and the remaining encoding with
// the continuous axis removed and aggregated channels rebound to their
// computed output fields.
type transformPlan struct {
	pipeline spec.Pipeline
	groupBy  []string
	names    derivedFields
	rest     spec.Encoding
}

// synthesizeTransforms builds the statistical pipeline for the summary.
//
// One aggregate triple always computes the center. The ci and iqr extents
// aggregate each whisker bound directly (ci0/ci1, q1/q3); the symmetric
// stderr and stdev extents aggregate a single spread value and derive the
// bounds with calculate steps after aggregation. Every other channel either
// contributes its own aggregate triple, becomes a grouping key (through its
// bin/time-unit transform when present), or, for constants, passes through
// untouched.
func synthesizeTransforms(enc spec.Encoding, axis continuousAxis, center CenterMeasure, extent ExtentMeasure) transformPlan {
	names := deriveFields(center, axis.field)

	aggregate := []spec.AggregatedField{
		{Op: string(center), Field: axis.field, As: names.center},
	}
	var postCalculates []spec.Transform

	switch extent {
	case ExtentCI:
		aggregate = append(aggregate,
			spec.AggregatedField{Op: "ci0", Field: axis.field, As: names.lowerWhisker},
			spec.AggregatedField{Op: "ci1", Field: axis.field, As: names.upperWhisker},
		)
	case ExtentIQR:
		aggregate = append(aggregate,
			spec.AggregatedField{Op: "q1", Field: axis.field, As: names.lowerWhisker},
			spec.AggregatedField{Op: "q3", Field: axis.field, As: names.upperWhisker},
		)
	default:
		aggregate = append(aggregate,
			spec.AggregatedField{Op: string(extent), Field: axis.field, As: names.extent},
		)
		postCalculates = []spec.Transform{
			spec.CalculateTransform{
				Calculate: fmt.Sprintf("datum[%q] + datum[%q]", names.center, names.extent),
				As:        names.upperWhisker,
			},
			spec.CalculateTransform{
				Calculate: fmt.Sprintf("datum[%q] - datum[%q]", names.center, names.extent),
				As:        names.lowerWhisker,
			},
		}
	}

	var preSteps []spec.Transform
	var groupBy []string
	rest := make(spec.Encoding, len(enc))

	for _, ch := range enc.Channels() {
		if ch == axis.channel {
			continue
		}
		def := enc[ch]
		switch {
		case def.IsValue():
			// Constants participate in neither aggregation nor grouping.
			rest[ch] = def.Clone()
		case def.Aggregate != "" && spec.IsAggregateOp(def.Aggregate):
			as := def.Aggregate + "_" + def.Field
			aggregate = append(aggregate, spec.AggregatedField{Op: def.Aggregate, Field: def.Field, As: as})
			rebound := def.Clone()
			rebound.Field = as
			rebound.Aggregate = ""
			rest[ch] = rebound
		case def.Binned():
			as := "bin_" + def.Field
			preSteps = append(preSteps, spec.BinTransform{Bin: def.Bin, Field: def.Field, As: as})
			groupBy = append(groupBy, as)
			rest[ch] = def.Clone()
		case def.TimeUnit != "":
			as := def.TimeUnit + "_" + def.Field
			preSteps = append(preSteps, spec.TimeUnitTransform{TimeUnit: def.TimeUnit, Field: def.Field, As: as})
			groupBy = append(groupBy, as)
			rest[ch] = def.Clone()
		default:
			// Unrecognized aggregate operators group on the raw field.
			grouped := def.Clone()
			grouped.Aggregate = ""
			groupBy = append(groupBy, def.Field)
			rest[ch] = grouped
		}
	}

	pipeline := make(spec.Pipeline, 0, len(preSteps)+1+len(postCalculates))
	pipeline = append(pipeline, preSteps...)
	pipeline = append(pipeline, spec.AggregateTransform{Aggregate: aggregate, GroupBy: groupBy})
	pipeline = append(pipeline, postCalculates...)

	return transformPlan{
		pipeline: pipeline,
		groupBy:  groupBy,
		names:    names,
		rest:     rest,
	}
}
