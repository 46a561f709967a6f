package compositemark

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vizc/internal/spec"
)

func quantitativeAxis(field string) continuousAxis {
	return continuousAxis{channel: spec.ChannelY, field: field, typ: spec.Quantitative}
}

func TestDeriveFieldsDeterministic(t *testing.T) {
	a := deriveFields(CenterMean, "b")
	b := deriveFields(CenterMean, "b")
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(derivedFields{})); diff != "" {
		t.Errorf("deriveFields is not deterministic (-first +second):\n%s", diff)
	}
	want := derivedFields{
		continuousField: "b",
		center:          "mean_b",
		lowerWhisker:    "lower_whisker_b",
		upperWhisker:    "upper_whisker_b",
		extent:          "extent_b",
	}
	if diff := cmp.Diff(want, a, cmp.AllowUnexported(derivedFields{})); diff != "" {
		t.Errorf("derived names (-want +got):\n%s", diff)
	}
}

func TestSynthesizeSpecialExtents(t *testing.T) {
	tests := []struct {
		extent  ExtentMeasure
		lowerOp string
		upperOp string
	}{
		{ExtentCI, "ci0", "ci1"},
		{ExtentIQR, "q1", "q3"},
	}
	for _, tt := range tests {
		t.Run(string(tt.extent), func(t *testing.T) {
			enc := spec.Encoding{
				spec.ChannelX: fieldDef("a", spec.Ordinal, ""),
				spec.ChannelY: fieldDef("b", spec.Quantitative, ""),
			}
			plan := synthesizeTransforms(enc, quantitativeAxis("b"), CenterMean, tt.extent)

			if calcs := plan.pipeline.Calculates(); len(calcs) != 0 {
				t.Errorf("special extent emitted %d calculate steps, want 0", len(calcs))
			}
			aggs := plan.pipeline.Aggregates()
			if len(aggs) != 1 {
				t.Fatalf("pipeline has %d aggregate steps, want 1", len(aggs))
			}
			want := []spec.AggregatedField{
				{Op: "mean", Field: "b", As: "mean_b"},
				{Op: tt.lowerOp, Field: "b", As: "lower_whisker_b"},
				{Op: tt.upperOp, Field: "b", As: "upper_whisker_b"},
			}
			if diff := cmp.Diff(want, aggs[0].Aggregate); diff != "" {
				t.Errorf("aggregate triples (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSynthesizeSymmetricExtents(t *testing.T) {
	for _, extent := range []ExtentMeasure{ExtentStderr, ExtentStdev} {
		t.Run(string(extent), func(t *testing.T) {
			enc := spec.Encoding{
				spec.ChannelX: fieldDef("a", spec.Ordinal, ""),
				spec.ChannelY: fieldDef("b", spec.Quantitative, ""),
			}
			plan := synthesizeTransforms(enc, quantitativeAxis("b"), CenterMean, extent)

			aggs := plan.pipeline.Aggregates()
			if len(aggs) != 1 {
				t.Fatalf("pipeline has %d aggregate steps, want 1", len(aggs))
			}
			want := []spec.AggregatedField{
				{Op: "mean", Field: "b", As: "mean_b"},
				{Op: string(extent), Field: "b", As: "extent_b"},
			}
			if diff := cmp.Diff(want, aggs[0].Aggregate); diff != "" {
				t.Errorf("aggregate triples (-want +got):\n%s", diff)
			}

			calcs := plan.pipeline.Calculates()
			if len(calcs) != 2 {
				t.Fatalf("symmetric extent emitted %d calculate steps, want 2", len(calcs))
			}
			if calcs[0].As != "upper_whisker_b" || calcs[1].As != "lower_whisker_b" {
				t.Errorf("calculate targets = %s, %s; want upper_whisker_b, lower_whisker_b",
					calcs[0].As, calcs[1].As)
			}
			for _, c := range calcs {
				if !strings.Contains(c.Calculate, `"mean_b"`) || !strings.Contains(c.Calculate, `"extent_b"`) {
					t.Errorf("calculate %q must reference mean_b and extent_b", c.Calculate)
				}
			}

			// Calculate steps come after the aggregate step.
			if _, ok := plan.pipeline[0].(spec.AggregateTransform); !ok {
				t.Errorf("first step is %T, want the aggregate step", plan.pipeline[0])
			}
		})
	}
}

func TestSynthesizePartitionsRemainingChannels(t *testing.T) {
	enc := spec.Encoding{
		spec.ChannelX:       fieldDef("a", spec.Ordinal, ""),
		spec.ChannelY:       fieldDef("b", spec.Quantitative, ""),
		spec.ChannelColor:   fieldDef("grp", spec.Nominal, ""),
		spec.ChannelSize:    fieldDef("w", spec.Quantitative, "mean"),
		spec.ChannelOpacity: {Value: []byte("0.7")},
	}
	plan := synthesizeTransforms(enc, quantitativeAxis("b"), CenterMean, ExtentStderr)

	if diff := cmp.Diff([]string{"a", "grp"}, plan.groupBy); diff != "" {
		t.Errorf("groupby keys (-want +got):\n%s", diff)
	}

	agg := plan.pipeline.Aggregates()[0]
	var sizeTriple *spec.AggregatedField
	for i := range agg.Aggregate {
		if agg.Aggregate[i].Field == "w" {
			sizeTriple = &agg.Aggregate[i]
		}
	}
	if sizeTriple == nil {
		t.Fatal("aggregated size channel missing from aggregate step")
	}
	if sizeTriple.Op != "mean" || sizeTriple.As != "mean_w" {
		t.Errorf("size triple = %+v, want op mean as mean_w", *sizeTriple)
	}

	// The remaining encoding is rebound to computed fields where aggregated,
	// kept verbatim where grouped, untouched for constants, and never
	// contains the continuous axis.
	if _, ok := plan.rest[spec.ChannelY]; ok {
		t.Error("continuous axis leaked into the remaining encoding")
	}
	if got := plan.rest[spec.ChannelSize]; got.Field != "mean_w" || got.Aggregate != "" {
		t.Errorf("aggregated channel rebound to %q (aggregate %q), want mean_w with no aggregate", got.Field, got.Aggregate)
	}
	if got := plan.rest[spec.ChannelColor]; got.Field != "grp" {
		t.Errorf("grouped channel rebound to %q, want grp untouched", got.Field)
	}
	if got := plan.rest[spec.ChannelOpacity]; !got.IsValue() {
		t.Error("constant channel must pass through as a value def")
	}
}

func TestSynthesizeBinAndTimeUnitGrouping(t *testing.T) {
	enc := spec.Encoding{
		spec.ChannelX:      fieldDef("b", spec.Quantitative, ""),
		spec.ChannelY:      {Field: "a", Type: spec.Quantitative, Bin: json.RawMessage("true")},
		spec.ChannelDetail: {Field: "when", Type: spec.Temporal, TimeUnit: "month"},
	}
	axis := continuousAxis{channel: spec.ChannelX, field: "b", typ: spec.Quantitative}
	plan := synthesizeTransforms(enc, axis, CenterMedian, ExtentIQR)

	if diff := cmp.Diff([]string{"bin_a", "month_when"}, plan.groupBy); diff != "" {
		t.Errorf("groupby keys must use transformed names (-want +got):\n%s", diff)
	}

	// Bin and time-unit steps precede the aggregate step.
	if _, ok := plan.pipeline[0].(spec.BinTransform); !ok {
		t.Errorf("step 0 is %T, want BinTransform", plan.pipeline[0])
	}
	if _, ok := plan.pipeline[1].(spec.TimeUnitTransform); !ok {
		t.Errorf("step 1 is %T, want TimeUnitTransform", plan.pipeline[1])
	}
	if _, ok := plan.pipeline[2].(spec.AggregateTransform); !ok {
		t.Errorf("step 2 is %T, want AggregateTransform", plan.pipeline[2])
	}

	bin := plan.pipeline[0].(spec.BinTransform)
	if bin.Field != "a" || bin.As != "bin_a" {
		t.Errorf("bin step = %+v, want field a as bin_a", bin)
	}
	tu := plan.pipeline[1].(spec.TimeUnitTransform)
	if tu.TimeUnit != "month" || tu.Field != "when" || tu.As != "month_when" {
		t.Errorf("timeUnit step = %+v, want month(when) as month_when", tu)
	}
}
