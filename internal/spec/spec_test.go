package spec_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vizc/internal/spec"
)

func TestParseUnitMarkForms(t *testing.T) {
	bare, err := spec.ParseUnit([]byte(`{"mark": "errorbar"}`))
	if err != nil {
		t.Fatalf("parse bare mark: %v", err)
	}
	if bare.Mark.Type != "errorbar" {
		t.Errorf("bare mark type = %q", bare.Mark.Type)
	}

	def, err := spec.ParseUnit([]byte(`{
		"mark": {"type": "errorbar", "extent": "ci", "orient": "horizontal", "ticks": true}
	}`))
	if err != nil {
		t.Fatalf("parse mark def: %v", err)
	}
	m := def.Mark
	if m.Type != "errorbar" || m.Extent != "ci" || m.Orient != "horizontal" {
		t.Errorf("mark def = %+v", m)
	}
	if _, ok := m.Extra["ticks"]; !ok {
		t.Error("per-part override must stay in the mark's extra fields")
	}

	if _, err := spec.ParseUnit([]byte(`{"data": {"url": "x.csv"}}`)); !errors.Is(err, spec.ErrNotUnit) {
		t.Errorf("markless document: got %v, want ErrNotUnit", err)
	}
}

func TestParseUnitKeepsSiblingsAndEncodingExtras(t *testing.T) {
	doc := `{
		"$schema": "https://example.com/schema.json",
		"data": {"values": [1, 2]},
		"title": "demo",
		"mark": "errorbar",
		"encoding": {
			"y": {"field": "b", "type": "quantitative", "scale": {"zero": false}, "axis": {"grid": true}}
		}
	}`
	u, err := spec.ParseUnit([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, key := range []string{"$schema", "data", "title"} {
		if _, ok := u.Extra[key]; !ok {
			t.Errorf("sibling field %q lost in parsing", key)
		}
	}
	y := u.Encoding[spec.ChannelY]
	if y.Field != "b" || y.Type != spec.Quantitative {
		t.Errorf("y def = %+v", y)
	}
	for _, key := range []string{"scale", "axis"} {
		if _, ok := y.Extra[key]; !ok {
			t.Errorf("channel property %q lost in parsing", key)
		}
	}
}

func TestChannelDefPredicates(t *testing.T) {
	tests := []struct {
		name       string
		def        *spec.ChannelDef
		continuous bool
		value      bool
	}{
		{"quantitative field", &spec.ChannelDef{Field: "b", Type: spec.Quantitative}, true, false},
		{"temporal field", &spec.ChannelDef{Field: "ts", Type: spec.Temporal}, true, false},
		{"ordinal field", &spec.ChannelDef{Field: "a", Type: spec.Ordinal}, false, false},
		{"constant", &spec.ChannelDef{Value: json.RawMessage("3")}, false, true},
		{"nil def", nil, false, false},
	}
	for _, tt := range tests {
		if got := tt.def.Continuous(); got != tt.continuous {
			t.Errorf("%s: Continuous() = %t", tt.name, got)
		}
		if got := tt.def.IsValue(); got != tt.value {
			t.Errorf("%s: IsValue() = %t", tt.name, got)
		}
	}
}

func TestPipelineMarshalShapes(t *testing.T) {
	p := spec.Pipeline{
		spec.BinTransform{Bin: json.RawMessage("true"), Field: "a", As: "bin_a"},
		spec.AggregateTransform{
			Aggregate: []spec.AggregatedField{{Op: "mean", Field: "b", As: "mean_b"}},
			GroupBy:   []string{"bin_a"},
		},
		spec.CalculateTransform{Calculate: `datum["mean_b"] + datum["extent_b"]`, As: "upper_whisker_b"},
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal pipeline: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("re-parse pipeline: %v", err)
	}
	want := []map[string]any{
		{"bin": true, "field": "a", "as": "bin_a"},
		{
			"aggregate": []any{map[string]any{"op": "mean", "field": "b", "as": "mean_b"}},
			"groupby":   []any{"bin_a"},
		},
		{"calculate": `datum["mean_b"] + datum["extent_b"]`, "as": "upper_whisker_b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pipeline JSON (-want +got):\n%s", diff)
	}
}

func TestLayeredSpecMarshalOrderStable(t *testing.T) {
	layered := &spec.LayeredSpec{
		Extra: map[string]json.RawMessage{
			"title": json.RawMessage(`"demo"`),
			"data":  json.RawMessage(`{"url":"x.csv"}`),
		},
		Transform: spec.Pipeline{
			spec.AggregateTransform{Aggregate: []spec.AggregatedField{{Op: "mean", Field: "b", As: "mean_b"}}},
		},
		Layer: []spec.LayerSpec{
			{
				Mark: spec.MarkProps{Type: "rule"},
				Encoding: spec.Encoding{
					spec.ChannelY:  {Field: "lower_whisker_b", Type: spec.Quantitative},
					spec.ChannelY2: {Field: "upper_whisker_b"},
					spec.ChannelX:  {Field: "a", Type: spec.Ordinal},
				},
			},
		},
	}

	first, err := json.Marshal(layered)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(layered)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(again) != string(first) {
			t.Fatal("marshalling is not deterministic")
		}
	}

	// Channels marshal in canonical order: x before y before y2.
	var layer struct {
		Layer []struct {
			Encoding json.RawMessage `json:"encoding"`
		} `json:"layer"`
	}
	if err := json.Unmarshal(first, &layer); err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	enc := string(layer.Layer[0].Encoding)
	xIdx := indexOf(t, enc, `"x"`)
	yIdx := indexOf(t, enc, `"y"`)
	y2Idx := indexOf(t, enc, `"y2"`)
	if !(xIdx < yIdx && yIdx < y2Idx) {
		t.Errorf("channel order wrong in %s", enc)
	}
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	t.Fatalf("%q not found in %s", sub, s)
	return -1
}
