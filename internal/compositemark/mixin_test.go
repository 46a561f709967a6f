package compositemark

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vizc/internal/config"
	"vizc/internal/diag"
	"vizc/internal/spec"
)

func tickTemplate() spec.LayerSpec {
	return spec.LayerSpec{
		Mark: spec.MarkProps{Type: "tick", Props: map[string]any{"orient": "horizontal"}},
		Encoding: spec.Encoding{
			spec.ChannelY: fieldDef("lower_whisker_b", spec.Quantitative, ""),
		},
	}
}

func markWithPart(t *testing.T, part string, raw string) *spec.MarkDef {
	t.Helper()
	return &spec.MarkDef{
		Type:  Errorbar,
		Extra: map[string]json.RawMessage{part: json.RawMessage(raw)},
	}
}

func TestComposeLayerEmission(t *testing.T) {
	tests := []struct {
		name string
		mark *spec.MarkDef
		cfg  config.PartDefaults
		want bool
	}{
		{
			name: "config enabled, part unmentioned",
			mark: &spec.MarkDef{Type: Errorbar},
			cfg:  config.PartDefaults{Enabled: true},
			want: true,
		},
		{
			name: "config disabled, part unmentioned",
			mark: &spec.MarkDef{Type: Errorbar},
			cfg:  config.PartDefaults{Enabled: false},
			want: false,
		},
		{
			name: "explicit true overrides disabled config",
			mark: markWithPart(t, "ticks", "true"),
			cfg:  config.PartDefaults{Enabled: false},
			want: true,
		},
		{
			name: "explicit false overrides enabled config",
			mark: markWithPart(t, "ticks", "false"),
			cfg:  config.PartDefaults{Enabled: true},
			want: false,
		},
		{
			name: "property object implies emission",
			mark: markWithPart(t, "ticks", `{"color":"black"}`),
			cfg:  config.PartDefaults{Enabled: false},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composeLayer(tt.mark, PartTicks, tt.cfg, tickTemplate())
			if (got != nil) != tt.want {
				t.Errorf("emitted = %t, want %t", got != nil, tt.want)
			}
		})
	}
}

func TestComposeLayerPropertyPrecedence(t *testing.T) {
	mark := markWithPart(t, "ticks", `{"size":10,"color":"black"}`)
	cfg := config.PartDefaults{
		Enabled: true,
		Props:   map[string]any{"size": int64(15), "opacity": 0.9},
	}

	got := composeLayer(mark, PartTicks, cfg, tickTemplate())
	if got == nil {
		t.Fatal("layer suppressed unexpectedly")
	}
	if got.Mark.Type != "tick" {
		t.Errorf("mark type = %q, want tick", got.Mark.Type)
	}

	want := map[string]any{
		"orient":  "horizontal", // from the generated template
		"opacity": 0.9,          // from configuration
		"size":    float64(10),  // mark-level override wins over configuration
		"color":   "black",
	}
	if diff := cmp.Diff(want, got.Mark.Props); diff != "" {
		t.Errorf("merged props (-want +got):\n%s", diff)
	}
}

func TestReportUnknownParts(t *testing.T) {
	mark := &spec.MarkDef{
		Type: Errorbar,
		Extra: map[string]json.RawMessage{
			"ticks":    json.RawMessage("true"),              // known part
			"whiskers": json.RawMessage("false"),             // misspelled toggle
			"rule":     json.RawMessage(`{"color":"black"}`), // not in the vocabulary
			"color":    json.RawMessage(`"red"`),             // plain mark property
			"size":     json.RawMessage("4"),                 // plain mark property
		},
	}
	bag := diag.NewBag(10)
	reportUnknownParts(mark, diag.NewBagReporter(bag))

	bag.Sort()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(items), items)
	}
	for i, path := range []string{"mark.rule", "mark.whiskers"} {
		if items[i].Code != diag.MarkUnknownPart || items[i].Path != path {
			t.Errorf("diagnostic %d = [%s] %s, want [%s] %s",
				i, items[i].Code.ID(), items[i].Path, diag.MarkUnknownPart.ID(), path)
		}
	}
}

func TestPartOverrideParsing(t *testing.T) {
	tests := []struct {
		raw      string
		kind     OverrideKind
		explicit bool
	}{
		{"true", UseDefault, true},
		{"false", Disabled, true},
		{`{"size":4}`, Override, true},
		{`"nonsense"`, UseDefault, false},
	}
	for _, tt := range tests {
		mark := markWithPart(t, "bar", tt.raw)
		ov, explicit := partOverride(mark, PartBar)
		if ov.Kind != tt.kind || explicit != tt.explicit {
			t.Errorf("partOverride(%s) = (%v, %t), want (%v, %t)",
				tt.raw, ov.Kind, explicit, tt.kind, tt.explicit)
		}
	}
	if ov, explicit := partOverride(&spec.MarkDef{Type: Errorbar}, PartBar); ov.Kind != UseDefault || explicit {
		t.Error("unmentioned part must resolve to an implicit UseDefault")
	}
}
