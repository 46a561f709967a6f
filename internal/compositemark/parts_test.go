package compositemark

import "testing"

func TestPartPrimitiveMapping(t *testing.T) {
	want := map[Part]string{
		PartBar:     "bar",
		PartLine:    "line",
		PartTicks:   "tick",
		PartWhisker: "rule",
		PartPoint:   "point",
	}
	for part, primitive := range want {
		if got := part.Primitive(); got != primitive {
			t.Errorf("%s lowers to %q, want %q", part.Name(), got, primitive)
		}
	}
	// Out-of-range values degrade to the default primitive.
	if got := numParts.Primitive(); got != "point" {
		t.Errorf("invalid part lowers to %q, want point fallback", got)
	}
}

func TestPartByName(t *testing.T) {
	for _, p := range emitOrder {
		got, ok := PartByName(p.Name())
		if !ok || got != p {
			t.Errorf("PartByName(%q) = (%v, %t)", p.Name(), got, ok)
		}
	}
	if _, ok := PartByName("banana"); ok {
		t.Error("unknown part name must not resolve")
	}
}
