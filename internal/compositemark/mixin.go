package compositemark

import (
	"encoding/json"

	"vizc/internal/config"
	"vizc/internal/diag"
	"vizc/internal/spec"
)

// OverrideKind classifies a per-part override on the mark definition.
type OverrideKind uint8

const (
	// UseDefault means the part was not mentioned, or mentioned as `true`:
	// the generated template and configuration defaults apply unchanged.
	UseDefault OverrideKind = iota
	// Disabled means the part was explicitly turned off (`false`).
	Disabled
	// Override means the part carries a property object layered on top of
	// the defaults.
	Override
)

// PartOverride is the parsed boolean-or-object override of one part.
type PartOverride struct {
	Kind  OverrideKind
	Props map[string]any
}

// partOverride reads the part's entry from the mark definition. The second
// return value reports whether the user referenced the part at all; an
// explicit reference wins over the configuration's enabled switch.
func partOverride(mark *spec.MarkDef, part Part) (PartOverride, bool) {
	raw, ok := mark.Extra[part.Name()]
	if !ok {
		return PartOverride{Kind: UseDefault}, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return PartOverride{Kind: UseDefault}, true
		}
		return PartOverride{Kind: Disabled}, true
	}
	var props map[string]any
	if err := json.Unmarshal(raw, &props); err == nil {
		return PartOverride{Kind: Override, Props: props}, true
	}
	return PartOverride{Kind: UseDefault}, false
}

// reportUnknownParts warns about mark-definition entries that look like part
// toggles (a boolean or an object value) but name no part in the vocabulary.
// Misspelled part names would otherwise be dropped without a trace, since
// unconsumed mark fields do not survive into the compiled layers.
func reportUnknownParts(mark *spec.MarkDef, r diag.Reporter) {
	for name, raw := range mark.Extra {
		if _, ok := PartByName(name); ok {
			continue
		}
		var b bool
		isBool := json.Unmarshal(raw, &b) == nil
		var props map[string]any
		isObject := !isBool && json.Unmarshal(raw, &props) == nil
		if !isBool && !isObject {
			continue
		}
		diag.ReportWarning(r, diag.MarkUnknownPart, "mark."+name,
			name+" is not a part of this mark").Emit()
	}
}

// composeLayer merges the generated default template with configuration
// defaults and the user's per-part override, and decides whether the part is
// emitted at all. It returns nil for suppressed parts.
//
// Emission rule: an explicit mark-level reference decides alone (false
// suppresses, true or an object emits); otherwise the configuration's
// enabled switch decides. Property precedence, lowest first: template,
// configuration, mark-level override.
func composeLayer(mark *spec.MarkDef, part Part, cfg config.PartDefaults, template spec.LayerSpec) *spec.LayerSpec {
	ov, explicit := partOverride(mark, part)
	if explicit {
		if ov.Kind == Disabled {
			return nil
		}
	} else if !cfg.Enabled {
		return nil
	}

	props := make(map[string]any, len(template.Mark.Props)+len(cfg.Props)+len(ov.Props))
	for k, v := range template.Mark.Props {
		props[k] = v
	}
	for k, v := range cfg.Props {
		props[k] = v
	}
	for k, v := range ov.Props {
		props[k] = v
	}

	return &spec.LayerSpec{
		Mark:     spec.MarkProps{Type: template.Mark.Type, Props: props},
		Encoding: template.Encoding,
	}
}
