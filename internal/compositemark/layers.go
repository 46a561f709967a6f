package compositemark

import (
	"vizc/internal/config"
	"vizc/internal/spec"
)

// assembleLayers builds the ordered layer list: bar, line, ticks (lower),
// ticks (upper), whisker, point. Single-point parts bind the continuous axis
// to one derived field; the whisker binds both whisker bounds as a ranged
// rule. Each template is handed to composeLayer, which applies per-part
// configuration and mark-level overrides and may suppress the part.
func assembleLayers(mark *spec.MarkDef, axis continuousAxis, names derivedFields, rest spec.Encoding, cfg *config.ErrorbarConfig) []spec.LayerSpec {
	// The size channel is rebound onto the ticks parts only; color grouping
	// survives through the aggregate groupby, not through layer encodings.
	sizeDef := rest[spec.ChannelSize]
	shared := make(spec.Encoding, len(rest))
	for ch, def := range rest {
		if ch == spec.ChannelSize || ch == spec.ChannelColor {
			continue
		}
		shared[ch] = def
	}

	binding := func(field string, withMeta bool) *spec.ChannelDef {
		def := &spec.ChannelDef{Field: field, Type: axis.typ}
		if withMeta && len(axis.meta) > 0 {
			def.Extra = axis.meta
		}
		return def
	}

	pointEncoding := func(field string, withSize bool) spec.Encoding {
		enc := make(spec.Encoding, len(shared)+2)
		for ch, def := range shared {
			enc[ch] = def.Clone()
		}
		enc[axis.channel] = binding(field, true)
		if withSize && sizeDef != nil {
			enc[spec.ChannelSize] = sizeDef.Clone()
		}
		return enc
	}

	rangedEncoding := func(lower, upper string) spec.Encoding {
		enc := make(spec.Encoding, len(shared)+2)
		for ch, def := range shared {
			enc[ch] = def.Clone()
		}
		enc[axis.channel] = binding(lower, true)
		enc[axis.axis2()] = &spec.ChannelDef{Field: upper}
		return enc
	}

	templates := []struct {
		part     Part
		encoding spec.Encoding
	}{
		{PartBar, pointEncoding(names.center, false)},
		{PartLine, pointEncoding(names.center, false)},
		{PartTicks, pointEncoding(names.lowerWhisker, true)},
		{PartTicks, pointEncoding(names.upperWhisker, true)},
		{PartWhisker, rangedEncoding(names.lowerWhisker, names.upperWhisker)},
		{PartPoint, pointEncoding(names.center, false)},
	}

	layers := make([]spec.LayerSpec, 0, len(templates))
	for _, t := range templates {
		template := spec.LayerSpec{
			Mark:     spec.MarkProps{Type: t.part.Primitive()},
			Encoding: t.encoding,
		}
		if layer := composeLayer(mark, t.part, cfg.Part(t.part.Name()), template); layer != nil {
			layers = append(layers, *layer)
		}
	}
	return layers
}
