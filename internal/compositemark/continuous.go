package compositemark

import (
	"encoding/json"
	"fmt"

	"vizc/internal/diag"
	"vizc/internal/spec"
)

// axisMetaKeys are the channel-def properties of the continuous axis that
// every compiled layer reuses on its own continuous binding.
var axisMetaKeys = []string{"scale", "axis", "title"}

// continuousAxis is the isolated value axis of the summary: the positional
// channel it occupies, the cleaned field it binds, and the scale/axis
// metadata preserved for the compiled layers.
type continuousAxis struct {
	channel spec.Channel
	field   string
	typ     spec.Type
	meta    map[string]json.RawMessage
}

// axis2 returns the companion range channel (x2/y2) for ranged parts.
func (a continuousAxis) axis2() spec.Channel {
	if a.channel == spec.ChannelX {
		return spec.ChannelX2
	}
	return spec.ChannelY2
}

// extractContinuousAxis selects the positional encoding the orientation
// points at and strips any pre-existing aggregate from it. The expander
// synthesizes its own aggregate pipeline, so a user aggregate other than the
// reserved keyword is ignored with a warning.
func extractContinuousAxis(enc spec.Encoding, orient Orientation, mark *spec.MarkDef, r diag.Reporter) continuousAxis {
	ch := spec.ChannelY
	if orient == Horizontal {
		ch = spec.ChannelX
	}
	def := enc[ch]

	if def.Aggregate != "" && def.Aggregate != mark.Type {
		diag.ReportWarning(r, diag.MarkIgnoredAggregate,
			"encoding."+string(ch)+".aggregate",
			fmt.Sprintf("%s mark synthesizes its own aggregation; aggregate %q on %s is ignored",
				mark.Type, def.Aggregate, ch),
		).Emit()
	}

	axis := continuousAxis{channel: ch, field: def.Field, typ: def.Type}
	for _, key := range axisMetaKeys {
		if v, ok := def.Extra[key]; ok {
			if axis.meta == nil {
				axis.meta = make(map[string]json.RawMessage, len(axisMetaKeys))
			}
			axis.meta[key] = v
		}
	}
	return axis
}
