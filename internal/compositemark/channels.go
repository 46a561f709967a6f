package compositemark

import (
	"fmt"

	"vizc/internal/diag"
	"vizc/internal/spec"
)

// supportedChannels is the closed set of encoding channels an error-summary
// mark understands. Anything else is dropped before expansion.
var supportedChannels = map[spec.Channel]struct{}{
	spec.ChannelX:       {},
	spec.ChannelY:       {},
	spec.ChannelColor:   {},
	spec.ChannelDetail:  {},
	spec.ChannelOpacity: {},
	spec.ChannelSize:    {},
}

// filterChannels returns a copy of enc restricted to supported channels and
// reports one warning per dropped channel.
func filterChannels(enc spec.Encoding, markType string, r diag.Reporter) spec.Encoding {
	out := make(spec.Encoding, len(enc))
	for _, ch := range enc.Channels() {
		if _, ok := supportedChannels[ch]; ok {
			out[ch] = enc[ch].Clone()
			continue
		}
		diag.ReportWarning(r, diag.MarkUnsupportedChannel,
			"encoding."+string(ch),
			fmt.Sprintf("%s dropped as it is not supported by the %s composite mark", ch, markType),
		).Emit()
	}
	return out
}
