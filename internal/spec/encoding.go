package spec

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Channel names a visual encoding channel.
type Channel string

const (
	ChannelX       Channel = "x"
	ChannelX2      Channel = "x2"
	ChannelY       Channel = "y"
	ChannelY2      Channel = "y2"
	ChannelColor   Channel = "color"
	ChannelDetail  Channel = "detail"
	ChannelOpacity Channel = "opacity"
	ChannelSize    Channel = "size"
)

// channelOrder fixes the marshalling order of well-known channels. Channels
// outside this list sort alphabetically after it.
var channelOrder = []Channel{
	ChannelX, ChannelX2, ChannelY, ChannelY2,
	ChannelColor, ChannelDetail, ChannelOpacity, ChannelSize,
}

// Type is the declared measurement type of an encoded field.
type Type string

const (
	Quantitative Type = "quantitative"
	Temporal     Type = "temporal"
	Ordinal      Type = "ordinal"
	Nominal      Type = "nominal"
)

// Continuous reports whether the type maps onto a continuous scale.
func (t Type) Continuous() bool {
	return t == Quantitative || t == Temporal
}

// ChannelDef describes one encoding channel. It is either a field definition
// (Field/Type plus optional Aggregate, Bin, TimeUnit) or a value definition
// (Value, a literal constant). Unknown properties such as scale, axis and
// legend blocks are preserved in Extra.
type ChannelDef struct {
	Field     string
	Type      Type
	Aggregate string
	Bin       json.RawMessage
	TimeUnit  string
	Value     json.RawMessage
	Extra     map[string]json.RawMessage
}

// IsValue reports whether the definition binds a constant rather than a field.
func (d *ChannelDef) IsValue() bool {
	return d != nil && len(d.Value) > 0
}

// Binned reports whether the channel carries a bin directive.
func (d *ChannelDef) Binned() bool {
	if d == nil || len(d.Bin) == 0 {
		return false
	}
	s := string(d.Bin)
	return s != "false" && s != "null"
}

// Continuous reports whether the channel binds a field on a continuous scale.
func (d *ChannelDef) Continuous() bool {
	return d != nil && !d.IsValue() && d.Type.Continuous()
}

// Clone returns a deep-enough copy: field values are copied, raw messages and
// extras are shared since they are never mutated after parse.
func (d *ChannelDef) Clone() *ChannelDef {
	if d == nil {
		return nil
	}
	c := *d
	if d.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

func (d *ChannelDef) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("channel def: %w", err)
	}
	*d = ChannelDef{}
	for k, v := range raw {
		switch k {
		case "field":
			if err := json.Unmarshal(v, &d.Field); err != nil {
				return fmt.Errorf("channel def field: %w", err)
			}
		case "type":
			if err := json.Unmarshal(v, &d.Type); err != nil {
				return fmt.Errorf("channel def type: %w", err)
			}
		case "aggregate":
			if err := json.Unmarshal(v, &d.Aggregate); err != nil {
				return fmt.Errorf("channel def aggregate: %w", err)
			}
		case "bin":
			d.Bin = v
		case "timeUnit":
			if err := json.Unmarshal(v, &d.TimeUnit); err != nil {
				return fmt.Errorf("channel def timeUnit: %w", err)
			}
		case "value":
			d.Value = v
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]json.RawMessage)
			}
			d.Extra[k] = v
		}
	}
	return nil
}

func (d *ChannelDef) MarshalJSON() ([]byte, error) {
	fields := []rawField{
		{key: "field", val: nonEmptyString(d.Field)},
		{key: "type", val: nonEmptyString(string(d.Type))},
		{key: "aggregate", val: nonEmptyString(d.Aggregate)},
		{key: "bin", val: d.Bin},
		{key: "timeUnit", val: nonEmptyString(d.TimeUnit)},
		{key: "value", val: d.Value},
	}
	fields = append(fields, sortedExtra(d.Extra)...)
	return marshalObject(fields)
}

func nonEmptyString(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return rawString(s)
}

// Encoding maps channels to their definitions.
type Encoding map[Channel]*ChannelDef

// Channels returns the encoding's channels in canonical order: well-known
// channels first in drawing-relevant order, the rest alphabetical.
func (e Encoding) Channels() []Channel {
	rank := make(map[Channel]int, len(channelOrder))
	for i, ch := range channelOrder {
		rank[ch] = i
	}
	chans := make([]Channel, 0, len(e))
	for ch := range e {
		chans = append(chans, ch)
	}
	sort.Slice(chans, func(i, j int) bool {
		ri, iok := rank[chans[i]]
		rj, jok := rank[chans[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return chans[i] < chans[j]
		}
	})
	return chans
}

// Clone returns a copy with cloned channel definitions.
func (e Encoding) Clone() Encoding {
	out := make(Encoding, len(e))
	for ch, def := range e {
		out[ch] = def.Clone()
	}
	return out
}

func (e Encoding) MarshalJSON() ([]byte, error) {
	fields := make([]rawField, 0, len(e))
	for _, ch := range e.Channels() {
		val, err := json.Marshal(e[ch])
		if err != nil {
			return nil, err
		}
		fields = append(fields, rawField{key: string(ch), val: val})
	}
	return marshalObject(fields)
}
