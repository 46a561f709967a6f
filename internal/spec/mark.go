package spec

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MarkDef is the parsed mark of a unit specification. The JSON form is either
// a bare type string ("errorbar") or a definition object; both normalize to
// this struct. Per-part overrides and any other mark properties stay in Extra
// for the composite-mark expander to interpret.
type MarkDef struct {
	Type   string
	Orient string
	Center string
	Extent string
	Extra  map[string]json.RawMessage
}

func (m *MarkDef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("mark: %w", err)
		}
		*m = MarkDef{Type: s}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("mark: %w", err)
	}
	*m = MarkDef{}
	for k, v := range raw {
		switch k {
		case "type":
			if err := json.Unmarshal(v, &m.Type); err != nil {
				return fmt.Errorf("mark type: %w", err)
			}
		case "orient":
			if err := json.Unmarshal(v, &m.Orient); err != nil {
				return fmt.Errorf("mark orient: %w", err)
			}
		case "center":
			if err := json.Unmarshal(v, &m.Center); err != nil {
				return fmt.Errorf("mark center: %w", err)
			}
		case "extent":
			if err := json.Unmarshal(v, &m.Extent); err != nil {
				return fmt.Errorf("mark extent: %w", err)
			}
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]json.RawMessage)
			}
			m.Extra[k] = v
		}
	}
	return nil
}

func (m *MarkDef) MarshalJSON() ([]byte, error) {
	fields := []rawField{
		{key: "type", val: nonEmptyString(m.Type)},
		{key: "orient", val: nonEmptyString(m.Orient)},
		{key: "center", val: nonEmptyString(m.Center)},
		{key: "extent", val: nonEmptyString(m.Extent)},
	}
	fields = append(fields, sortedExtra(m.Extra)...)
	return marshalObject(fields)
}

// MarkProps is the mark of one compiled primitive layer: a primitive type
// plus a flat overlay of mark properties (size, color, orient, ...).
type MarkProps struct {
	Type  string
	Props map[string]any
}

func (m MarkProps) MarshalJSON() ([]byte, error) {
	fields := []rawField{{key: "type", val: rawString(m.Type)}}
	keys := make([]string, 0, len(m.Props))
	for k := range m.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val, err := json.Marshal(m.Props[k])
		if err != nil {
			return nil, err
		}
		fields = append(fields, rawField{key: k, val: val})
	}
	return marshalObject(fields)
}
