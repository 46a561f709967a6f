package spec

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotUnit indicates the document carries no mark and therefore is not a
// unit specification.
var ErrNotUnit = errors.New("document has no mark")

// UnitSpec is one input document: a mark, an encoding, and an opaque bag of
// sibling fields (data, title, transform, selections, ...) that pass through
// compilation untouched.
type UnitSpec struct {
	Mark     MarkDef
	Encoding Encoding
	Extra    map[string]json.RawMessage
}

// ParseUnit decodes a unit specification from JSON.
func ParseUnit(data []byte) (*UnitSpec, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse unit spec: %w", err)
	}
	u := &UnitSpec{}
	markRaw, ok := raw["mark"]
	if !ok {
		return nil, ErrNotUnit
	}
	if err := json.Unmarshal(markRaw, &u.Mark); err != nil {
		return nil, err
	}
	if encRaw, ok := raw["encoding"]; ok {
		if err := json.Unmarshal(encRaw, &u.Encoding); err != nil {
			return nil, fmt.Errorf("parse encoding: %w", err)
		}
	}
	if u.Encoding == nil {
		u.Encoding = Encoding{}
	}
	for k, v := range raw {
		if k == "mark" || k == "encoding" {
			continue
		}
		if u.Extra == nil {
			u.Extra = make(map[string]json.RawMessage)
		}
		u.Extra[k] = v
	}
	return u, nil
}

// InputTransforms returns the document's own transform list as raw steps, or
// nil when absent or malformed. The compiled pipeline keeps these ahead of
// the synthesized steps.
func (u *UnitSpec) InputTransforms() []RawTransform {
	rawList, ok := u.Extra["transform"]
	if !ok {
		return nil
	}
	var steps []json.RawMessage
	if err := json.Unmarshal(rawList, &steps); err != nil {
		return nil
	}
	out := make([]RawTransform, 0, len(steps))
	for _, s := range steps {
		out = append(out, RawTransform(s))
	}
	return out
}

func (u *UnitSpec) MarshalJSON() ([]byte, error) {
	markVal, err := json.Marshal(&u.Mark)
	if err != nil {
		return nil, err
	}
	encVal, err := json.Marshal(u.Encoding)
	if err != nil {
		return nil, err
	}
	fields := sortedExtra(u.Extra)
	fields = append(fields,
		rawField{key: "mark", val: markVal},
		rawField{key: "encoding", val: encVal},
	)
	return marshalObject(fields)
}
