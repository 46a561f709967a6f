package spec

import (
	"bytes"
	"encoding/json"
	"sort"
)

// rawField is one key/value pair of an ordered JSON object.
type rawField struct {
	key string
	val json.RawMessage
}

// marshalObject renders fields as a JSON object in the given order.
// Fields with empty values are skipped.
func marshalObject(fields []rawField) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range fields {
		if len(f.val) == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sortedExtra returns the extra map as ordered fields, keys ascending.
func sortedExtra(extra map[string]json.RawMessage) []rawField {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]rawField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, rawField{key: k, val: extra[k]})
	}
	return fields
}

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
