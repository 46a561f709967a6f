package spec

import (
	"encoding/json"
)

// LayerSpec is one compiled primitive layer: a mark plus its encoding.
type LayerSpec struct {
	Mark     MarkProps `json:"mark"`
	Encoding Encoding  `json:"encoding"`
}

// LayeredSpec is the compiled output document: the input's sibling fields
// (minus mark, encoding, selection and projection), the synthesized transform
// pipeline, and the ordered layer list. Layer order is a drawing-order
// contract; later entries draw on top.
type LayeredSpec struct {
	Extra     map[string]json.RawMessage
	Transform Pipeline
	Layer     []LayerSpec
}

func (s *LayeredSpec) MarshalJSON() ([]byte, error) {
	fields := sortedExtra(s.Extra)
	if len(s.Transform) > 0 {
		val, err := json.Marshal(s.Transform)
		if err != nil {
			return nil, err
		}
		fields = append(fields, rawField{key: "transform", val: val})
	}
	layerVal, err := json.Marshal(s.Layer)
	if err != nil {
		return nil, err
	}
	fields = append(fields, rawField{key: "layer", val: layerVal})
	return marshalObject(fields)
}
