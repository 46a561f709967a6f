package spec

import (
	"bytes"
	"encoding/json"
)

// Transform is one step of a compiled transform pipeline.
type Transform interface {
	isTransform()
}

// AggregatedField is one op/field/as triple of an aggregate step.
type AggregatedField struct {
	Op    string `json:"op"`
	Field string `json:"field"`
	As    string `json:"as"`
}

// AggregateTransform partitions rows by GroupBy and computes every
// aggregated field within each partition.
type AggregateTransform struct {
	Aggregate []AggregatedField `json:"aggregate"`
	GroupBy   []string          `json:"groupby,omitempty"`
}

func (AggregateTransform) isTransform() {}

// BinTransform discretizes Field into As ahead of aggregation. Bin carries
// the user's bin directive verbatim (true or a parameter object).
type BinTransform struct {
	Bin   json.RawMessage `json:"bin"`
	Field string          `json:"field"`
	As    string          `json:"as"`
}

func (BinTransform) isTransform() {}

// TimeUnitTransform truncates a temporal Field into As ahead of aggregation.
type TimeUnitTransform struct {
	TimeUnit string `json:"timeUnit"`
	Field    string `json:"field"`
	As       string `json:"as"`
}

func (TimeUnitTransform) isTransform() {}

// CalculateTransform derives As from an expression over aggregated fields.
// Only emitted after the aggregate step.
type CalculateTransform struct {
	Calculate string `json:"calculate"`
	As        string `json:"as"`
}

func (CalculateTransform) isTransform() {}

// RawTransform is a pre-existing input transform step carried through
// unmodified ahead of the synthesized steps.
type RawTransform json.RawMessage

func (RawTransform) isTransform() {}

func (t RawTransform) MarshalJSON() ([]byte, error) {
	if len(t) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(t).MarshalJSON()
}

// Pipeline is an ordered list of transform steps. Order is a contract:
// bin and time-unit steps precede the aggregate step, calculate steps
// follow it.
type Pipeline []Transform

func (p Pipeline) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, step := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := json.Marshal(step)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Calculates returns the calculate steps of the pipeline.
func (p Pipeline) Calculates() []CalculateTransform {
	var out []CalculateTransform
	for _, step := range p {
		if c, ok := step.(CalculateTransform); ok {
			out = append(out, c)
		}
	}
	return out
}

// Aggregates returns the aggregate steps of the pipeline.
func (p Pipeline) Aggregates() []AggregateTransform {
	var out []AggregateTransform
	for _, step := range p {
		if a, ok := step.(AggregateTransform); ok {
			out = append(out, a)
		}
	}
	return out
}
