package compositemark

import (
	"vizc/internal/diag"
	"vizc/internal/spec"
)

// Orientation is the resolved layout of a summary mark: vertical means the
// y axis carries the summarized value, horizontal means x does.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// OrientationError is the fatal failure of expansion: the mark's orientation
// cannot be resolved from the encoding. Code is one of the Mark* diagnostic
// codes so output carries a stable identifier for the failure mode.
type OrientationError struct {
	Code   diag.Code
	Reason string
}

func (e *OrientationError) Error() string {
	return "cannot resolve composite mark orientation: " + e.Reason
}

// resolveOrientation decides the orientation from the x/y encodings.
//
// When exactly one positional channel is continuous the answer is forced.
// When both are continuous the reserved aggregate keyword (the composite
// mark's own type) is the strongest signal of the summarized axis; an
// explicit orient on the mark definition is the escape hatch, and vertical
// is the final default. Both axes carrying the keyword, or neither axis
// being continuous, is unresolvable.
func resolveOrientation(enc spec.Encoding, mark *spec.MarkDef) (Orientation, error) {
	x := enc[spec.ChannelX]
	y := enc[spec.ChannelY]

	switch {
	case x.Continuous() && y.Continuous():
		xReserved := x.Aggregate == mark.Type
		yReserved := y.Aggregate == mark.Type
		switch {
		case xReserved && yReserved:
			return "", &OrientationError{Code: diag.MarkBothAxesAggregate, Reason: "both axes cannot carry the " + mark.Type + " aggregate"}
		case x.Aggregate == "" && yReserved:
			return Vertical, nil
		case y.Aggregate == "" && xReserved:
			return Horizontal, nil
		}
		if Orientation(mark.Orient) == Horizontal {
			return Horizontal, nil
		}
		return Vertical, nil
	case x.Continuous():
		return Horizontal, nil
	case y.Continuous():
		return Vertical, nil
	}
	return "", &OrientationError{Code: diag.MarkNoContinuousAxis, Reason: "neither x nor y is a valid continuous axis"}
}
