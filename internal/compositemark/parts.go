package compositemark

// Part enumerates the visual sub-parts an error-summary mark decomposes
// into. The set is closed; part names referenced in mark definitions resolve
// through PartByName (configuration part tables are struct fields, so the
// manifest decoder rejects unknown names before expansion starts).
type Part uint8

const (
	PartBar Part = iota
	PartLine
	PartTicks
	PartWhisker
	PartPoint

	numParts
)

// emitOrder fixes drawing order: later entries draw on top. Ticks occur
// twice in the compiled output (lower and upper bound); that duplication is
// handled by the assembler, not here.
var emitOrder = [...]Part{PartBar, PartLine, PartTicks, PartWhisker, PartPoint}

// Name returns the user-facing part name used in mark definitions and in
// vizc.toml part tables.
func (p Part) Name() string {
	switch p {
	case PartBar:
		return "bar"
	case PartLine:
		return "line"
	case PartTicks:
		return "ticks"
	case PartWhisker:
		return "whisker"
	case PartPoint:
		return "point"
	}
	return "unknown"
}

// Primitive returns the primitive mark type the part lowers to. An
// out-of-range part is a programming error; it degrades to the point mark so
// release builds keep producing output.
func (p Part) Primitive() string {
	switch p {
	case PartBar:
		return "bar"
	case PartLine:
		return "line"
	case PartTicks:
		return "tick"
	case PartWhisker:
		return "rule"
	case PartPoint:
		return "point"
	}
	return "point"
}

// PartByName resolves a part name, reporting whether it is known.
func PartByName(name string) (Part, bool) {
	for _, p := range emitOrder {
		if p.Name() == name {
			return p, true
		}
	}
	return numParts, false
}
