package compositemark

import (
	"encoding/json"
	"errors"

	"vizc/internal/config"
	"vizc/internal/diag"
	"vizc/internal/spec"
)

// Errorbar is the composite mark type this package expands. The same keyword
// doubles as the reserved aggregate marker users place on the summarized
// axis to force an orientation.
const Errorbar = "errorbar"

// ErrNotComposite indicates the unit spec's mark is not a composite mark and
// needs no expansion.
var ErrNotComposite = errors.New("mark is not a composite mark")

// IsComposite reports whether the unit spec requires expansion.
func IsComposite(u *spec.UnitSpec) bool {
	return u.Mark.Type == Errorbar
}

// envelopeDropped are the input sibling fields absorbed into the per-layer
// representation and therefore removed from the compiled envelope.
var envelopeDropped = map[string]struct{}{
	"transform":  {},
	"selection":  {},
	"projection": {},
}

// Expand lowers a composite-mark unit specification into a layered
// specification plus the transform pipeline that derives its fields.
//
// The pass is pure and synchronous: it either returns a complete layered
// spec or fails with an *OrientationError (the only unrecoverable input).
// Every other irregularity degrades with a warning through r.
func Expand(u *spec.UnitSpec, cfg *config.Config, r diag.Reporter) (*spec.LayeredSpec, error) {
	if !IsComposite(u) {
		return nil, ErrNotComposite
	}
	if r == nil {
		r = diag.NopReporter{}
	}

	center, extent, err := resolveMeasures(&u.Mark, &cfg.Errorbar, r)
	if err != nil {
		return nil, err
	}

	reportUnknownParts(&u.Mark, r)
	enc := filterChannels(u.Encoding, u.Mark.Type, r)

	orient, err := resolveOrientation(enc, &u.Mark)
	if err != nil {
		return nil, err
	}

	axis := extractContinuousAxis(enc, orient, &u.Mark, r)
	plan := synthesizeTransforms(enc, axis, center, extent)
	layers := assembleLayers(&u.Mark, axis, plan.names, plan.rest, &cfg.Errorbar)

	pipeline := make(spec.Pipeline, 0, len(plan.pipeline)+4)
	for _, step := range u.InputTransforms() {
		pipeline = append(pipeline, step)
	}
	pipeline = append(pipeline, plan.pipeline...)

	extra := make(map[string]json.RawMessage, len(u.Extra))
	for k, v := range u.Extra {
		if _, drop := envelopeDropped[k]; drop {
			continue
		}
		extra[k] = v
	}

	return &spec.LayeredSpec{
		Extra:     extra,
		Transform: pipeline,
		Layer:     layers,
	}, nil
}
