// Package units converts heterogeneous quantity/unit pairs into the
// canonical unit of their kind: grams for mass, milliliters for volume,
// plain counts for pieces.
package units

import (
	"fmt"
	"strings"
)

// Kind is the physical category of a unit.
type Kind string

const (
	Mass   Kind = "mass"
	Volume Kind = "volume"
	Count  Kind = "count"
)

// Canonical units per kind.
const (
	Gram       = "g"
	Milliliter = "ml"
	Piece      = "pcs"
)

// factor is an exact rational multiplier to the canonical unit.
// Keeping numerator and denominator separate avoids drift when small
// quantities are accumulated many times.
type factor struct {
	kind Kind
	num  int64
	den  int64
}

// Conversion table. French kitchen units: cc = cuillere a cafe,
// cs = cuillere a soupe.
var factors = map[string]factor{
	"mg":     {Mass, 1, 1000},
	"g":      {Mass, 1, 1},
	"kg":     {Mass, 1000, 1},
	"ml":     {Volume, 1, 1},
	"cl":     {Volume, 10, 1},
	"dl":     {Volume, 100, 1},
	"l":      {Volume, 1000, 1},
	"cc":     {Volume, 5, 1},
	"cs":     {Volume, 15, 1},
	"tasse":  {Volume, 250, 1},
	"pcs":    {Count, 1, 1},
	"piece":  {Count, 1, 1},
	"pieces": {Count, 1, 1},
	"pce":    {Count, 1, 1},
	"botte":  {Count, 1, 1},
	"gousse": {Count, 1, 1},
}

// IncompatibleUnitError reports a unit that cannot be converted within
// the declared kind. It marks a data-entry defect in the recipe and is
// surfaced to the caller rather than coerced.
type IncompatibleUnitError struct {
	Unit string
	Want Kind
}

func (e *IncompatibleUnitError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("unknown unit %q", e.Unit)
	}
	return fmt.Sprintf("unit %q is not a %s unit", e.Unit, e.Want)
}

// KindOf returns the kind a unit belongs to.
func KindOf(unit string) (Kind, error) {
	f, ok := factors[canonicalize(unit)]
	if !ok {
		return "", &IncompatibleUnitError{Unit: unit}
	}
	return f.kind, nil
}

// Normalize converts quantity/unit to the canonical unit of the given
// kind. Count units pass through untouched. No rounding happens here;
// callers round at formatting time only.
func Normalize(quantity float64, unit string, kind Kind) (float64, string, error) {
	f, ok := factors[canonicalize(unit)]
	if !ok {
		return 0, "", &IncompatibleUnitError{Unit: unit, Want: kind}
	}
	if f.kind != kind {
		return 0, "", &IncompatibleUnitError{Unit: unit, Want: kind}
	}
	return quantity * float64(f.num) / float64(f.den), CanonicalUnit(kind), nil
}

// CanonicalUnit returns the canonical unit symbol for a kind.
func CanonicalUnit(kind Kind) string {
	switch kind {
	case Mass:
		return Gram
	case Volume:
		return Milliliter
	default:
		return Piece
	}
}

func canonicalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "gr", "gramme", "grammes":
		return "g"
	case "litre", "litres":
		return "l"
	case "pièce", "pièces", "unite", "unité":
		return "pcs"
	}
	return u
}
