// Package court holds the court geometry constants, the point-to-zone
// classifier and the zone action catalog. Everything here is pure: no
// state beyond the immutable geometry a classifier is constructed with.
package court

import "github.com/courtkeeper/courtside/internal/model"

// Geometry describes one court standard in diagram units. Records are
// immutable constants; a classifier is bound to exactly one of them for
// its whole lifetime.
type Geometry struct {
	Standard model.CourtStandard

	Width  float64
	Height float64

	BasketX float64
	BasketY float64

	// Key (paint) rectangle: x in [KeyLeft, KeyRight], y in [0, KeyDepth]
	// measured from the baseline.
	KeyLeft  float64
	KeyRight float64
	KeyDepth float64

	FreeThrowRadius  float64
	RestrictedRadius float64

	ThreePointRadius float64
	// Corner threes: straight segments run parallel to the sidelines at
	// CornerOffset from each side, up to CornerMaxY where the arc takes over.
	CornerOffset float64
	CornerMaxY   float64

	// Beyond this y everything is an extreme-range (logo) attempt.
	LogoMinY float64

	// Diagram units per foot, used by Distance.
	UnitsPerFoot float64
}

// Free-throw taps snap to the line inside a fixed band around the top of
// the key, same width for both standards.
const freeThrowBand = 20.0

// nbaGeometry is an NBA half court at 10 units per foot (50ft x 47ft).
var nbaGeometry = Geometry{
	Standard:         model.CourtNBA,
	Width:            500,
	Height:           470,
	BasketX:          250,
	BasketY:          52.5,
	KeyLeft:          170,
	KeyRight:         330,
	KeyDepth:         190,
	FreeThrowRadius:  60,
	RestrictedRadius: 40,
	ThreePointRadius: 237.5,
	CornerOffset:     30,
	CornerMaxY:       140,
	LogoMinY:         350,
	UnitsPerFoot:     10,
}

// fibaGeometry is a FIBA half court at 10 units per meter (15m x 14m).
// One foot is 0.3048m, hence the fractional unit factor.
var fibaGeometry = Geometry{
	Standard:         model.CourtFIBA,
	Width:            150,
	Height:           140,
	BasketX:          75,
	BasketY:          15.75,
	KeyLeft:          50.5,
	KeyRight:         99.5,
	KeyDepth:         58,
	FreeThrowRadius:  18,
	RestrictedRadius: 12.5,
	ThreePointRadius: 67.5,
	CornerOffset:     9,
	CornerMaxY:       45,
	LogoMinY:         105,
	UnitsPerFoot:     3.048,
}

// GeometryFor returns the geometry record for a court standard. Unknown
// standards fall back to NBA so a half-configured session still classifies.
func GeometryFor(standard model.CourtStandard) Geometry {
	if standard == model.CourtFIBA {
		return fibaGeometry
	}
	return nbaGeometry
}
