package court

import "math"

// ZoneName is the symbolic identifier of a scoring zone.
type ZoneName string

const (
	ZoneFreeThrow   ZoneName = "free-throw"
	ZonePaint       ZoneName = "paint"
	ZoneLogoShot    ZoneName = "logo-shot"
	ZoneCornerThree ZoneName = "corner-three"
	ZoneThreePoint  ZoneName = "three-point"
	ZoneMidRange    ZoneName = "mid-range"
)

// Zone is the classification result: a symbolic name plus a display label.
type Zone struct {
	Name  ZoneName `json:"name"`
	Label string   `json:"label"`
}

var zoneLabels = map[ZoneName]string{
	ZoneFreeThrow:   "Free Throw",
	ZonePaint:       "Paint",
	ZoneLogoShot:    "Logo Shot",
	ZoneCornerThree: "Corner Three",
	ZoneThreePoint:  "Three Pointer",
	ZoneMidRange:    "Mid Range",
}

// Classifier maps points on the court diagram to zones. It is bound to one
// geometry record; switching court standards means constructing a new one.
type Classifier struct {
	geo Geometry
}

func NewClassifier(geo Geometry) *Classifier {
	return &Classifier{geo: geo}
}

func (c *Classifier) Geometry() Geometry { return c.geo }

// Classify is pure and total: every point yields exactly one zone. The
// check order encodes real overlap priority; court markings are not clean
// circles near the corners, so the box and threshold tests must run before
// the plain radius test.
//
//  1. free-throw line band
//  2. restricted area (classified as paint)
//  3. paint box
//  4. logo-range y threshold
//  5. corner three
//  6. beyond the arc
//  7. mid-range fallback
func (c *Classifier) Classify(x, y float64) Zone {
	g := c.geo

	if y >= g.KeyDepth-freeThrowBand && y <= g.KeyDepth+freeThrowBand &&
		x > g.KeyLeft && x < g.KeyRight {
		return zone(ZoneFreeThrow)
	}

	dist := math.Hypot(x-g.BasketX, y-g.BasketY)
	if dist <= g.RestrictedRadius {
		return zone(ZonePaint)
	}

	if x >= g.KeyLeft && x <= g.KeyRight && y >= 0 && y <= g.KeyDepth {
		return zone(ZonePaint)
	}

	// Pure y threshold, no distance or sideline guard: points this deep are
	// off the playable diagram for anything but a heave.
	if y > g.LogoMinY {
		return zone(ZoneLogoShot)
	}

	if y <= g.CornerMaxY && (x < g.CornerOffset || x > g.Width-g.CornerOffset) {
		return zone(ZoneCornerThree)
	}

	if dist > g.ThreePointRadius {
		return zone(ZoneThreePoint)
	}

	return zone(ZoneMidRange)
}

// Distance converts a diagram point to feet from the basket, rounded to
// one decimal.
func (c *Classifier) Distance(x, y float64) float64 {
	g := c.geo
	ft := math.Hypot(x-g.BasketX, y-g.BasketY) / g.UnitsPerFoot
	return math.Round(ft*10) / 10
}

func zone(name ZoneName) Zone {
	return Zone{Name: name, Label: zoneLabels[name]}
}
