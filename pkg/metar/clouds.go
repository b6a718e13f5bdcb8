package metar

import (
	"fmt"
	"strings"
)

// Clouds is the overall cloud state of a report or trend.
type Clouds int

const (
	// CloudsLayers means the state is given by the cloud layers, if any.
	CloudsLayers Clouds = iota
	// CloudsNoneDetected is NCD. SKC and CLR decode to it as well.
	CloudsNoneDetected
	// CloudsNoSignificant is NSC.
	CloudsNoSignificant
)

func (c Clouds) String() string {
	switch c {
	case CloudsNoneDetected:
		return "NCD"
	case CloudsNoSignificant:
		return "NSC"
	default:
		return ""
	}
}

// CloudDensity is the amount of sky covered by a layer, in oktas.
type CloudDensity int

const (
	Few CloudDensity = iota
	Scattered
	Broken
	Overcast
)

var densityCodes = [...]string{"FEW", "SCT", "BKN", "OVC"}

func (d CloudDensity) String() string {
	if d < 0 || int(d) >= len(densityCodes) {
		return ""
	}
	return densityCodes[d]
}

// Oktas returns the upper bound of the coverage in eighths of the sky.
func (d CloudDensity) Oktas() int {
	switch d {
	case Few:
		return 2
	case Scattered:
		return 4
	case Broken:
		return 7
	default:
		return 8
	}
}

// CloudType is the convective cloud suffix of a layer.
type CloudType int

const (
	CloudTypeNone CloudType = iota
	Cumulonimbus
	ToweringCumulus
)

func (t CloudType) String() string {
	switch t {
	case Cumulonimbus:
		return "CB"
	case ToweringCumulus:
		return "TCU"
	default:
		return ""
	}
}

// CloudLayer is one FEW/SCT/BKN/OVC group.
type CloudLayer struct {
	Density Data[CloudDensity]
	// Height of the base in hundreds of feet above the aerodrome.
	Height Data[int]
	// Type is Known(CloudTypeNone) when no suffix was written and Unknown for "///".
	Type Data[CloudType]
}

// HeightFeet returns the layer base in feet.
func (l CloudLayer) HeightFeet() (int, bool) {
	h, ok := l.Height.Get()
	return h * 100, ok
}

// IsCeiling reports whether the layer counts as a ceiling (broken or overcast).
func (l CloudLayer) IsCeiling() bool {
	d, ok := l.Density.Get()
	return ok && (d == Broken || d == Overcast)
}

func (l CloudLayer) String() string {
	var b strings.Builder
	b.WriteString(render(l.Density, 3, CloudDensity.String))
	b.WriteString(render(l.Height, 3, func(h int) string { return fmt.Sprintf("%03d", h) }))
	b.WriteString(render(l.Type, 3, CloudType.String))
	return b.String()
}

// CloudsInVicinity is a convective cloud type seen in one or more directions,
// for example "CB/NE/E".
type CloudsInVicinity struct {
	Type       Data[CloudType]
	Directions []CompassDirection
}

func (c CloudsInVicinity) String() string {
	var b strings.Builder
	b.WriteString(render(c.Type, 3, CloudType.String))
	for _, d := range c.Directions {
		b.WriteByte('/')
		b.WriteString(d.String())
	}
	return b.String()
}
