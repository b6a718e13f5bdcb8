package metar

import (
	"fmt"
	"strconv"
	"strings"
)

// ColourCode is the military aerodrome colour state.
type ColourCode int

const (
	ColourBluePlus ColourCode = iota
	ColourBlue
	ColourWhite
	ColourGreen
	ColourYellow1
	ColourYellow2
	ColourYellow
	ColourAmber
	ColourRed
)

// colourLiterals is in match order: BLU+ before BLU, YLO1/YLO2 before YLO.
var colourLiterals = [...]string{
	ColourBluePlus: "BLU+",
	ColourBlue:     "BLU",
	ColourWhite:    "WHT",
	ColourGreen:    "GRN",
	ColourYellow1:  "YLO1",
	ColourYellow2:  "YLO2",
	ColourYellow:   "YLO",
	ColourAmber:    "AMB",
	ColourRed:      "RED",
}

func (c ColourCode) String() string {
	if c < 0 || int(c) >= len(colourLiterals) {
		return ""
	}
	return colourLiterals[c]
}

func renderColour(c Data[ColourCode]) string {
	return render(c, 3, ColourCode.String)
}

// Windshear lists the runways affected by windshear, or all of them.
type Windshear struct {
	AllRunways bool
	Runways    []string
}

func (w Windshear) String() string {
	if w.AllRunways {
		return "WS ALL RWY"
	}
	parts := make([]string, len(w.Runways))
	for i, rwy := range w.Runways {
		parts[i] = "WS R" + rwy
	}
	return strings.Join(parts, " ")
}

// RunwayCondition is a runway state group.
//
// The encoded form is R<rwy>/EeddBB: deposit type, extent of contamination,
// depth of deposit and braking action. Cleared runways replace the first four
// digits with CLRD, and R/SNOCLO closes the aerodrome because of snow.
type RunwayCondition struct {
	Runway     string
	SnowClosed bool
	Cleared    bool
	Deposit    Data[int]
	Extent     Data[int]
	Depth      Data[int]
	Friction   Data[int]
}

func (c RunwayCondition) String() string {
	if c.SnowClosed {
		return "R/SNOCLO"
	}
	one := func(v int) string { return strconv.Itoa(v) }
	two := func(v int) string { return fmt.Sprintf("%02d", v) }
	var b strings.Builder
	b.WriteByte('R')
	b.WriteString(c.Runway)
	b.WriteByte('/')
	if c.Cleared {
		b.WriteString("CLRD")
	} else {
		b.WriteString(render(c.Deposit, 1, one))
		b.WriteString(render(c.Extent, 1, one))
		b.WriteString(render(c.Depth, 2, two))
	}
	b.WriteString(render(c.Friction, 2, two))
	return b.String()
}

// SeaCondition is the W group: sea surface temperature and either the state
// of the sea (S, WMO code 0-9) or the significant wave height (H, decimetres).
type SeaCondition struct {
	Temperature Data[float64]
	State       *Data[int]
	WaveHeight  *Data[int]
}

func (s SeaCondition) String() string {
	var b strings.Builder
	b.WriteByte('W')
	b.WriteString(renderTemperature(s.Temperature))
	b.WriteByte('/')
	switch {
	case s.State != nil:
		b.WriteByte('S')
		b.WriteString(render(*s.State, 1, strconv.Itoa))
	case s.WaveHeight != nil:
		b.WriteByte('H')
		b.WriteString(render(*s.WaveHeight, 3, func(h int) string { return fmt.Sprintf("%03d", h) }))
	}
	return b.String()
}
