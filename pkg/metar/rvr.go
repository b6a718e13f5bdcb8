package metar

import (
	"fmt"
	"strings"
)

// RVRUnit is the unit of a runway visual range.
type RVRUnit int

const (
	RVRMetres RVRUnit = iota
	RVRFeet
)

func (u RVRUnit) String() string {
	if u == RVRFeet {
		return "FT"
	}
	return ""
}

// RVRTrend is the tendency of a runway visual range.
type RVRTrend int

const (
	RVRTrendUpward RVRTrend = iota
	RVRTrendDownward
	// RVRTrendNone is the N tendency: no distinct change.
	RVRTrendNone
)

func (t RVRTrend) String() string {
	switch t {
	case RVRTrendUpward:
		return "U"
	case RVRTrendDownward:
		return "D"
	default:
		return "N"
	}
}

// RVRReading is one bounded distance.
type RVRReading struct {
	Bound    Bound
	Distance int
}

func (r RVRReading) String() string {
	return fmt.Sprintf("%s%04d", r.Bound, r.Distance)
}

// RVRValue is a single reading or, when Upper is set, a range written "lowerVupper".
type RVRValue struct {
	Lower RVRReading
	Upper *RVRReading
}

func (v RVRValue) String() string {
	if v.Upper == nil {
		return v.Lower.String()
	}
	return v.Lower.String() + "V" + v.Upper.String()
}

// RunwayVisualRange is an RVR group such as "R26/0800N" or "R09/P1500D".
type RunwayVisualRange struct {
	// Runway is the designator, for example "26" or "09L".
	Runway string
	Value  Data[RVRValue]
	Unit   RVRUnit
	// Trend is nil when no tendency was reported and Unknown for "//".
	Trend *Data[RVRTrend]
}

func (r RunwayVisualRange) String() string {
	var b strings.Builder
	b.WriteByte('R')
	b.WriteString(r.Runway)
	b.WriteByte('/')
	b.WriteString(render(r.Value, 4, RVRValue.String))
	b.WriteString(r.Unit.String())
	if r.Trend != nil {
		b.WriteString(render(*r.Trend, 2, RVRTrend.String))
	}
	return b.String()
}
