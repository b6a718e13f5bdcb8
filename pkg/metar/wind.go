package metar

import (
	"fmt"
	"strings"
)

// WindUnit is the unit shared by the speed and gust of one wind group.
type WindUnit int

const (
	Knots WindUnit = iota
	MetresPerSecond
	KilometresPerHour
)

func (u WindUnit) String() string {
	switch u {
	case MetresPerSecond:
		return "MPS"
	case KilometresPerHour:
		return "KMH"
	default:
		return "KT"
	}
}

// windUnitLiterals is ordered longest first. KPH is an older spelling of KMH.
var windUnitLiterals = []struct {
	text string
	unit WindUnit
}{
	{"MPS", MetresPerSecond},
	{"KMH", KilometresPerHour},
	{"KPH", KilometresPerHour},
	{"KT", Knots},
}

// WindDirection is either a (possibly masked) heading in degrees or VRB.
type WindDirection struct {
	Variable bool
	Heading  Data[int]
}

// HeadingDirection returns a direction of deg degrees.
func HeadingDirection(deg int) WindDirection {
	return WindDirection{Heading: Known(deg)}
}

// VariableDirection returns the VRB direction.
func VariableDirection() WindDirection {
	return WindDirection{Variable: true}
}

func (d WindDirection) String() string {
	if d.Variable {
		return "VRB"
	}
	return render(d.Heading, 3, func(h int) string { return fmt.Sprintf("%03d", h) })
}

// WindVarying is the dddVddd group. The pair is kept as reported; no ordering
// between From and To is implied.
type WindVarying struct {
	From Data[int]
	To   Data[int]
}

func (v WindVarying) String() string {
	heading := func(h int) string { return fmt.Sprintf("%03d", h) }
	return render(v.From, 3, heading) + "V" + render(v.To, 3, heading)
}

// Wind is the surface wind group.
//
// The zero value is the default used when a report has no wind group: a
// masked heading and speed in knots, rendered as "/////KT".
type Wind struct {
	// Calm is set for the CALM literal; all other fields are then ignored.
	Calm      bool
	Direction WindDirection
	Speed     Data[int]
	// AboveSpeed marks a P prefix: the speed exceeds the reported value.
	AboveSpeed bool
	Gust       *int
	Unit       WindUnit
	Varying    *WindVarying
}

func (w Wind) String() string {
	if w.Calm {
		return "CALM"
	}
	var b strings.Builder
	b.WriteString(w.Direction.String())
	if w.AboveSpeed {
		b.WriteByte('P')
	}
	b.WriteString(render(w.Speed, 2, func(s int) string { return fmt.Sprintf("%02d", s) }))
	if w.Gust != nil {
		fmt.Fprintf(&b, "G%02d", *w.Gust)
	}
	b.WriteString(w.Unit.String())
	if w.Varying != nil {
		b.WriteByte(' ')
		b.WriteString(w.Varying.String())
	}
	return b.String()
}
