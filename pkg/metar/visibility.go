package metar

import (
	"fmt"
	"strconv"
	"strings"
)

// VisibilityKind selects which fields of a Visibility are meaningful.
type VisibilityKind int

const (
	VisibilityMetres VisibilityKind = iota
	VisibilityCAVOK
	VisibilityStatuteMiles
)

// Visibility is the prevailing horizontal visibility.
type Visibility struct {
	Kind VisibilityKind
	// Metres is set for VisibilityMetres. 9999 means 10 km or more.
	Metres int
	// NoDirectionalVariation is the NDV suffix on automated reports.
	NoDirectionalVariation bool
	Miles                  StatuteMiles
}

// CAVOK returns the "ceiling and visibility OK" visibility.
func CAVOK() Visibility {
	return Visibility{Kind: VisibilityCAVOK}
}

// Metres returns a visibility of n metres.
func Metres(n int) Visibility {
	return Visibility{Kind: VisibilityMetres, Metres: n}
}

// Miles returns a visibility in statute miles.
func Miles(m StatuteMiles) Visibility {
	return Visibility{Kind: VisibilityStatuteMiles, Miles: m}
}

func (v Visibility) String() string {
	switch v.Kind {
	case VisibilityCAVOK:
		return "CAVOK"
	case VisibilityStatuteMiles:
		return v.Miles.String()
	default:
		s := fmt.Sprintf("%04d", v.Metres)
		if v.NoDirectionalVariation {
			s += "NDV"
		}
		return s
	}
}

// InMetres converts the visibility to metres. CAVOK reports 10 km.
func (v Visibility) InMetres() float64 {
	switch v.Kind {
	case VisibilityCAVOK:
		return 10000
	case VisibilityStatuteMiles:
		return v.Miles.Value() * 1609.344
	default:
		return float64(v.Metres)
	}
}

// StatuteMiles is a visibility written as whole miles and/or a fraction,
// for example "10SM", "1/2SM", "1 1/2SM" or "M1/4SM".
type StatuteMiles struct {
	Bound       Bound
	Whole       int
	Numerator   int
	Denominator int
}

// Value returns the distance in statute miles.
func (m StatuteMiles) Value() float64 {
	v := float64(m.Whole)
	if m.Denominator != 0 {
		v += float64(m.Numerator) / float64(m.Denominator)
	}
	return v
}

func (m StatuteMiles) String() string {
	var b strings.Builder
	b.WriteString(m.Bound.String())
	hasFraction := m.Denominator != 0
	if m.Whole != 0 || !hasFraction {
		b.WriteString(strconv.Itoa(m.Whole))
		if hasFraction {
			b.WriteByte(' ')
		}
	}
	if hasFraction {
		fmt.Fprintf(&b, "%d/%d", m.Numerator, m.Denominator)
	}
	b.WriteString("SM")
	return b.String()
}

// DirectionalVisibility is a visibility lower than the prevailing one in a
// given direction. A nil Direction means the direction was not reported.
type DirectionalVisibility struct {
	Visibility Data[Visibility]
	Direction  *CompassDirection
}

func (d DirectionalVisibility) String() string {
	s := render(d.Visibility, 4, Visibility.String)
	if d.Direction != nil {
		s += d.Direction.String()
	}
	return s
}

// VerticalVisibility is the VV group. An unknown distance means the sky is
// obscured but the vertical visibility could not be measured (VV///).
type VerticalVisibility struct {
	// Distance is in hundreds of feet.
	Distance Data[int]
}

func (v VerticalVisibility) String() string {
	return "VV" + render(v.Distance, 3, func(d int) string { return fmt.Sprintf("%03d", d) })
}
