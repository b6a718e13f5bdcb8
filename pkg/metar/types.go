package metar

import "fmt"

// ReportType is the optional leading tag of a report.
type ReportType int

const (
	// ReportTypeNone means the report text started directly with the station.
	ReportTypeNone ReportType = iota
	// ReportTypeMETAR is a routine report.
	ReportTypeMETAR
	// ReportTypeSPECI is a special (unscheduled) report.
	ReportTypeSPECI
)

func (t ReportType) String() string {
	switch t {
	case ReportTypeMETAR:
		return "METAR"
	case ReportTypeSPECI:
		return "SPECI"
	default:
		return ""
	}
}

// Kind tells how a report was produced.
type Kind int

const (
	// KindNormal is a regular report.
	KindNormal Kind = iota
	// KindAutomatic is generated without human oversight (AUTO).
	KindAutomatic
	// KindCorrection corrects a previously issued report (COR or CCA).
	KindCorrection
)

func (k Kind) String() string {
	switch k {
	case KindAutomatic:
		return "AUTO"
	case KindCorrection:
		return "COR"
	default:
		return ""
	}
}

// ObservationTime is the DDHHMMZ group. All components are UTC.
type ObservationTime struct {
	Day    int
	Hour   int
	Minute int
}

func (t ObservationTime) String() string {
	return fmt.Sprintf("%02d%02d%02dZ", t.Day, t.Hour, t.Minute)
}

// CompassDirection is one of the eight principal compass points.
type CompassDirection int

const (
	North CompassDirection = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var compassNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d CompassDirection) String() string {
	if d < 0 || int(d) >= len(compassNames) {
		return ""
	}
	return compassNames[d]
}

// compassLiterals lists the two-letter points first so "NE" is never read as "N".
var compassLiterals = []struct {
	text string
	dir  CompassDirection
}{
	{"NE", NorthEast},
	{"NW", NorthWest},
	{"SE", SouthEast},
	{"SW", SouthWest},
	{"N", North},
	{"E", East},
	{"S", South},
	{"W", West},
}

// Bound qualifies a distance that is beyond the range of the instrument.
type Bound int

const (
	// BoundExact is a plain measured value.
	BoundExact Bound = iota
	// BoundLessThan is written with an M prefix.
	BoundLessThan
	// BoundGreaterThan is written with a P prefix.
	BoundGreaterThan
)

func (b Bound) String() string {
	switch b {
	case BoundLessThan:
		return "M"
	case BoundGreaterThan:
		return "P"
	default:
		return ""
	}
}
