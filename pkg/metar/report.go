package metar

import (
	"fmt"
	"math"
)

// PressureUnit is the unit of the altimeter setting.
type PressureUnit int

const (
	// Hectopascals is the Q group.
	Hectopascals PressureUnit = iota
	// InchesOfMercury is the A group.
	InchesOfMercury
)

// Pressure is the altimeter setting (QNH). The zero value is the default for
// reports without a pressure group and renders as "Q////".
type Pressure struct {
	Unit PressureUnit
	// Value is in hectopascals or in inches of mercury (A2992 is 29.92).
	Value Data[float64]
}

// InHectopascals returns the pressure converted to hectopascals.
func (p Pressure) InHectopascals() (float64, bool) {
	v, ok := p.Value.Get()
	if !ok {
		return 0, false
	}
	if p.Unit == InchesOfMercury {
		return v * 33.8639, true
	}
	return v, true
}

func (p Pressure) String() string {
	if p.Unit == InchesOfMercury {
		return "A" + render(p.Value, 4, func(v float64) string {
			return fmt.Sprintf("%04d", int(math.Round(v*100)))
		})
	}
	return "Q" + render(p.Value, 4, func(v float64) string {
		return fmt.Sprintf("%04d", int(math.Round(v)))
	})
}

// renderTemperature writes a two digit temperature with an M prefix for
// negative values, including negative zero.
func renderTemperature(t Data[float64]) string {
	return render(t, 2, func(v float64) string {
		if math.Signbit(v) {
			return fmt.Sprintf("M%02.0f", math.Abs(v))
		}
		return fmt.Sprintf("%02.0f", v)
	})
}

// Report is a decoded METAR or SPECI.
//
// Groups that may be omitted are pointers or slices and are nil when absent.
// Groups that are always rendered use their zero value as the default: a
// report without a wind group has Wind{} ("/////KT") and one without a
// pressure group has Pressure{} ("Q////").
type Report struct {
	Type    ReportType
	Station string
	Time    ObservationTime
	Kind    Kind

	Wind                  Wind
	Visibility            Data[Visibility]
	DirectionalVisibility []DirectionalVisibility
	RVR                   []RunwayVisualRange

	// Weather is Unknown for the "//" group.
	Weather            Data[[]Weather]
	VerticalVisibility *VerticalVisibility
	Clouds             Clouds
	CloudLayers        []CloudLayer

	Temperature Data[float64]
	Dewpoint    Data[float64]
	Pressure    Pressure

	RecentWeather    []RecentWeather
	ColourCode       *Data[ColourCode]
	Windshear        *Windshear
	RunwayConditions []RunwayCondition
	SeaCondition     *SeaCondition

	Trends           []Trend
	CloudsInVicinity []CloudsInVicinity
	Remarks          *string
}

// String returns the canonical text of the report.
func (r Report) String() string {
	return Format(r)
}

// Ceiling returns the height in feet of the lowest broken or overcast layer
// with a known height, or of the vertical visibility when the sky is obscured.
func (r Report) Ceiling() (int, bool) {
	ceiling, found := 0, false
	for _, l := range r.CloudLayers {
		if !l.IsCeiling() {
			continue
		}
		if h, ok := l.HeightFeet(); ok && (!found || h < ceiling) {
			ceiling, found = h, true
		}
	}
	if r.VerticalVisibility != nil {
		if d, ok := r.VerticalVisibility.Distance.Get(); ok && (!found || d*100 < ceiling) {
			ceiling, found = d*100, true
		}
	}
	return ceiling, found
}
