package metar

import (
	"fmt"
	"strings"
)

// TrendKind is the change indicator of a trend forecast.
type TrendKind int

const (
	// NoSignificantChange is NOSIG.
	NoSignificantChange TrendKind = iota
	// Temporary is TEMPO: fluctuations lasting less than an hour at a time.
	Temporary
	// Becoming is BECMG: a lasting change.
	Becoming
)

func (k TrendKind) String() string {
	switch k {
	case Temporary:
		return "TEMPO"
	case Becoming:
		return "BECMG"
	default:
		return "NOSIG"
	}
}

// TrendTimeKind is the time indicator of a trend change.
type TrendTimeKind int

const (
	From TrendTimeKind = iota
	Until
	At
)

func (k TrendTimeKind) String() string {
	switch k {
	case Until:
		return "TL"
	case At:
		return "AT"
	default:
		return "FM"
	}
}

// TrendTime is a FMhhmm, TLhhmm or AThhmm group.
type TrendTime struct {
	Kind   TrendTimeKind
	Hour   int
	Minute int
}

func (t TrendTime) String() string {
	return fmt.Sprintf("%s%02d%02d", t.Kind, t.Hour, t.Minute)
}

// WeatherChange is the forecast content of a TEMPO or BECMG trend. Only the
// groups that are expected to change are present.
type WeatherChange struct {
	Times      []TrendTime
	Wind       *Wind
	Visibility *Visibility
	Weather    []Weather
	// NoSignificantWeather is NSW: the end of significant weather.
	NoSignificantWeather bool
	VerticalVisibility   *VerticalVisibility
	Clouds               Clouds
	CloudLayers          []CloudLayer
	ColourCode           *Data[ColourCode]
}

func (c WeatherChange) parts() []string {
	var parts []string
	for _, t := range c.Times {
		parts = append(parts, t.String())
	}
	if c.Wind != nil {
		parts = append(parts, c.Wind.String())
	}
	if c.Visibility != nil {
		parts = append(parts, c.Visibility.String())
	}
	for _, w := range c.Weather {
		parts = append(parts, w.String())
	}
	if c.NoSignificantWeather {
		parts = append(parts, "NSW")
	}
	if c.VerticalVisibility != nil {
		parts = append(parts, c.VerticalVisibility.String())
	}
	if c.Clouds != CloudsLayers {
		parts = append(parts, c.Clouds.String())
	}
	for _, l := range c.CloudLayers {
		parts = append(parts, l.String())
	}
	if c.ColourCode != nil {
		parts = append(parts, renderColour(*c.ColourCode))
	}
	return parts
}

// Trend is one trend forecast. Change is nil for NOSIG.
type Trend struct {
	Kind   TrendKind
	Change *WeatherChange
}

func (t Trend) String() string {
	if t.Change == nil {
		return t.Kind.String()
	}
	return strings.Join(append([]string{t.Kind.String()}, t.Change.parts()...), " ")
}
