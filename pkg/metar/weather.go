package metar

import "strings"

// Intensity qualifies a present weather group.
type Intensity int

const (
	Moderate Intensity = iota
	Light
	Heavy
	// InVicinity is the VC qualifier: the phenomenon is near but not at the aerodrome.
	InVicinity
)

func (i Intensity) String() string {
	switch i {
	case Light:
		return "-"
	case Heavy:
		return "+"
	case InVicinity:
		return "VC"
	default:
		return ""
	}
}

// WeatherCondition is a two-letter descriptor or phenomenon code.
type WeatherCondition int

const (
	// Descriptors.
	Shallow WeatherCondition = iota
	Partial
	Patches
	LowDrifting
	Blowing
	Showers
	Thunderstorm
	Freezing

	// Precipitation.
	Rain
	Drizzle
	Snow
	SnowGrains
	IceCrystals
	IcePellets
	Hail
	SnowPellets
	UnknownPrecipitation

	// Obscuration.
	Fog
	Mist
	Smoke
	VolcanicAsh
	Dust
	Sand
	Haze
	Spray

	// Other.
	DustWhirls
	Squalls
	FunnelCloud
	Sandstorm
	Duststorm
)

var conditionCodes = [...]string{
	Shallow:              "MI",
	Partial:              "PR",
	Patches:              "BC",
	LowDrifting:          "DR",
	Blowing:              "BL",
	Showers:              "SH",
	Thunderstorm:         "TS",
	Freezing:             "FZ",
	Rain:                 "RA",
	Drizzle:              "DZ",
	Snow:                 "SN",
	SnowGrains:           "SG",
	IceCrystals:          "IC",
	IcePellets:           "PL",
	Hail:                 "GR",
	SnowPellets:          "GS",
	UnknownPrecipitation: "UP",
	Fog:                  "FG",
	Mist:                 "BR",
	Smoke:                "FU",
	VolcanicAsh:          "VA",
	Dust:                 "DU",
	Sand:                 "SA",
	Haze:                 "HZ",
	Spray:                "PY",
	DustWhirls:           "PO",
	Squalls:              "SQ",
	FunnelCloud:          "FC",
	Sandstorm:            "SS",
	Duststorm:            "DS",
}

func (c WeatherCondition) String() string {
	if c < 0 || int(c) >= len(conditionCodes) {
		return ""
	}
	return conditionCodes[c]
}

// lookupCondition maps a two-letter code to its condition.
func lookupCondition(code string) (WeatherCondition, bool) {
	for i, s := range conditionCodes {
		if s == code {
			return WeatherCondition(i), true
		}
	}
	return 0, false
}

// Weather is one present weather group, for example "-TSRA" or "VCSH".
// Conditions keep the order they were reported in.
type Weather struct {
	Intensity  Intensity
	Conditions []WeatherCondition
}

func (w Weather) String() string {
	var b strings.Builder
	b.WriteString(w.Intensity.String())
	writeConditions(&b, w.Conditions)
	return b.String()
}

func writeConditions(b *strings.Builder, conditions []WeatherCondition) {
	for _, c := range conditions {
		b.WriteString(c.String())
	}
}

// RecentWeather is an RE group: weather of operational significance observed
// since the previous report. RE// is a masked group.
type RecentWeather struct {
	Conditions Data[[]WeatherCondition]
}

func (r RecentWeather) String() string {
	return "RE" + render(r.Conditions, 2, func(cs []WeatherCondition) string {
		var b strings.Builder
		writeConditions(&b, cs)
		return b.String()
	})
}
