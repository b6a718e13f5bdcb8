package domain

import (
	"math"

	"github.com/couchcryptid/metar-etl/pkg/metar"
)

// NewObservation flattens a decoded report. The timestamp, ID and derived
// fields are filled in later by ParseRawEvent and EnrichObservation.
func NewObservation(r metar.Report, raw string) Observation {
	obs := Observation{
		Station:    r.Station,
		ReportType: r.Type.String(),
		Kind:       r.Kind.String(),
		Raw:        raw,
		Canonical:  metar.Format(r),
		Wind:       flattenWind(r.Wind),
		CloudState: r.Clouds.String(),
	}

	if v, ok := r.Visibility.Get(); ok {
		m := int(math.Round(v.InMetres()))
		obs.VisibilityM = &m
		obs.CAVOK = v.Kind == metar.VisibilityCAVOK
	}
	for _, rvr := range r.RVR {
		obs.RVR = append(obs.RVR, rvr.String())
	}
	if wx, ok := r.Weather.Get(); ok {
		for _, w := range wx {
			obs.Weather = append(obs.Weather, w.String())
		}
	}
	for _, l := range r.CloudLayers {
		obs.Clouds = append(obs.Clouds, flattenCloudLayer(l))
	}
	if r.VerticalVisibility != nil {
		if d, ok := r.VerticalVisibility.Distance.Get(); ok {
			ft := d * 100
			obs.VerticalVisibilityFt = &ft
		}
	}
	if c, ok := r.Ceiling(); ok {
		obs.CeilingFt = &c
	}

	obs.TemperatureC = r.Temperature.Ptr()
	obs.DewpointC = r.Dewpoint.Ptr()
	if p, ok := r.Pressure.InHectopascals(); ok {
		p = math.Round(p*10) / 10
		obs.PressureHPa = &p
	}

	if r.ColourCode != nil {
		if c, ok := r.ColourCode.Get(); ok {
			obs.ColourCode = c.String()
		}
	}
	for _, re := range r.RecentWeather {
		obs.RecentWeather = append(obs.RecentWeather, re.String())
	}
	for _, t := range r.Trends {
		obs.Trends = append(obs.Trends, t.String())
	}
	if r.Remarks != nil {
		obs.Remarks = *r.Remarks
	}
	return obs
}

func flattenWind(w metar.Wind) Wind {
	out := Wind{Calm: w.Calm, Unit: w.Unit.String()}
	if w.Calm {
		return out
	}
	out.Variable = w.Direction.Variable
	out.DirectionDeg = w.Direction.Heading.Ptr()
	out.Speed = w.Speed.Ptr()
	if w.Gust != nil {
		g := *w.Gust
		out.Gust = &g
	}
	if w.Varying != nil {
		out.VaryingFrom = w.Varying.From.Ptr()
		out.VaryingTo = w.Varying.To.Ptr()
	}
	return out
}

func flattenCloudLayer(l metar.CloudLayer) CloudLayer {
	var out CloudLayer
	if d, ok := l.Density.Get(); ok {
		out.Cover = d.String()
	}
	if h, ok := l.HeightFeet(); ok {
		out.HeightFt = &h
	}
	if t, ok := l.Type.Get(); ok {
		out.Type = t.String()
	}
	return out
}
