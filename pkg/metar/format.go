package metar

import "strings"

// Format renders a report as canonical text: groups in their fixed order,
// separated by single spaces, without a "=" terminator.
//
// Format is the inverse of Parse: Parse(Format(r)) yields r for every report
// Parse can produce. Spellings with more than one accepted form are written in
// one canonical form (CCA as COR, SKC and CLR as NCD, KPH as KMH, "WS RWY23"
// as "WS R23").
func Format(r Report) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	add(r.Type.String())
	add(r.Station)
	add(r.Time.String())
	add(r.Kind.String())

	add(r.Wind.String())
	add(render(r.Visibility, 4, Visibility.String))
	for _, dv := range r.DirectionalVisibility {
		add(dv.String())
	}
	for _, rvr := range r.RVR {
		add(rvr.String())
	}

	if weather, ok := r.Weather.Get(); ok {
		for _, w := range weather {
			add(w.String())
		}
	} else {
		add(placeholder(2))
	}
	if r.VerticalVisibility != nil {
		add(r.VerticalVisibility.String())
	}
	add(r.Clouds.String())
	for _, l := range r.CloudLayers {
		add(l.String())
	}

	add(renderTemperature(r.Temperature) + "/" + renderTemperature(r.Dewpoint))
	add(r.Pressure.String())

	for _, re := range r.RecentWeather {
		add(re.String())
	}
	if r.ColourCode != nil {
		add(renderColour(*r.ColourCode))
	}
	if r.Windshear != nil {
		add(r.Windshear.String())
	}
	for _, c := range r.RunwayConditions {
		add(c.String())
	}
	if r.SeaCondition != nil {
		add(r.SeaCondition.String())
	}

	for _, t := range r.Trends {
		add(t.String())
	}
	for _, c := range r.CloudsInVicinity {
		add(c.String())
	}
	if r.Remarks != nil {
		add(strings.TrimSpace("RMK " + *r.Remarks))
	}

	return strings.Join(parts, " ")
}
