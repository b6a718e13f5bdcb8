package metar

import "strings"

func (p *parser) trend() (t Trend, ok bool) {
	switch {
	case p.keyword("NOSIG"):
		return Trend{Kind: NoSignificantChange}, true
	case p.keyword("TEMPO"):
		t.Kind = Temporary
	case p.keyword("BECMG"):
		t.Kind = Becoming
	default:
		return t, false
	}
	change := p.weatherChange()
	t.Change = &change
	return t, true
}

func (p *parser) weatherChange() WeatherChange {
	var c WeatherChange
	for {
		tt, ok := p.trendTime()
		if !ok {
			break
		}
		c.Times = append(c.Times, tt)
	}
	if w, ok := p.wind(); ok {
		c.Wind = &w
	}
	if v, ok := p.trendVisibility(); ok {
		c.Visibility = &v
	}
	cond := p.conditions(true)
	c.Weather, _ = cond.weather.Get()
	c.NoSignificantWeather = cond.noSignificantWeather
	c.VerticalVisibility = cond.verticalVisibility
	c.Clouds = cond.clouds
	c.CloudLayers = cond.layers
	if colour, ok := p.colourGroup(); ok {
		c.ColourCode = &colour
	}
	return c
}

func (p *parser) trendTime() (t TrendTime, ok bool) {
	defer p.backtrack(p.pos, &ok)
	switch {
	case p.lit("FM"):
		t.Kind = From
	case p.lit("TL"):
		t.Kind = Until
	case p.lit("AT"):
		t.Kind = At
	default:
		p.expect("trend time")
		return t, false
	}
	n, ok := p.number(4, 4, "trend time")
	if !ok {
		return t, false
	}
	t.Hour, t.Minute = n/100, n%100
	return t, p.sep()
}

// trendVisibility is a visibility without the masked form.
func (p *parser) trendVisibility() (v Visibility, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if v, ok = p.visibility(); !ok {
		return v, false
	}
	return v, p.sep()
}

func (p *parser) cloudsInVicinity() (c CloudsInVicinity, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if c.Type, ok = masked(p, 3, func() (CloudType, bool) { return p.cloudType(false) }); !ok {
		return c, false
	}
	for p.lit("/") {
		dir, found := p.compass()
		if !found {
			return c, false
		}
		c.Directions = append(c.Directions, dir)
	}
	if len(c.Directions) == 0 {
		p.expect("/")
		return c, false
	}
	return c, p.sep()
}

// remarks reads RMK and the free text after it, up to "=" or the end.
func (p *parser) remarks() (string, bool) {
	start := p.pos
	if !p.lit("RMK") {
		p.expect("remarks")
		return "", false
	}
	if c := p.peek(); !p.eof() && !isSpace(c) && c != '=' {
		p.pos = start
		p.expect("remarks")
		return "", false
	}
	end := strings.IndexByte(p.src[p.pos:], '=')
	if end < 0 {
		end = len(p.src) - p.pos
	}
	text := strings.TrimSpace(p.src[p.pos : p.pos+end])
	p.pos += end
	return text, true
}
