package metar

// supplementary reads the groups between the pressure and the trends.
func (p *parser) supplementary(r *Report) {
	for {
		re, ok := p.recentWeather()
		if !ok {
			break
		}
		r.RecentWeather = append(r.RecentWeather, re)
	}
	if c, ok := p.colourGroup(); ok {
		r.ColourCode = &c
	}
	if ws, ok := p.windshear(); ok {
		r.Windshear = &ws
	}
	for {
		rc, ok := p.runwayCondition()
		if !ok {
			break
		}
		r.RunwayConditions = append(r.RunwayConditions, rc)
	}
	if sea, ok := p.seaCondition(); ok {
		r.SeaCondition = &sea
	}
}

func (p *parser) recentWeather() (r RecentWeather, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if !p.lit("RE") {
		p.expect("recent weather")
		return r, false
	}
	if p.lit(placeholder(2)) {
		r.Conditions = Unknown[[]WeatherCondition]()
	} else {
		codes, ok := p.conditionCodes("recent weather")
		if !ok {
			return r, false
		}
		r.Conditions = Known(codes)
	}
	return r, p.sep()
}

func (p *parser) colourGroup() (c Data[ColourCode], ok bool) {
	defer p.backtrack(p.pos, &ok)
	if c, ok = masked(p, 3, p.colourCode); !ok {
		return c, false
	}
	return c, p.sep()
}

func (p *parser) colourCode() (ColourCode, bool) {
	for i, code := range colourLiterals {
		if p.lit(code) {
			return ColourCode(i), true
		}
	}
	p.expect("colour code")
	return 0, false
}

func (p *parser) windshear() (ws Windshear, ok bool) {
	start := p.pos
	if p.keyword("WS") && p.keyword("ALL") && p.keyword("RWY") {
		return Windshear{AllRunways: true}, true
	}
	p.pos = start
	for {
		rwy, found := p.windshearRunway()
		if !found {
			break
		}
		ws.Runways = append(ws.Runways, rwy)
	}
	return ws, len(ws.Runways) > 0
}

// windshearRunway reads "WS R23" or "WS RWY23".
func (p *parser) windshearRunway() (rwy string, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if !p.keyword("WS") {
		return "", false
	}
	if !p.lit("RWY") && !p.lit("R") {
		p.expect("runway")
		return "", false
	}
	if rwy, ok = p.runway(); !ok {
		return "", false
	}
	return rwy, p.sep()
}

func (p *parser) runwayCondition() (c RunwayCondition, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if p.keyword("R/SNOCLO") {
		return RunwayCondition{SnowClosed: true}, true
	}
	if !p.lit("R") {
		p.expect("runway condition")
		return c, false
	}
	if c.Runway, ok = p.runway(); !ok {
		return c, false
	}
	if !p.lit("/") {
		p.expect("/")
		return c, false
	}
	digits := func(n int, label string) func() (int, bool) {
		return func() (int, bool) { return p.number(n, n, label) }
	}
	if p.lit("CLRD") {
		c.Cleared = true
	} else {
		if c.Deposit, ok = masked(p, 1, digits(1, "runway deposit")); !ok {
			return c, false
		}
		if c.Extent, ok = masked(p, 1, digits(1, "runway contamination")); !ok {
			return c, false
		}
		if c.Depth, ok = masked(p, 2, digits(2, "deposit depth")); !ok {
			return c, false
		}
	}
	if c.Friction, ok = masked(p, 2, digits(2, "braking action")); !ok {
		return c, false
	}
	return c, p.sep()
}

func (p *parser) seaCondition() (s SeaCondition, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if !p.lit("W") {
		p.expect("sea condition")
		return s, false
	}
	if s.Temperature, ok = masked(p, 2, p.temperature); !ok {
		return s, false
	}
	if !p.lit("/") {
		p.expect("/")
		return s, false
	}
	switch {
	case p.lit("S"):
		state, ok := masked(p, 1, func() (int, bool) { return p.number(1, 1, "state of the sea") })
		if !ok {
			return s, false
		}
		s.State = &state
	case p.lit("H"):
		height, ok := masked(p, 3, func() (int, bool) { return p.number(1, 3, "wave height") })
		if !ok {
			return s, false
		}
		s.WaveHeight = &height
	default:
		p.expect("sea state or wave height")
		return s, false
	}
	return s, p.sep()
}
