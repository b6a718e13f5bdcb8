package metar

// conditions is the weather and sky block shared by the report body and
// the TEMPO/BECMG trends.
type conditions struct {
	weather              Data[[]Weather]
	noSignificantWeather bool
	verticalVisibility   *VerticalVisibility
	clouds               Clouds
	layers               []CloudLayer
}

// atmosphere reads the body's conditions. A lone SKC or CLR stands for the
// whole block.
func (p *parser) atmosphere() conditions {
	for _, clear := range []string{"SKC", "CLR"} {
		if p.keyword(clear) {
			return conditions{weather: Known[[]Weather](nil), clouds: CloudsNoneDetected}
		}
	}
	return p.conditions(false)
}

// conditions reads weather, vertical visibility, cloud state and layers.
// Inside a trend NSW is accepted and the "//" weather placeholder is not.
func (p *parser) conditions(inTrend bool) conditions {
	var c conditions
	if !inTrend && p.keyword("//") {
		c.weather = Unknown[[]Weather]()
	} else {
		var list []Weather
		for {
			w, ok := p.weather()
			if !ok {
				break
			}
			list = append(list, w)
		}
		c.weather = Known(list)
	}
	if inTrend {
		c.noSignificantWeather = p.keyword("NSW")
	}
	if vv, ok := p.verticalVisibility(); ok {
		c.verticalVisibility = &vv
	}
	c.clouds = p.cloudState()
	for {
		l, ok := p.cloudLayer()
		if !ok {
			break
		}
		c.layers = append(c.layers, l)
	}
	return c
}

func (p *parser) weather() (w Weather, ok bool) {
	defer p.backtrack(p.pos, &ok)
	switch {
	case p.lit("-"):
		w.Intensity = Light
	case p.lit("+"):
		w.Intensity = Heavy
	case p.lit("VC"):
		w.Intensity = InVicinity
	}
	if w.Conditions, ok = p.conditionCodes("weather"); !ok {
		return w, false
	}
	return w, p.sep()
}

// conditionCodes reads one or more consecutive two-letter condition codes.
func (p *parser) conditionCodes(label string) ([]WeatherCondition, bool) {
	var codes []WeatherCondition
	for p.pos+2 <= len(p.src) {
		c, ok := lookupCondition(p.src[p.pos : p.pos+2])
		if !ok {
			break
		}
		codes = append(codes, c)
		p.pos += 2
	}
	if len(codes) == 0 {
		p.expect(label)
		return nil, false
	}
	return codes, true
}

func (p *parser) verticalVisibility() (v VerticalVisibility, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if !p.lit("VV") {
		p.expect("vertical visibility")
		return v, false
	}
	if v.Distance, ok = masked(p, 3, func() (int, bool) { return p.number(3, 3, "vertical visibility") }); !ok {
		return v, false
	}
	return v, p.sep()
}

func (p *parser) cloudState() Clouds {
	switch {
	case p.keyword("NCD"), p.keyword("CLR"), p.keyword("SKC"):
		return CloudsNoneDetected
	case p.keyword("NSC"):
		return CloudsNoSignificant
	default:
		return CloudsLayers
	}
}

func (p *parser) cloudLayer() (l CloudLayer, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if l.Density, ok = masked(p, 3, p.cloudDensity); !ok {
		return l, false
	}
	if l.Height, ok = masked(p, 3, func() (int, bool) { return p.number(3, 3, "cloud height") }); !ok {
		return l, false
	}
	l.Type = Known(CloudTypeNone)
	if p.lit(placeholder(3)) {
		l.Type = Unknown[CloudType]()
	} else if t, found := p.cloudType(true); found {
		l.Type = Known(t)
	}
	return l, p.sep()
}

func (p *parser) cloudDensity() (CloudDensity, bool) {
	for i, code := range densityCodes {
		if p.lit(code) {
			return CloudDensity(i), true
		}
	}
	p.expect("cloud layer")
	return 0, false
}

// cloudType reads CB or TCU. When optional is set a miss records no error.
func (p *parser) cloudType(optional bool) (CloudType, bool) {
	switch {
	case p.lit("CB"):
		return Cumulonimbus, true
	case p.lit("TCU"):
		return ToweringCumulus, true
	}
	if !optional {
		p.expect("cloud type")
	}
	return CloudTypeNone, false
}

// temperatures reads the temperature/dewpoint group. A missing group yields
// two masked values; a missing dewpoint after the slash yields a masked dewpoint.
func (p *parser) temperatures() (t, d Data[float64]) {
	start := p.pos
	t, ok := masked(p, 2, p.temperature)
	if !ok || !p.lit("/") {
		p.pos = start
		return Unknown[float64](), Unknown[float64]()
	}
	if d, ok = masked(p, 2, p.temperature); !ok {
		d = Unknown[float64]()
	}
	if !p.sep() {
		p.pos = start
		return Unknown[float64](), Unknown[float64]()
	}
	return t, d
}

func (p *parser) pressure() (pr Pressure, ok bool) {
	start := p.pos
	defer p.backtrack(start, &ok)
	scale := 1.0
	switch {
	case p.lit("Q"):
		pr.Unit = Hectopascals
	case p.lit("A"):
		pr.Unit, scale = InchesOfMercury, 100
	}
	// A unit letter without a value after it starts some other group.
	if p.pos == start || (!isDigit(p.peek()) && p.peek() != '/') {
		p.pos = start
		p.expect("pressure")
		return pr, false
	}
	pr.Value, ok = masked(p, 4, func() (float64, bool) {
		n, ok := p.number(4, 4, "pressure")
		return float64(n) / scale, ok
	})
	if !ok {
		return pr, false
	}
	return pr, p.sep()
}
