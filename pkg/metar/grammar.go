package metar

import "math"

func (p *parser) report() (r Report, ok bool) {
	p.skipSpace()
	r.Type = p.reportType()
	early := p.reportKind()
	if r.Station, ok = p.station(); !ok {
		return r, false
	}
	if r.Time, ok = p.observationTime(); !ok {
		return r, false
	}
	// The marker may appear before the station or after the time; the
	// first one wins.
	r.Kind = early
	if late := p.reportKind(); r.Kind == KindNormal {
		r.Kind = late
	}

	if w, ok := p.wind(); ok {
		r.Wind = w
	}
	r.Visibility = p.prevailingVisibility()
	for {
		dv, ok := p.directionalVisibility()
		if !ok {
			break
		}
		r.DirectionalVisibility = append(r.DirectionalVisibility, dv)
	}
	for {
		rvr, ok := p.runwayVisualRange()
		if !ok {
			break
		}
		r.RVR = append(r.RVR, rvr)
	}

	c := p.atmosphere()
	r.Weather = c.weather
	r.VerticalVisibility = c.verticalVisibility
	r.Clouds = c.clouds
	r.CloudLayers = c.layers

	r.Temperature, r.Dewpoint = p.temperatures()
	if pr, ok := p.pressure(); ok {
		r.Pressure = pr
	}

	p.supplementary(&r)

	for {
		t, ok := p.trend()
		if !ok {
			break
		}
		r.Trends = append(r.Trends, t)
	}
	for {
		v, ok := p.cloudsInVicinity()
		if !ok {
			break
		}
		r.CloudsInVicinity = append(r.CloudsInVicinity, v)
	}
	if rmk, ok := p.remarks(); ok {
		r.Remarks = &rmk
	}

	p.skipSpace()
	p.lit("=")
	p.skipSpace()
	if !p.eof() {
		p.expect("end of report")
		return r, false
	}
	return r, true
}

func (p *parser) reportType() ReportType {
	switch {
	case p.keyword("METAR"):
		return ReportTypeMETAR
	case p.keyword("SPECI"):
		return ReportTypeSPECI
	default:
		return ReportTypeNone
	}
}

func (p *parser) reportKind() Kind {
	switch {
	case p.keyword("AUTO"):
		return KindAutomatic
	case p.keyword("COR"), p.keyword("CCA"):
		return KindCorrection
	default:
		return KindNormal
	}
}

// station reads the four character ICAO location indicator.
func (p *parser) station() (s string, ok bool) {
	defer p.backtrack(p.pos, &ok)
	start := p.pos
	for i := 0; i < 4; i++ {
		c := p.peek()
		if !isUpper(c) && !isDigit(c) {
			p.pos = start
			p.expect("station")
			return "", false
		}
		p.pos++
	}
	s = p.src[start:p.pos]
	return s, p.sep()
}

func (p *parser) observationTime() (t ObservationTime, ok bool) {
	defer p.backtrack(p.pos, &ok)
	n, ok := p.number(6, 6, "observation time")
	if !ok {
		return t, false
	}
	t = ObservationTime{Day: n / 10000, Hour: n / 100 % 100, Minute: n % 100}
	if !p.lit("Z") {
		p.expect("Z")
		return t, false
	}
	return t, p.sep()
}

func (p *parser) wind() (w Wind, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if p.keyword("CALM") {
		return Wind{Calm: true}, true
	}
	if p.lit("VRB") {
		w.Direction = VariableDirection()
	} else {
		heading, ok := masked(p, 3, func() (int, bool) { return p.number(3, 3, "wind direction") })
		if !ok {
			return w, false
		}
		w.Direction.Heading = heading
	}
	w.AboveSpeed = p.lit("P")
	if w.Speed, ok = masked(p, 2, func() (int, bool) { return p.number(2, 3, "wind speed") }); !ok {
		return w, false
	}
	if p.lit("G") {
		gust, ok := p.number(2, 3, "gust speed")
		if !ok {
			return w, false
		}
		w.Gust = &gust
	}
	if w.Unit, ok = p.windUnit(); !ok {
		return w, false
	}
	if !p.sep() {
		return w, false
	}
	if v, ok := p.windVarying(); ok {
		w.Varying = &v
	}
	return w, true
}

func (p *parser) windUnit() (WindUnit, bool) {
	for _, u := range windUnitLiterals {
		if p.lit(u.text) {
			return u.unit, true
		}
	}
	n := 0
	for p.pos+n < len(p.src) && isUpper(p.src[p.pos+n]) {
		n++
	}
	if n > 0 {
		p.invalid(KindInvalidValue, p.pos, n, "wind unit")
	} else {
		p.expect("wind unit")
	}
	return 0, false
}

func (p *parser) windVarying() (v WindVarying, ok bool) {
	defer p.backtrack(p.pos, &ok)
	heading := func() (int, bool) { return p.number(3, 3, "varying wind direction") }
	// Only report errors once the V marks this as a varying group.
	p.quiet++
	v.From, ok = masked(p, 3, heading)
	ok = ok && p.lit("V")
	p.quiet--
	if !ok {
		return v, false
	}
	if v.To, ok = masked(p, 3, heading); !ok {
		return v, false
	}
	return v, p.sep()
}

// prevailingVisibility falls back to a masked visibility when the group is missing.
func (p *parser) prevailingVisibility() Data[Visibility] {
	if v, ok := p.visibilityGroup(); ok {
		return v
	}
	return Unknown[Visibility]()
}

func (p *parser) visibilityGroup() (v Data[Visibility], ok bool) {
	defer p.backtrack(p.pos, &ok)
	if v, ok = masked(p, 4, p.visibility); !ok {
		return v, false
	}
	return v, p.sep()
}

func (p *parser) visibility() (v Visibility, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if p.lit("CAVOK") {
		return CAVOK(), true
	}
	if m, ok := p.statuteMiles(); ok {
		return Miles(m), true
	}
	n, ok := p.number(4, 4, "visibility")
	if !ok {
		return v, false
	}
	v = Metres(n)
	v.NoDirectionalVariation = p.lit("NDV")
	return v, true
}

// statuteMiles reads "1 1/2SM", "1/2SM" or "10SM", with an optional M or P.
func (p *parser) statuteMiles() (m StatuteMiles, ok bool) {
	defer p.backtrack(p.pos, &ok)
	p.quiet++
	defer func() { p.quiet-- }()

	switch {
	case p.lit("M"):
		m.Bound = BoundLessThan
	case p.lit("P"):
		m.Bound = BoundGreaterThan
	}
	start := p.pos
	if whole, ok := p.number(1, 2, "visibility"); ok && p.lit(" ") {
		if num, den, ok := p.fraction(); ok && p.lit("SM") {
			m.Whole, m.Numerator, m.Denominator = whole, num, den
			return m, true
		}
	}
	p.pos = start
	if num, den, ok := p.fraction(); ok && p.lit("SM") {
		m.Numerator, m.Denominator = num, den
		return m, true
	}
	p.pos = start
	if whole, ok := p.number(1, 2, "visibility"); ok && p.lit("SM") {
		m.Whole = whole
		return m, true
	}
	return m, false
}

func (p *parser) fraction() (num, den int, ok bool) {
	if num, ok = p.number(1, 1, "fraction"); !ok {
		return 0, 0, false
	}
	if !p.lit("/") {
		return 0, 0, false
	}
	if den, ok = p.number(1, 2, "fraction"); !ok || den == 0 {
		return 0, 0, false
	}
	return num, den, true
}

func (p *parser) directionalVisibility() (d DirectionalVisibility, ok bool) {
	defer p.backtrack(p.pos, &ok)
	d.Visibility, ok = masked(p, 4, func() (Visibility, bool) {
		n, ok := p.number(4, 4, "directional visibility")
		return Metres(n), ok
	})
	if !ok {
		return d, false
	}
	p.quiet++
	dir, found := p.compass()
	p.quiet--
	if found {
		d.Direction = &dir
	}
	return d, p.sep()
}

func (p *parser) compass() (CompassDirection, bool) {
	for _, c := range compassLiterals {
		if p.lit(c.text) {
			return c.dir, true
		}
	}
	p.expect("compass direction")
	return 0, false
}

// runway reads a runway designator: two digits and an optional L, C or R.
func (p *parser) runway() (string, bool) {
	start := p.pos
	if _, ok := p.number(2, 2, "runway"); !ok {
		return "", false
	}
	switch p.peek() {
	case 'L', 'C', 'R':
		p.pos++
	}
	return p.src[start:p.pos], true
}

func (p *parser) runwayVisualRange() (r RunwayVisualRange, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if !p.lit("R") {
		p.expect("runway visual range")
		return r, false
	}
	if r.Runway, ok = p.runway(); !ok {
		return r, false
	}
	if !p.lit("/") {
		p.expect("/")
		return r, false
	}
	if r.Value, ok = masked(p, 4, p.rvrValue); !ok {
		return r, false
	}
	if p.lit("FT") {
		r.Unit = RVRFeet
	}
	if t, ok := p.rvrTrend(); ok {
		r.Trend = &t
	}
	return r, p.sep()
}

func (p *parser) rvrValue() (v RVRValue, ok bool) {
	defer p.backtrack(p.pos, &ok)
	if v.Lower, ok = p.rvrReading(); !ok {
		return v, false
	}
	if p.lit("V") {
		upper, ok := p.rvrReading()
		if !ok {
			return v, false
		}
		v.Upper = &upper
	}
	return v, true
}

func (p *parser) rvrReading() (r RVRReading, ok bool) {
	defer p.backtrack(p.pos, &ok)
	switch {
	case p.lit("M"):
		r.Bound = BoundLessThan
	case p.lit("P"):
		r.Bound = BoundGreaterThan
	}
	r.Distance, ok = p.number(4, 4, "runway visual range")
	return r, ok
}

// rvrTrend reads U, D or N, optionally written after a slash, or "//".
func (p *parser) rvrTrend() (t Data[RVRTrend], ok bool) {
	defer p.backtrack(p.pos, &ok)
	if p.lit("//") {
		return Unknown[RVRTrend](), true
	}
	p.lit("/")
	switch {
	case p.lit("U"):
		return Known(RVRTrendUpward), true
	case p.lit("D"):
		return Known(RVRTrendDownward), true
	case p.lit("N"):
		return Known(RVRTrendNone), true
	}
	return t, false
}

// temperature reads a two digit value with an optional M for negatives.
// M00 is kept as negative zero.
func (p *parser) temperature() (v float64, ok bool) {
	defer p.backtrack(p.pos, &ok)
	negative := p.lit("M")
	n, ok := p.number(2, 2, "temperature")
	if !ok {
		return 0, false
	}
	v = float64(n)
	if negative {
		v = math.Copysign(v, -1)
	}
	return v, true
}
