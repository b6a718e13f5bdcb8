package metar

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParse_Scenarios(t *testing.T) {
	t.Run("automatic report with CAVOK and NOSIG", func(t *testing.T) {
		const text = "EDDM 222020Z AUTO VRB01KT CAVOK 20/13 Q1017 NOSIG"
		r, err := Parse(text)

		require.NoError(t, err)
		assert.Equal(t, "EDDM", r.Station)
		assert.Equal(t, ObservationTime{Day: 22, Hour: 20, Minute: 20}, r.Time)
		assert.Equal(t, KindAutomatic, r.Kind)
		assert.Equal(t, VariableDirection(), r.Wind.Direction)
		assert.Equal(t, Known(1), r.Wind.Speed)
		assert.Equal(t, Knots, r.Wind.Unit)
		assert.Equal(t, Known(CAVOK()), r.Visibility)
		assert.Equal(t, Known(20.0), r.Temperature)
		assert.Equal(t, Known(13.0), r.Dewpoint)
		assert.Equal(t, Pressure{Unit: Hectopascals, Value: Known(1017.0)}, r.Pressure)
		assert.Equal(t, []Trend{{Kind: NoSignificantChange}}, r.Trends)
		assert.Equal(t, text, Format(r))
	})

	t.Run("fully masked report", func(t *testing.T) {
		const text = "ETSB 032220Z AUTO /////KT //// // ////// ///// Q//// ///"
		r, err := Parse(text)

		require.NoError(t, err)
		assert.True(t, r.Wind.Direction.Heading.IsUnknown())
		assert.False(t, r.Wind.Direction.Variable)
		assert.True(t, r.Wind.Speed.IsUnknown())
		assert.True(t, r.Visibility.IsUnknown())
		assert.True(t, r.Weather.IsUnknown())
		require.Len(t, r.CloudLayers, 1)
		assert.True(t, r.CloudLayers[0].Density.IsUnknown())
		assert.True(t, r.CloudLayers[0].Height.IsUnknown())
		assert.True(t, r.Temperature.IsUnknown())
		assert.True(t, r.Dewpoint.IsUnknown())
		assert.True(t, r.Pressure.Value.IsUnknown())
		require.NotNil(t, r.ColourCode)
		assert.True(t, r.ColourCode.IsUnknown())
		assert.Equal(t, text, Format(r))
	})

	t.Run("invalid visibility digits", func(t *testing.T) {
		const text = "EDDM 222020Z 27008KT 9A99 20/13 Q1017"
		_, err := Parse(text)

		require.Error(t, err)
		var errs Errors
		require.ErrorAs(t, err, &errs)
		require.NotEmpty(t, errs)
		assert.ErrorIs(t, err, ErrInvalidNumber)

		var found *ParseError
		for _, e := range errs {
			if e.Kind == KindInvalidNumber && e.Length == 4 {
				found = e
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, 21, found.Offset)
		assert.Equal(t, "9A99", found.Found)
		assert.Contains(t, found.Expected, "visibility")
		for _, e := range errs {
			assert.Equal(t, 21, e.Offset)
		}
	})

	t.Run("runway visual range", func(t *testing.T) {
		const text = "LFVP 232230Z AUTO 24009KT 0450 R26/0800N FG VV/// 11/11 Q1015"
		r, err := Parse(text)

		require.NoError(t, err)
		require.Len(t, r.RVR, 1)
		assert.Equal(t, RunwayVisualRange{
			Runway: "26",
			Value:  Known(RVRValue{Lower: RVRReading{Bound: BoundExact, Distance: 800}}),
			Unit:   RVRMetres,
			Trend:  ptr(Known(RVRTrendNone)),
		}, r.RVR[0])
		assert.Equal(t, "R26/0800N", r.RVR[0].String())
		assert.Equal(t, text, Format(r))
	})

	t.Run("cloud layer with masked height", func(t *testing.T) {
		const text = "EDDM 231550Z AUTO 27010KT 240V300 9999 TSRA BKN///CB 24/19 Q1013"
		r, err := Parse(text)

		require.NoError(t, err)
		require.Len(t, r.CloudLayers, 1)
		layer := r.CloudLayers[0]
		assert.Equal(t, Known(Broken), layer.Density)
		assert.True(t, layer.Height.IsUnknown())
		assert.Equal(t, Known(Cumulonimbus), layer.Type)
		assert.Equal(t, "BKN///CB", layer.String())
		assert.Equal(t, text, Format(r))
	})
}

func TestParse_Groups(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, r Report)
	}{
		{
			name: "report type and CCA correction",
			text: "SPECI CCA EDDM 222020Z 27008KT 9999 NCD 20/13 Q1017",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, ReportTypeSPECI, r.Type)
				assert.Equal(t, KindCorrection, r.Kind)
			},
		},
		{
			name: "kind before the station",
			text: "AUTO EDDM 222020Z 27008KT 9999 NCD 20/13 Q1017",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, KindAutomatic, r.Kind)
				assert.Equal(t, "EDDM", r.Station)
			},
		},
		{
			name: "gusts and inches of mercury",
			text: "KJFK 121851Z 31015G25KT 10SM FEW250 M02/M18 A3012",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, HeadingDirection(310), r.Wind.Direction)
				assert.Equal(t, Known(15), r.Wind.Speed)
				assert.Equal(t, ptr(25), r.Wind.Gust)
				assert.Equal(t, Known(Miles(StatuteMiles{Whole: 10})), r.Visibility)
				assert.Equal(t, Known(-2.0), r.Temperature)
				assert.Equal(t, Known(-18.0), r.Dewpoint)
				assert.Equal(t, InchesOfMercury, r.Pressure.Unit)
				v, ok := r.Pressure.Value.Get()
				require.True(t, ok)
				assert.InDelta(t, 30.12, v, 1e-9)
			},
		},
		{
			name: "mixed statute miles",
			text: "KSFO 121856Z 28012KT 1 1/2SM BR OVC004 12/11 A2990",
			check: func(t *testing.T, r Report) {
				v, ok := r.Visibility.Get()
				require.True(t, ok)
				assert.Equal(t, StatuteMiles{Whole: 1, Numerator: 1, Denominator: 2}, v.Miles)
				assert.InDelta(t, 1.5, v.Miles.Value(), 1e-9)
				assert.Equal(t, Known([]Weather{{Conditions: []WeatherCondition{Mist}}}), r.Weather)
			},
		},
		{
			name: "bounded fraction and vertical visibility",
			text: "KDEN 121853Z 00000KT M1/4SM FG VV001 M01/M01 A2985",
			check: func(t *testing.T, r Report) {
				v, _ := r.Visibility.Get()
				assert.Equal(t, StatuteMiles{Bound: BoundLessThan, Numerator: 1, Denominator: 4}, v.Miles)
				assert.Equal(t, &VerticalVisibility{Distance: Known(1)}, r.VerticalVisibility)
				assert.Equal(t, HeadingDirection(0), r.Wind.Direction)
			},
		},
		{
			name: "directional visibility and runway state",
			text: "UUEE 121830Z 18005MPS 9999 1500SW -SN BKN010 M05/M07 Q1002 R88/290350",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, MetresPerSecond, r.Wind.Unit)
				assert.Equal(t, []DirectionalVisibility{{Visibility: Known(Metres(1500)), Direction: ptr(SouthWest)}}, r.DirectionalVisibility)
				assert.Equal(t, []Weather{{Intensity: Light, Conditions: []WeatherCondition{Snow}}}, r.Weather.MustGet())
				assert.Equal(t, []RunwayCondition{{
					Runway:   "88",
					Deposit:  Known(2),
					Extent:   Known(9),
					Depth:    Known(3),
					Friction: Known(50),
				}}, r.RunwayConditions)
			},
		},
		{
			name: "runway visual range range in feet",
			text: "KORD 121851Z 27010KT 1/2SM R28L/2400V4000FT/U FG VV002 08/08 A2990",
			check: func(t *testing.T, r Report) {
				require.Len(t, r.RVR, 1)
				assert.Equal(t, RunwayVisualRange{
					Runway: "28L",
					Value: Known(RVRValue{
						Lower: RVRReading{Distance: 2400},
						Upper: &RVRReading{Distance: 4000},
					}),
					Unit:  RVRFeet,
					Trend: ptr(Known(RVRTrendUpward)),
				}, r.RVR[0])
			},
		},
		{
			name: "masked runway visual range trend",
			text: "EDDF 121850Z 27010KT 0800 R25L/P1500// FG OVC002 08/08 Q1010",
			check: func(t *testing.T, r Report) {
				require.Len(t, r.RVR, 1)
				require.NotNil(t, r.RVR[0].Trend)
				assert.True(t, r.RVR[0].Trend.IsUnknown())
				assert.Equal(t, BoundGreaterThan, r.RVR[0].Value.MustGet().Lower.Bound)
			},
		},
		{
			name: "colour and windshear",
			text: "EGUN 121850Z 24010KT 9999 SCT030 15/08 Q1015 WHT WS R27",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, ptr(Known(ColourWhite)), r.ColourCode)
				assert.Equal(t, &Windshear{Runways: []string{"27"}}, r.Windshear)
			},
		},
		{
			name: "windshear on all runways",
			text: "OMDB 121850Z 34015KT 9999 FEW035 35/20 Q1005 WS ALL RWY NOSIG",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, &Windshear{AllRunways: true}, r.Windshear)
				assert.Len(t, r.Trends, 1)
			},
		},
		{
			name: "sea state",
			text: "ENZV 121850Z 27015KT 9999 FEW020 10/05 Q1010 W12/S4",
			check: func(t *testing.T, r Report) {
				require.NotNil(t, r.SeaCondition)
				assert.Equal(t, Known(12.0), r.SeaCondition.Temperature)
				assert.Equal(t, ptr(Known(4)), r.SeaCondition.State)
				assert.Nil(t, r.SeaCondition.WaveHeight)
			},
		},
		{
			name: "becoming trend with times",
			text: "EGLL 121850Z 24010KT 9999 -RA BKN012 12/10 Q1008 BECMG FM1930 TL2030 27015KT 6000 NSW SCT015",
			check: func(t *testing.T, r Report) {
				require.Len(t, r.Trends, 1)
				tr := r.Trends[0]
				assert.Equal(t, Becoming, tr.Kind)
				require.NotNil(t, tr.Change)
				assert.Equal(t, []TrendTime{{Kind: From, Hour: 19, Minute: 30}, {Kind: Until, Hour: 20, Minute: 30}}, tr.Change.Times)
				require.NotNil(t, tr.Change.Wind)
				assert.Equal(t, Known(15), tr.Change.Wind.Speed)
				assert.Equal(t, ptr(Metres(6000)), tr.Change.Visibility)
				assert.True(t, tr.Change.NoSignificantWeather)
				assert.Equal(t, []CloudLayer{{Density: Known(Scattered), Height: Known(15), Type: Known(CloudTypeNone)}}, tr.Change.CloudLayers)
			},
		},
		{
			name: "clouds in vicinity and remarks",
			text: "LOWW 121850Z 30012KT 9999 FEW040CB 18/09 Q1016 NOSIG CB/NE/E RMK AO2 SLP123=",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, []CloudsInVicinity{{Type: Known(Cumulonimbus), Directions: []CompassDirection{NorthEast, East}}}, r.CloudsInVicinity)
				assert.Equal(t, ptr("AO2 SLP123"), r.Remarks)
			},
		},
		{
			name: "sky clear shortcut",
			text: "KLAX 121853Z 25008KT 10SM SKC 20/12 A2992",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, CloudsNoneDetected, r.Clouds)
				assert.Equal(t, Known[[]Weather](nil), r.Weather)
			},
		},
		{
			name: "recent weather",
			text: "ESSP 032220Z AUTO 02012KT 1200 R09/P1500N -SN FEW003/// M02/M03 Q0990 RESHUP RE//",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, []RecentWeather{
					{Conditions: Known([]WeatherCondition{Showers, UnknownPrecipitation})},
					{Conditions: Unknown[[]WeatherCondition]()},
				}, r.RecentWeather)
			},
		},
		{
			name: "calm wind and no directional variation",
			text: "EDDM 222020Z AUTO CALM 9999NDV NCD 20/13 Q1017",
			check: func(t *testing.T, r Report) {
				assert.True(t, r.Wind.Calm)
				v, _ := r.Visibility.Get()
				assert.True(t, v.NoDirectionalVariation)
			},
		},
		{
			name: "negative zero temperature",
			text: "EDLW 032220Z AUTO 23012KT 3900 // SCT006/// BKN009/// OVC018/// M00/M01 Q1005",
			check: func(t *testing.T, r Report) {
				v, ok := r.Temperature.Get()
				require.True(t, ok)
				assert.Zero(t, v)
				assert.True(t, math.Signbit(v))
			},
		},
		{
			name: "missing groups use defaults",
			text: "EDDM 222020Z 20/13",
			check: func(t *testing.T, r Report) {
				assert.Equal(t, Wind{}, r.Wind)
				assert.True(t, r.Visibility.IsUnknown())
				assert.Equal(t, Pressure{}, r.Pressure)
				assert.Nil(t, r.Remarks)
				assert.Nil(t, r.ColourCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.text)
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Parse("")
		var errs Errors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 1)
		assert.Equal(t, 0, errs[0].Offset)
		assert.Equal(t, KindUnexpected, errs[0].Kind)
		assert.Contains(t, errs[0].Expected, "station")
		assert.Contains(t, err.Error(), "unexpected end of report")
	})

	t.Run("unknown wind unit", func(t *testing.T) {
		_, err := Parse("EDDM 222020Z 27008XT 9999 20/13 Q1017")
		var errs Errors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 1)
		assert.Equal(t, KindInvalidValue, errs[0].Kind)
		assert.Equal(t, 18, errs[0].Offset)
		assert.Equal(t, "XT", errs[0].Found)
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		_, err := Parse("EDDM 222020Z 27008KT 9999 20/13 Q1017 XYZ")
		var errs Errors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 1)
		assert.Equal(t, 38, errs[0].Offset)
		assert.Equal(t, 3, errs[0].Length)
		assert.Equal(t, "XYZ", errs[0].Found)
		assert.Contains(t, errs[0].Expected, "end of report")
		assert.Contains(t, errs[0].Expected, "remarks")
		assert.ErrorIs(t, err, ErrUnexpected)
	})

	t.Run("invalid pressure digits", func(t *testing.T) {
		_, err := Parse("EDDM 222020Z 27008KT 9999 20/13 Q10A7")
		var errs Errors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 1)
		assert.Equal(t, KindInvalidNumber, errs[0].Kind)
		assert.Equal(t, 33, errs[0].Offset)
		assert.Equal(t, "10A7", errs[0].Found)
	})

	t.Run("unknown group in visibility slot", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
			found string
		}{
			{"letters", "EDDM 261550Z 27008KT ABCD 20/13 Q1017", "ABCD"},
			{"slashes", "EDDM 261550Z 27008KT //A/ 20/13 Q1017", "//A/"},
			{"pressure letter", "EDDM 261550Z 27008KT QNH 20/13 Q1017", "QNH"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Parse(tt.input)
				var errs Errors
				require.ErrorAs(t, err, &errs)
				require.NotEmpty(t, errs)
				for _, e := range errs {
					assert.Equal(t, 21, e.Offset, e.Error())
					assert.Equal(t, tt.found, e.Found)
				}
				assert.Equal(t, 21, errs.Offset())
			})
		}
	})

	t.Run("keyword running into a longer token", func(t *testing.T) {
		_, err := Parse("EDDM 261550Z AUTOX 27008KT 9999 20/13 Q1017")
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, 13, errs.Offset())
		assert.Equal(t, "AUTOX", errs[0].Found)
	})

	t.Run("never panics on arbitrary input", func(t *testing.T) {
		inputs := []string{
			"=", "   ", "EDDM", "EDDM 2", "EDDM 222020Z R", "EDDM 222020Z 27008KT R26/",
			"EDDM 222020Z W", "EDDM 222020Z 20/13 Q1017 RMK", "EDDM 222020Z 1 1/", "////////////",
			"EDDM 222020Z 27008KT 9999 20/13 Q1017 TEMPO FM", "\x00\xff",
		}
		for _, in := range inputs {
			assert.NotPanics(t, func() { _, _ = Parse(in) }, in)
		}
	})
}

func TestErrors_Unwrap(t *testing.T) {
	errs := Errors{
		{Kind: KindUnexpected, Expected: []string{"station"}},
		{Kind: KindInvalidNumber, Found: "9A99", Expected: []string{"visibility"}},
	}
	var err error = errs

	assert.True(t, errors.Is(err, ErrUnexpected))
	assert.True(t, errors.Is(err, ErrInvalidNumber))
	assert.False(t, errors.Is(err, ErrInvalidValue))
	assert.Contains(t, err.Error(), "and 1 more")
	assert.Equal(t, -1, Errors(nil).Offset())
}

func TestParseError_Snippet(t *testing.T) {
	e := &ParseError{Input: "EDDM 222020Z 27008KT 9A99", Offset: 21, Length: 4}
	assert.Equal(t, "EDDM 222020Z 27008KT 9A99\n                     ^~~~", e.Snippet())

	end := &ParseError{Input: "EDDM", Offset: 4}
	assert.Equal(t, "EDDM\n    ^", end.Snippet())
}
