package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-etl/pkg/metar"
)

const (
	testAutoReport = "EDDM 261550Z AUTO 27008KT 9999 NCD 20/13 Q1017"
	testUSReport   = "METAR KJFK 261551Z 31012G20KT 1 1/2SM -RA BR BKN008 OVC015 18/16 A2992 RMK AO2"
	testTimeBucket = "2024-04-26T15:00:00Z"
)

func intPtr(v int) *int { return &v }

func TestReportText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", testAutoReport, testAutoReport},
		{"feed date line", "2024/04/26 15:50\n" + testAutoReport + "\n", testAutoReport},
		{"wrapped lines", "EDDM 261550Z AUTO 27008KT\n     9999 NCD 20/13 Q1017", testAutoReport},
		{"surrounding blanks", "  \t" + testAutoReport + " \r\n", testAutoReport},
		{"empty", "   \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReportText([]byte(tt.input)))
		})
	}
}

func TestParseRawEvent(t *testing.T) {
	msgTime := time.Date(2024, 4, 26, 15, 52, 0, 0, time.UTC)

	t.Run("automated report", func(t *testing.T) {
		raw := RawEvent{Value: []byte("2024/04/26 15:50\n" + testAutoReport), Timestamp: msgTime}
		obs, err := ParseRawEvent(raw, MetarDecoder)

		require.NoError(t, err)
		assert.Equal(t, "EDDM", obs.Station)
		assert.Equal(t, "AUTO", obs.Kind)
		assert.Empty(t, obs.ReportType)
		assert.Equal(t, time.Date(2024, 4, 26, 15, 50, 0, 0, time.UTC), obs.ObservedAt)
		assert.Equal(t, testAutoReport, obs.Raw)
		assert.Equal(t, testAutoReport, obs.Canonical)
		assert.Equal(t, Wind{DirectionDeg: intPtr(270), Speed: intPtr(8), Unit: "KT"}, obs.Wind)
		assert.Equal(t, intPtr(9999), obs.VisibilityM)
		assert.Equal(t, "NCD", obs.CloudState)
		assert.Nil(t, obs.CeilingFt)
		require.NotNil(t, obs.TemperatureC)
		assert.Equal(t, 20.0, *obs.TemperatureC)
		assert.Equal(t, 13.0, *obs.DewpointC)
		assert.Equal(t, 1017.0, *obs.PressureHPa)
	})

	t.Run("US report with clouds and remarks", func(t *testing.T) {
		raw := RawEvent{Value: []byte(testUSReport), Timestamp: msgTime}
		obs, err := ParseRawEvent(raw, MetarDecoder)

		require.NoError(t, err)
		assert.Equal(t, "METAR", obs.ReportType)
		assert.Equal(t, "KJFK", obs.Station)
		assert.Equal(t, intPtr(20), obs.Wind.Gust)
		assert.Equal(t, intPtr(2414), obs.VisibilityM)
		assert.Equal(t, []string{"-RA", "BR"}, obs.Weather)
		assert.Equal(t, []CloudLayer{
			{Cover: "BKN", HeightFt: intPtr(800)},
			{Cover: "OVC", HeightFt: intPtr(1500)},
		}, obs.Clouds)
		assert.Equal(t, intPtr(800), obs.CeilingFt)
		assert.InDelta(t, 1013.2, *obs.PressureHPa, 1e-9)
		assert.Equal(t, "AO2", obs.Remarks)
		assert.Equal(t, testUSReport, obs.Canonical)
	})

	t.Run("canonical text differs from raw", func(t *testing.T) {
		raw := RawEvent{Value: []byte("SPECI EDDM 261550Z CCA 27008KPH 9999 SKC 20/13 Q1017="), Timestamp: msgTime}
		obs, err := ParseRawEvent(raw, MetarDecoder)

		require.NoError(t, err)
		assert.Equal(t, "COR", obs.Kind)
		assert.Equal(t, "SPECI EDDM 261550Z COR 27008KMH 9999 NCD 20/13 Q1017", obs.Canonical)
	})

	t.Run("empty message", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(" \n ")}, MetarDecoder)
		assert.ErrorIs(t, err, ErrEmptyReport)
	})

	t.Run("malformed report", func(t *testing.T) {
		raw := RawEvent{Value: []byte("EDDM 261550Z 27008KT 9A99 20/13 Q1017"), Timestamp: msgTime}
		_, err := ParseRawEvent(raw, MetarDecoder)

		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "decode report: "))
		var perrs metar.Errors
		require.True(t, errors.As(err, &perrs))
		assert.NotEmpty(t, perrs)
	})

	t.Run("decoder is pluggable", func(t *testing.T) {
		calls := 0
		dec := DecoderFunc(func(text string) (metar.Report, error) {
			calls++
			return metar.Parse(text)
		})
		_, err := ParseRawEvent(RawEvent{Value: []byte(testAutoReport), Timestamp: msgTime}, dec)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestResolveObservedAt(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		obs  metar.ObservationTime
		want time.Time
	}{
		{
			"same day",
			time.Date(2024, 4, 26, 15, 52, 0, 0, time.UTC),
			metar.ObservationTime{Day: 26, Hour: 15, Minute: 50},
			time.Date(2024, 4, 26, 15, 50, 0, 0, time.UTC),
		},
		{
			"slightly ahead of the message",
			time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC),
			metar.ObservationTime{Day: 26, Hour: 15, Minute: 20},
			time.Date(2024, 4, 26, 15, 20, 0, 0, time.UTC),
		},
		{
			"previous month",
			time.Date(2024, 5, 1, 0, 20, 0, 0, time.UTC),
			metar.ObservationTime{Day: 30, Hour: 23, Minute: 50},
			time.Date(2024, 4, 30, 23, 50, 0, 0, time.UTC),
		},
		{
			"previous year",
			time.Date(2025, 1, 1, 0, 5, 0, 0, time.UTC),
			metar.ObservationTime{Day: 31, Hour: 23, Minute: 55},
			time.Date(2024, 12, 31, 23, 55, 0, 0, time.UTC),
		},
		{
			"skips months without the day",
			time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
			metar.ObservationTime{Day: 31, Hour: 9, Minute: 0},
			time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC),
		},
		{
			"non-UTC reference",
			time.Date(2024, 4, 26, 11, 52, 0, 0, time.FixedZone("EDT", -4*3600)),
			metar.ObservationTime{Day: 26, Hour: 15, Minute: 50},
			time.Date(2024, 4, 26, 15, 50, 0, 0, time.UTC),
		},
		{
			"invalid day",
			time.Date(2024, 4, 26, 15, 52, 0, 0, time.UTC),
			metar.ObservationTime{Day: 0, Hour: 15, Minute: 50},
			time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveObservedAt(tt.ref, tt.obs))
		})
	}

	t.Run("zero reference uses the clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 16, 0, 0, 0, time.UTC)))
		defer SetClock(nil)

		got := resolveObservedAt(time.Time{}, metar.ObservationTime{Day: 26, Hour: 15, Minute: 50})
		assert.Equal(t, time.Date(2024, 4, 26, 15, 50, 0, 0, time.UTC), got)
	})
}

func TestGenerateID(t *testing.T) {
	at := time.Date(2024, 4, 26, 15, 50, 0, 0, time.UTC)

	id1 := generateID("EDDM", at, testAutoReport)
	id2 := generateID("EDDM", at, testAutoReport)
	assert.Equal(t, id1, id2, "same input should produce same ID")
	assert.True(t, strings.HasPrefix(id1, "eddm-"))
	assert.Len(t, id1, len("eddm-")+16)

	assert.NotEqual(t, id1, generateID("EDDM", at.Add(time.Hour), testAutoReport))
	assert.NotEqual(t, id1, generateID("EDDM", at, testAutoReport+" NOSIG"))

	bare := generateID("", at, "")
	assert.Len(t, bare, 16)
}

func TestDeriveFlightCategory(t *testing.T) {
	tests := []struct {
		name       string
		ceiling    *int
		visibility *int
		cavok      bool
		want       string
	}{
		{"cavok", nil, nil, true, CategoryVFR},
		{"unknown", nil, nil, false, ""},
		{"clear and 10 km", nil, intPtr(9999), false, CategoryVFR},
		{"high ceiling only", intPtr(5000), nil, false, CategoryVFR},
		{"ceiling 3000", intPtr(3000), intPtr(9999), false, CategoryMVFR},
		{"visibility 5 miles", nil, intPtr(8047), false, CategoryMVFR},
		{"visibility 8 km", nil, intPtr(8000), false, CategoryMVFR},
		{"ceiling 800", intPtr(800), intPtr(9999), false, CategoryIFR},
		{"visibility 1 mile", intPtr(5000), intPtr(1609), false, CategoryIFR},
		{"visibility 3 miles", nil, intPtr(4828), false, CategoryMVFR},
		{"ceiling 200", intPtr(200), intPtr(9999), false, CategoryLIFR},
		{"fog", intPtr(5000), intPtr(200), false, CategoryLIFR},
		{"worse of both", intPtr(2500), intPtr(3000), false, CategoryIFR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveFlightCategory(tt.ceiling, tt.visibility, tt.cavok))
		})
	}
}

func TestEnrichObservation(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 16, 0, 5, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	obs, err := ParseRawEvent(RawEvent{
		Value:     []byte(testUSReport),
		Timestamp: time.Date(2024, 4, 26, 15, 55, 0, 0, time.UTC),
	}, MetarDecoder)
	require.NoError(t, err)

	result := EnrichObservation(obs)

	assert.Equal(t, generateID("KJFK", obs.ObservedAt, testUSReport), result.ID)
	assert.True(t, strings.HasPrefix(result.ID, "kjfk-"))
	assert.Equal(t, testTimeBucket, result.TimeBucket.Format(time.RFC3339))
	assert.Equal(t, CategoryIFR, result.FlightCategory)
	assert.Equal(t, fixedTime, result.ProcessedAt)
}

func TestDeriveTimeBucket(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			"hour boundary",
			time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC),
			time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC),
		},
		{
			"truncate to hour",
			time.Date(2024, 4, 26, 15, 45, 30, 500, time.UTC),
			time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC),
		},
		{
			"different timezone",
			time.Date(2024, 4, 26, 15, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			time.Date(2024, 4, 26, 20, 0, 0, 0, time.UTC),
		},
		{
			"zero time",
			time.Time{},
			time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deriveTimeBucket(tt.input))
		})
	}
}

func TestSetClock(t *testing.T) {
	t.Run("set custom clock", func(t *testing.T) {
		fixedTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(fixedTime))
		assert.Equal(t, fixedTime, clock.Now())
		SetClock(nil)
	})

	t.Run("reset to real clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		SetClock(nil)
		assert.True(t, time.Since(clock.Now()) < time.Second)
	})
}
