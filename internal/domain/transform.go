package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/couchcryptid/metar-etl/pkg/metar"
)

// ErrEmptyReport is returned for messages that carry no report text.
var ErrEmptyReport = errors.New("empty report")

var (
	// feedHeaderRe matches the date line NOAA cycle files put above each
	// report, e.g. "2024/04/26 15:50".
	feedHeaderRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}\s+`)

	// spaceRunRe collapses line wraps and repeated blanks.
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// maxClockSkew is how far in the future of the message timestamp a report
// time may lie before it is attributed to the previous month.
const maxClockSkew = 24 * time.Hour

// ReportText extracts the report text from a message value: the feed date
// line is dropped and whitespace runs collapse to single spaces.
func ReportText(value []byte) string {
	text := strings.TrimSpace(string(value))
	text = feedHeaderRe.ReplaceAllString(text, "")
	return spaceRunRe.ReplaceAllString(text, " ")
}

// ParseRawEvent decodes a RawEvent's value into an Observation. The day in
// the report is resolved against the message timestamp.
func ParseRawEvent(raw RawEvent, dec Decoder) (Observation, error) {
	text := ReportText(raw.Value)
	if text == "" {
		return Observation{}, ErrEmptyReport
	}

	report, err := dec.Decode(text)
	if err != nil {
		return Observation{}, fmt.Errorf("decode report: %w", err)
	}

	obs := NewObservation(report, text)
	obs.ObservedAt = resolveObservedAt(raw.Timestamp, report.Time)
	return obs, nil
}

// resolveObservedAt places a day/hour/minute triple in the latest month, not
// later than ref plus the allowed skew, that has that day. Returns zero time
// for days that exist in no recent month.
func resolveObservedAt(ref time.Time, t metar.ObservationTime) time.Time {
	if ref.IsZero() {
		ref = clock.Now()
	}
	ref = ref.UTC()
	if t.Day < 1 || t.Day > 31 {
		return time.Time{}
	}

	year, month := ref.Year(), ref.Month()
	for range 3 {
		if t.Day <= daysIn(year, month) {
			at := time.Date(year, month, t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
			if !at.After(ref.Add(maxClockSkew)) {
				return at
			}
		}
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}
	return time.Time{}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// generateID produces a deterministic ID from the station, observation time
// and canonical text, so replays of the same report map to the same ID.
func generateID(station string, observedAt time.Time, canonical string) string {
	input := fmt.Sprintf("%s|%s|%s", station, observedAt.UTC().Format(time.RFC3339), canonical)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if station == "" {
		return short
	}
	return strings.ToLower(station) + "-" + short
}

// EnrichObservation assigns the ID, the hourly time bucket, the flight
// category and the processing time.
func EnrichObservation(obs Observation) Observation {
	obs.ID = generateID(obs.Station, obs.ObservedAt, obs.Canonical)
	obs.TimeBucket = deriveTimeBucket(obs.ObservedAt)
	obs.FlightCategory = deriveFlightCategory(obs.CeilingFt, obs.VisibilityM, obs.CAVOK)
	obs.ProcessedAt = clock.Now()
	return obs
}

// Flight categories, from best to worst.
const (
	CategoryVFR  = "VFR"
	CategoryMVFR = "MVFR"
	CategoryIFR  = "IFR"
	CategoryLIFR = "LIFR"
)

const metresPerMile = 1609.344

// deriveFlightCategory classifies conditions by the worse of ceiling and
// visibility:
//
//	LIFR  ceiling < 500 ft   or visibility < 1 SM
//	IFR   ceiling < 1000 ft  or visibility < 3 SM
//	MVFR  ceiling <= 3000 ft or visibility <= 5 SM
//	VFR   otherwise
//
// Returns "" when visibility is unknown and there is no ceiling.
func deriveFlightCategory(ceilingFt, visibilityM *int, cavok bool) string {
	if cavok {
		return CategoryVFR
	}
	if ceilingFt == nil && visibilityM == nil {
		return ""
	}

	rank := 0
	if ceilingFt != nil {
		rank = max(rank, ceilingRank(*ceilingFt))
	}
	if visibilityM != nil {
		// Rounded so that whole-mile reports survive the metre conversion.
		miles := math.Round(float64(*visibilityM)/metresPerMile*100) / 100
		rank = max(rank, visibilityRank(miles))
	}
	return []string{CategoryVFR, CategoryMVFR, CategoryIFR, CategoryLIFR}[rank]
}

func ceilingRank(ft int) int {
	switch {
	case ft < 500:
		return 3
	case ft < 1000:
		return 2
	case ft <= 3000:
		return 1
	default:
		return 0
	}
}

func visibilityRank(miles float64) int {
	switch {
	case miles < 1:
		return 3
	case miles < 3:
		return 2
	case miles <= 5:
		return 1
	default:
		return 0
	}
}

// deriveTimeBucket truncates the observation time to the hour in UTC.
// Returns zero time if the input is zero.
func deriveTimeBucket(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	return t.UTC().Truncate(time.Hour)
}
