// Package domain turns raw METAR/SPECI messages into published observations.
//
// # Message Format
//
// Each source message carries one report. Messages copied from the NOAA
// cycle files keep the date line that precedes every report there:
//
//	2024/04/26 15:50
//	EDDM 261550Z AUTO 27008KT 9999 NCD 20/13 Q1017
//
// The date line is dropped and line wraps collapse to single spaces before
// decoding. See [ReportText].
//
// # Observation Time
//
// A report only carries day, hour and minute (DDHHMMZ). The year and month
// come from the message timestamp. A report day that lies more than a day in
// the future of the timestamp, or that does not exist in the timestamp's
// month, belongs to the previous month:
//
//	timestamp 2024-05-01T00:20Z, report 302350Z  →  2024-04-30T23:50Z
//	timestamp 2024-03-02T10:00Z, report 310900Z  →  2024-01-31T09:00Z
//
// # Flight Category
//
// Derived from the ceiling (lowest BKN/OVC layer, or vertical visibility) and
// the prevailing visibility, using the FAA thresholds:
//
//	VFR   ceiling > 3000 ft  and visibility > 5 SM
//	MVFR  ceiling 1000-3000 ft or visibility 3-5 SM
//	IFR   ceiling 500-999 ft   or visibility 1-3 SM
//	LIFR  ceiling < 500 ft     or visibility < 1 SM
//
// CAVOK is always VFR.
//
// # ID Generation
//
// Observation IDs are deterministic SHA-256 hashes of station|time|canonical
// text, prefixed with the lower-case station. Replaying a message yields the
// same ID, so downstream stores can upsert. See [generateID].
package domain
