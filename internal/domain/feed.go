package domain

import (
	"bytes"
	"strings"
	"time"
)

const feedHeaderLayout = "2006/01/02 15:04"

// FeedEntry is one report from a NOAA cycle file.
type FeedEntry struct {
	Issued time.Time
	Text   string
}

// Message returns the entry as a source message, the way the feed producer
// publishes it: the date line is kept in the value and doubles as the
// message timestamp.
func (e FeedEntry) Message() RawEvent {
	var value string
	if e.Issued.IsZero() {
		value = e.Text
	} else {
		value = e.Issued.Format(feedHeaderLayout) + "\n" + e.Text
	}
	return RawEvent{
		Value:     []byte(value),
		Timestamp: e.Issued,
	}
}

// SplitFeed splits a cycle file into entries. Entries are separated by blank
// lines; a leading date line sets Issued, and continuation lines of a wrapped
// report are joined with single spaces.
func SplitFeed(data []byte) []FeedEntry {
	var (
		entries []FeedEntry
		cur     FeedEntry
		lines   []string
	)
	flush := func() {
		if len(lines) > 0 {
			cur.Text = strings.Join(lines, " ")
			entries = append(entries, cur)
		}
		cur, lines = FeedEntry{}, nil
	}

	for raw := range bytes.Lines(data) {
		line := strings.TrimSpace(string(raw))
		switch {
		case line == "":
			flush()
		case len(lines) == 0 && cur.Issued.IsZero():
			if t, err := time.Parse(feedHeaderLayout, line); err == nil {
				cur.Issued = t
				continue
			}
			lines = append(lines, line)
		default:
			lines = append(lines, line)
		}
	}
	flush()
	return entries
}
