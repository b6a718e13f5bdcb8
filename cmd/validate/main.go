// Command validate checks a METAR corpus against the decoder: every report
// must parse, its canonical text must decode to the same observation, and
// formatting must be idempotent. With -fixture it also verifies that a
// genmock fixture still matches what the pipeline produces.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -feed data/mock/metar_reports.txt \
//	  -fixture data/mock/metar_observations.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/metar-etl/internal/domain"
	"github.com/couchcryptid/metar-etl/pkg/metar"
)

// processedAt matches genmock so fixture IDs and timestamps are reproducible.
var processedAt = time.Date(2024, time.April, 26, 18, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// decoded is one corpus entry after the parse phase.
type decoded struct {
	entry  domain.FeedEntry
	report metar.Report
}

func main() {
	feedPath := flag.String("feed", "data/mock/metar_reports.txt", "NOAA cycle file to validate")
	fixturePath := flag.String("fixture", "", "optional genmock fixture to compare against")
	flag.Parse()

	if code := run(*feedPath, *fixturePath); code != 0 {
		os.Exit(code)
	}
}

func run(feedPath, fixturePath string) int {
	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	fmt.Println("=== METAR Corpus Validation ===")
	fmt.Println()

	data, err := os.ReadFile(feedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read feed: %v\n", err)
		return 1
	}
	entries := domain.SplitFeed(data)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "FATAL: no reports in %s\n", feedPath)
		return 1
	}

	parsePhase, reports := validateParse(entries)
	phases := []*phase{
		parsePhase,
		validateRoundTrip(reports),
		validateIdempotence(reports),
	}
	if fixturePath != "" {
		fixture, err := loadFixture(fixturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
			return 1
		}
		phases = append(phases, validateFixture(entries, fixture))
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Reports: %d in feed, %d decoded\n", len(entries), len(reports))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadFixture(path string) ([]domain.Observation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []domain.Observation
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Parse ──
// Every report in the corpus decodes without errors.

func validateParse(entries []domain.FeedEntry) (*phase, []decoded) {
	p := &phase{name: "Phase 1: Parse"}
	out := make([]decoded, 0, len(entries))

	for i, entry := range entries {
		report, err := metar.Parse(entry.Text)
		if err != nil {
			var errs metar.Errors
			if errors.As(err, &errs) && len(errs) > 0 {
				p.errorf("entry %d: %v\n%s", i+1, err, errs[0].Snippet())
			} else {
				p.errorf("entry %d: %v", i+1, err)
			}
			continue
		}
		out = append(out, decoded{entry: entry, report: report})
	}
	return p, out
}

// ── Phase 2: Round Trip ──
// The canonical text decodes to the same observation as the original text.

func validateRoundTrip(reports []decoded) *phase {
	p := &phase{name: "Phase 2: Round Trip (text -> canonical)"}
	ignoreRaw := cmpopts.IgnoreFields(domain.Observation{}, "Raw")

	for _, d := range reports {
		canonical := metar.Format(d.report)
		again, err := metar.Parse(canonical)
		if err != nil {
			p.errorf("%s: canonical %q does not parse: %v", d.entry.Text, canonical, err)
			continue
		}

		want := domain.NewObservation(d.report, d.entry.Text)
		got := domain.NewObservation(again, canonical)
		if diff := cmp.Diff(want, got, ignoreRaw, cmpopts.EquateEmpty()); diff != "" {
			p.errorf("%s: observation changed (-text +canonical):\n%s", d.entry.Text, diff)
		}
	}
	return p
}

// ── Phase 3: Idempotence ──
// Formatting the canonical text again yields the same text.

func validateIdempotence(reports []decoded) *phase {
	p := &phase{name: "Phase 3: Idempotence (canonical is stable)"}

	for _, d := range reports {
		first := metar.Format(d.report)
		again, err := metar.Parse(first)
		if err != nil {
			// reported by the round trip phase
			continue
		}
		if second := metar.Format(again); second != first {
			p.errorf("%s: %q formats to %q", d.entry.Text, first, second)
		}
	}
	return p
}

// ── Phase 4: Fixture ──
// The fixture matches what the pipeline produces for the same feed.

func validateFixture(entries []domain.FeedEntry, fixture []domain.Observation) *phase {
	p := &phase{name: "Phase 4: Fixture (JSON vs feed)"}

	if len(fixture) != len(entries) {
		p.errorf("fixture has %d observations, feed has %d reports", len(fixture), len(entries))
		return p
	}

	for i, entry := range entries {
		obs, err := domain.ParseRawEvent(entry.Message(), domain.MetarDecoder)
		if err != nil {
			p.errorf("entry %d: %v", i+1, err)
			continue
		}
		want := domain.EnrichObservation(obs)
		if diff := cmp.Diff(want, fixture[i], cmpopts.EquateEmpty()); diff != "" {
			p.errorf("entry %d (%s): fixture is stale (-pipeline +fixture):\n%s", i+1, want.ID, diff)
		}
	}
	return p
}
