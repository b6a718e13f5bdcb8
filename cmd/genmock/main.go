// Command genmock decodes a NOAA cycle file into the observation fixture used
// by downstream test suites. It runs the same domain functions as the
// pipeline, so the fixture matches what the service publishes.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -feed data/mock/metar_reports.txt \
//	  -out data/mock/metar_observations.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/metar-etl/internal/domain"
)

// processedAt is the fixed ProcessedAt stamped on every fixture entry.
var processedAt = time.Date(2024, time.April, 26, 18, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	feedPath := flag.String("feed", "data/mock/metar_reports.txt", "NOAA cycle file to decode")
	out := flag.String("out", "", "output path for the observation JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	data, err := os.ReadFile(*feedPath)
	if err != nil {
		return fmt.Errorf("read feed: %w", err)
	}

	entries := domain.SplitFeed(data)
	observations := make([]domain.Observation, 0, len(entries))
	for i, entry := range entries {
		obs, err := domain.ParseRawEvent(entry.Message(), domain.MetarDecoder)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", i+1, entry.Text, err)
		}
		observations = append(observations, domain.EnrichObservation(obs))
	}
	log.Printf("decoded %d reports", len(observations))

	if err := writeJSON(*out, observations); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(observations)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type count struct {
	key string
	n   int
}

func sortedCounts(m map[string]int) []count {
	out := make([]count, 0, len(m))
	for k, n := range m {
		out = append(out, count{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].key < out[j].key
	})
	return out
}

func printStats(observations []domain.Observation) {
	categories := map[string]int{}
	kinds := map[string]int{}
	var withCeiling, withTrends, withRemarks int

	for i := range observations {
		o := &observations[i]
		categories[o.FlightCategory]++
		if o.Kind != "" {
			kinds[o.Kind]++
		}
		if o.CeilingFt != nil {
			withCeiling++
		}
		if len(o.Trends) > 0 {
			withTrends++
		}
		if o.Remarks != "" {
			withRemarks++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(observations))
	fmt.Printf("By flight category: VFR=%d, MVFR=%d, IFR=%d, LIFR=%d, unknown=%d\n",
		categories[domain.CategoryVFR], categories[domain.CategoryMVFR],
		categories[domain.CategoryIFR], categories[domain.CategoryLIFR], categories[""])
	fmt.Printf("With ceiling: %d, with trends: %d, with remarks: %d\n", withCeiling, withTrends, withRemarks)

	fmt.Print("By kind: ")
	for _, c := range sortedCounts(kinds) {
		fmt.Printf("%s=%d ", c.key, c.n)
	}
	fmt.Println()

	fmt.Println("\nObservations:")
	for i := range observations {
		o := &observations[i]
		fmt.Printf("  %-22s %-4s %s\n", o.ID, o.FlightCategory, o.ObservedAt.Format(time.RFC3339))
	}
}
