// Command metar decodes and formats METAR/SPECI reports from the command line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/couchcryptid/metar-etl/internal/codec"
	"github.com/couchcryptid/metar-etl/internal/domain"
	"github.com/couchcryptid/metar-etl/pkg/metar"
)

const (
	appName     = "metar"
	historyFile = ".metar_history"
	promptMain  = "metar> "
)

var (
	banner   = "METAR decoder REPL\nEnter one report per line. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands."
	helpText = `
REPL commands:
  :yaml    Print observations as YAML (default)
  :json    Print observations as JSON
  :fmt     Print only the canonical text
  :quit    Exit the REPL
`
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "decode":
		os.Exit(cmdDecode(os.Args[2:], os.Stdin, os.Stdout))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:], os.Stdin, os.Stdout))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %s decode [-o json|yaml|msgpack|bson] [report...]   Decode reports (from args or stdin).
  %s fmt [--check] [file...]                          Print canonical text (from files or stdin).
  %s repl                                             Start the interactive decoder.

`, appName, appName, appName)
}

// readReports returns the report given as arguments, or the entries of the
// cycle file on r when there are none.
func readReports(args []string, r io.Reader) ([]domain.FeedEntry, error) {
	if len(args) > 0 {
		return []domain.FeedEntry{{Text: strings.Join(args, " ")}}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return domain.SplitFeed(data), nil
}

// printParseError writes the error followed by the annotated input.
func printParseError(w io.Writer, err error) {
	fmt.Fprintln(w, red(err.Error()))
	var errs metar.Errors
	if errors.As(err, &errs) && len(errs) > 0 {
		fmt.Fprintln(w, errs[0].Snippet())
	}
}

// -----------------------------------------------------------------------------
// decode
// -----------------------------------------------------------------------------

func cmdDecode(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	format := fs.String("o", codec.FormatJSON, "output format: "+strings.Join(codec.Formats, ", "))
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c, err := codec.ForFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}

	entries, err := readReports(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	failed := 0
	for _, entry := range entries {
		obs, err := domain.ParseRawEvent(entry.Message(), domain.MetarDecoder)
		if err != nil {
			printParseError(os.Stderr, err)
			failed++
			continue
		}
		out, err := c.Marshal(domain.EnrichObservation(obs))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		stdout.Write(out) //nolint:errcheck // stdout
		if *format == codec.FormatJSON {
			fmt.Fprintln(stdout)
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func cmdFmt(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	check := fs.Bool("check", false, "list reports that are not canonical; exit 1 if any")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var entries []domain.FeedEntry
	if fs.NArg() == 0 {
		var err error
		if entries, err = readReports(nil, stdin); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
	}
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		entries = append(entries, domain.SplitFeed(data)...)
	}

	failed := 0
	for _, entry := range entries {
		report, err := metar.Parse(entry.Text)
		if err != nil {
			printParseError(os.Stderr, err)
			failed++
			continue
		}
		canonical := metar.Format(report)
		switch {
		case !*check:
			fmt.Fprintln(stdout, canonical)
		case canonical != entry.Text:
			fmt.Fprintf(stdout, "%s\n  -> %s\n", entry.Text, canonical)
			failed++
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	out := codec.YAML()
	canonicalOnly := false

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Println()
			return 0
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ":") {
			switch strings.ToLower(input) {
			case ":quit":
				return 0
			case ":help":
				fmt.Print(helpText)
			case ":yaml":
				out, canonicalOnly = codec.YAML(), false
			case ":json":
				out, canonicalOnly = codec.JSON(), false
			case ":fmt":
				canonicalOnly = true
			default:
				fmt.Printf("unknown command. Type :help for commands.\n")
			}
			continue
		}

		ln.AppendHistory(input)
		obs, err := domain.ParseRawEvent(domain.RawEvent{Value: []byte(input)}, domain.MetarDecoder)
		if err != nil {
			printParseError(os.Stdout, err)
			continue
		}
		obs = domain.EnrichObservation(obs)

		fmt.Println(green(obs.Canonical))
		if canonicalOnly {
			continue
		}
		data, err := out.Marshal(obs)
		if err != nil {
			fmt.Println(red(err.Error()))
			continue
		}
		fmt.Println(strings.TrimRight(string(data), "\n"))
	}
}
