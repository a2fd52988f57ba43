// Package cmd implements the kq command tree. Every query prints one
// JSON document on stdout; failures print a JSON object with an "error"
// key and exit non-zero, so agent callers can parse either outcome.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ProbeLab/kicadquery/pkg/kicad/netlist"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kq",
	Short: "kicadquery - structured queries over KiCad projects and the JLCPCB catalog",
	Long: `kicadquery (kq) extracts structured electrical-design facts for
automated consumers:
  - component properties from schematic symbol instances
  - pin-to-net connectivity for a component
  - components connected to a net, with fuzzy net-name matching
  - JLCPCB parts catalog full-text search

Examples:
  kq props --project ~/kicad/board --ref R124
  kq pins --project ~/kicad/board --ref U101
  kq net --project ~/kicad/board --net /SCL2
  kq parts --search "esp32 module" --in-stock --limit 5`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics on stderr")
}

// errReported marks errors already emitted as JSON, so Execute does not
// print them a second time.
var errReported = errors.New("error already reported")

// emitJSON prints a result document on stdout.
func emitJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// emitError prints the JSON error shape for a failed query. An ambiguous
// net match additionally carries the candidate list so the caller can
// pick one and retry.
func emitError(err error) error {
	payload := map[string]any{"error": err.Error()}
	var amb *netlist.AmbiguousNetError
	if errors.As(err, &amb) {
		payload["matches"] = amb.Matches
	}
	if emitErr := emitJSON(payload); emitErr != nil {
		return emitErr
	}
	return errReported
}

// logf writes a diagnostic line to stderr when --verbose is set.
func logf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
