package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ProbeLab/kicadquery/pkg/jlcpcb"
)

var (
	partsSearch       string
	partsCategory     string
	partsPackage      string
	partsManufacturer string
	partsInStock      bool
	partsBasicOnly    bool
	partsLimit        int
	partsDownload     bool
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Query the JLCPCB parts catalog",
	Long: `Full-text search over the JLCPCB parts database (SQLite FTS5, as
maintained by the kicad-jlcpcb-tools plugin). At least one of --search,
--category, --package or --manufacturer is required.`,
	RunE: runParts,
}

func init() {
	rootCmd.AddCommand(partsCmd)
	partsCmd.Flags().StringVarP(&partsSearch, "search", "s", "", "free text search (e.g. 'esp32 module')")
	partsCmd.Flags().StringVarP(&partsCategory, "category", "c", "", "filter by first category")
	partsCmd.Flags().StringVar(&partsPackage, "package", "", "filter by package type")
	partsCmd.Flags().StringVarP(&partsManufacturer, "manufacturer", "m", "", "filter by manufacturer")
	partsCmd.Flags().BoolVar(&partsInStock, "in-stock", false, "only show parts with stock > 0")
	partsCmd.Flags().BoolVar(&partsBasicOnly, "basic-only", false, "only show 'Basic' library type parts")
	partsCmd.Flags().IntVarP(&partsLimit, "limit", "l", 20, "maximum number of results")
	partsCmd.Flags().BoolVar(&partsDownload, "download", false, "download the database if not found")
}

func runParts(cmd *cobra.Command, args []string) error {
	opts := jlcpcb.SearchOptions{
		Search:       partsSearch,
		Category:     partsCategory,
		Package:      partsPackage,
		Manufacturer: partsManufacturer,
		InStock:      partsInStock,
		BasicOnly:    partsBasicOnly,
		Limit:        partsLimit,
	}
	if !opts.HasCriteria() {
		return emitError(errors.New("at least one search criterion required: --search, --category, --package or --manufacturer"))
	}

	dbPath, ok := jlcpcb.FindDatabase()
	if !ok {
		if !partsDownload {
			return emitError(errors.New("parts database not found; use --download to fetch it, or install the kicad-jlcpcb-tools plugin"))
		}
		var err error
		dbPath, err = jlcpcb.DownloadDatabase(cmd.Context(), func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		})
		if err != nil {
			return emitError(err)
		}
	}
	logf("parts database: %s", dbPath)

	result, err := jlcpcb.Search(dbPath, opts)
	if err != nil {
		return emitError(err)
	}
	return emitJSON(result)
}
