package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ProbeLab/kicadquery/pkg/kicad/netlist"
	"github.com/ProbeLab/kicadquery/pkg/kicad/schematic"
)

var (
	pinsProject string
	pinsRef     string
)

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "List pin-to-net connections for a component",
	Long: `Export the project netlist through kicad-cli and print every pin of
the given component with the net it connects to, sorted by pin number
(numeric pins first, then alphanumeric).`,
	RunE: runPins,
}

func init() {
	rootCmd.AddCommand(pinsCmd)
	pinsCmd.Flags().StringVarP(&pinsProject, "project", "p", "", "path to the KiCad project directory")
	pinsCmd.Flags().StringVarP(&pinsRef, "ref", "r", "", "reference designator (e.g. U101)")
	pinsCmd.MarkFlagRequired("project")
	pinsCmd.MarkFlagRequired("ref")
}

type pinsResult struct {
	Reference string              `json:"reference"`
	Pins      []netlist.PinRecord `json:"pins"`
}

func runPins(cmd *cobra.Command, args []string) error {
	root, err := schematic.RootSchematic(pinsProject)
	if err != nil {
		return emitError(err)
	}
	logf("root schematic: %s", root)

	resolver, err := netlist.Load(cmd.Context(), &netlist.KicadCLI{}, root)
	if err != nil {
		return emitError(err)
	}
	logf("netlist: %d distinct nets", len(resolver.NetNames()))

	pins, err := resolver.PinsForReference(pinsRef)
	if err != nil {
		return emitError(err)
	}
	return emitJSON(pinsResult{Reference: pinsRef, Pins: pins})
}
