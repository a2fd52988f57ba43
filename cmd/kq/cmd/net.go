package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ProbeLab/kicadquery/pkg/kicad/netlist"
	"github.com/ProbeLab/kicadquery/pkg/kicad/schematic"
)

var (
	netProject string
	netQuery   string
)

var netCmd = &cobra.Command{
	Use:   "net",
	Short: "List components connected to a net",
	Long: `Export the project netlist through kicad-cli, resolve the queried net
name (exact match first, then case-insensitive, then substring) and
print every component pin on it. A query matching several nets fails
with the full candidate list instead of guessing.`,
	RunE: runNet,
}

func init() {
	rootCmd.AddCommand(netCmd)
	netCmd.Flags().StringVarP(&netProject, "project", "p", "", "path to the KiCad project directory")
	netCmd.Flags().StringVarP(&netQuery, "net", "n", "", "net name to look up (e.g. /SCL2, GND)")
	netCmd.MarkFlagRequired("project")
	netCmd.MarkFlagRequired("net")
}

type netResult struct {
	Net        string              `json:"net"`
	Components []netlist.NetMember `json:"components"`
}

func runNet(cmd *cobra.Command, args []string) error {
	root, err := schematic.RootSchematic(netProject)
	if err != nil {
		return emitError(err)
	}
	logf("root schematic: %s", root)

	resolver, err := netlist.Load(cmd.Context(), &netlist.KicadCLI{}, root)
	if err != nil {
		return emitError(err)
	}

	resolved, members, err := resolver.ComponentsForNet(netQuery)
	if err != nil {
		return emitError(err)
	}
	logf("query %q resolved to net %q", netQuery, resolved)
	return emitJSON(netResult{Net: resolved, Components: members})
}
