package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ProbeLab/kicadquery/pkg/kicad/schematic"
)

var (
	propsProject string
	propsRef     string
)

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Extract component properties from a KiCad project",
	Long: `Find a component by reference designator across every schematic
document in the project and print its full property bag: Reference,
Value, Footprint, Datasheet and any user-defined fields, merged with
lib_id, uuid and source_file.`,
	RunE: runProps,
}

func init() {
	rootCmd.AddCommand(propsCmd)
	propsCmd.Flags().StringVarP(&propsProject, "project", "p", "", "path to the KiCad project directory")
	propsCmd.Flags().StringVarP(&propsRef, "ref", "r", "", "reference designator (e.g. R124, C1, U3)")
	propsCmd.MarkFlagRequired("project")
	propsCmd.MarkFlagRequired("ref")
}

func runProps(cmd *cobra.Command, args []string) error {
	reg, err := schematic.BuildRegistry(propsProject)
	if err != nil {
		return emitError(err)
	}
	logf("registry: %d symbol instances across %d documents", len(reg.Instances), len(reg.Files))

	inst, err := reg.FindByReference(propsRef)
	if err != nil {
		return emitError(err)
	}
	return emitJSON(reg.DumpProperties(inst))
}
