package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/archive"
	"codeberg.org/snonux/sgs/internal/obf"
	"codeberg.org/snonux/sgs/internal/system"
)

func newOBFCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obf",
		Short: "Exchange systems in the Open Board Format",
	}

	var exportPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the system as an .obz package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := flags.LoadSystem()
			if err != nil {
				return err
			}
			archived, err := archive.BackupFile(exportPath)
			if err != nil {
				return err
			}
			if archived != "" {
				warnColor.Fprintf(cmd.OutOrStdout(), "Archived previous %s to %s\n", exportPath, archived)
			}
			if err := obf.WriteOBZ(sys, exportPath); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d boards)\n", exportPath, len(sys.Folders))
			return nil
		},
	}
	export.Flags().StringVarP(&exportPath, "output", "o", "system.obz", "Output package")

	var importPath string
	imp := &cobra.Command{
		Use:   "import FILE.obf|FILE.obz",
		Short: "Convert an Open Board Format file into a system file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := LoadSystem(args[0], flags.Logger)
			if err != nil {
				return err
			}
			data, err := system.Encode(sys, system.FormatForPath(importPath))
			if err != nil {
				return fmt.Errorf("failed to encode system: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), importPath, data)
		},
	}
	imp.Flags().StringVarP(&importPath, "output", "o", "", "Output file, .json or .yaml (default: stdout)")

	cmd.AddCommand(export, imp)
	return cmd
}
