package cli

import (
	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/system"
	"codeberg.org/snonux/sgs/internal/vocab"
)

func newGenerateCommand(flags *Flags) *cobra.Command {
	var layoutPath, output string

	cmd := &cobra.Command{
		Use:   "generate WORDS.tsv",
		Short: "Generate a system from a categorized word list",
		Long: `Generate a system from a tab separated word list. The header row names
the categories; a non-empty cell puts the word of its row into that
category. Without --layout every category becomes a top-level folder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := vocab.ReadWordTableFile(args[0])
			if err != nil {
				return err
			}

			layout := vocab.DefaultLayout(table)
			if layoutPath != "" {
				if layout, err = vocab.LoadLayout(layoutPath); err != nil {
					return err
				}
			}

			sys, err := vocab.Generate(table, layout)
			if err != nil {
				return err
			}
			flags.Logger.Info("system generated", "folders", len(sys.Folders), "buttons", sys.ButtonCount())

			data, err := system.Encode(sys, system.FormatForPath(output))
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "YAML layout describing the folders")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, .json or .yaml (default: stdout)")
	return cmd
}
