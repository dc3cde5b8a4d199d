package cli

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/speech"
)

func newVoicesCommand(flags *Flags) *cobra.Command {
	var models bool

	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List the voices of the configured speech backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if models {
				ids, err := speech.ListOpenAISpeechModels(ctx, GetOpenAIKey())
				if err != nil {
					return err
				}
				bold.Fprintln(out, "OpenAI speech models")
				for _, id := range ids {
					fmt.Fprintf(out, "  - %s\n", id)
				}
				return nil
			}

			backend := SpeechConfig().Backend
			voices, err := speech.Voices(ctx, backend)
			if err != nil {
				return err
			}
			if len(voices) == 0 {
				fmt.Fprintf(out, "The %s backend has no voices\n", backend)
				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("VOICE"), bold.Sprint("LANGUAGE"), bold.Sprint("DETAIL"))
			for _, v := range voices {
				tbl.AddRow(v.Name, v.Language, v.Detail)
			}
			fmt.Fprintln(out, tbl)
			flags.Logger.Debug("voices listed", "backend", backend, "count", len(voices))
			return nil
		},
	}
	cmd.Flags().BoolVar(&models, "models", false, "List the OpenAI speech models available to your API key instead")
	return cmd
}
