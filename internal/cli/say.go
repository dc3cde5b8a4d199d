package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/board"
	"codeberg.org/snonux/sgs/internal/panel"
	"codeberg.org/snonux/sgs/internal/speech"
)

func newSayCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "say TEXT...",
		Short: "Speak text with the configured speech backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			speaker, err := NewSpeaker(ctx, SpeechConfig(), cmd.OutOrStdout(), flags.Logger)
			if err != nil {
				return err
			}
			defer speaker.Close()

			if err := speaker.Speak(ctx, strings.Join(args, " "), true); err != nil {
				return err
			}
			return speaker.Wait(ctx)
		},
	}
}

func newComposeCommand(flags *Flags) *cobra.Command {
	var speak bool

	cmd := &cobra.Command{
		Use:   "compose LABEL...",
		Short: "Press buttons by label and print the composed phrase",
		Long: `Press buttons by label, as if tapping them on the board. Buttons are
looked up in the active folder first, then in the hotbar. Navigation
buttons switch folders, so "compose Feelings happy" opens Feelings first.

Without --speak, anything an immediate folder or a speak button would say
is printed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sys, err := flags.LoadSystem()
			if err != nil {
				return err
			}

			cfg := SpeechConfig()
			if !speak {
				cfg.Backend = speech.BackendLog
			}
			speaker, err := NewSpeaker(ctx, cfg, cmd.ErrOrStderr(), flags.Logger)
			if err != nil {
				return err
			}
			defer speaker.Close()

			b, err := board.New(sys, speaker, flags.Logger)
			if err != nil {
				return err
			}
			for _, label := range args {
				if err := b.PressLabel(ctx, label); err != nil {
					var speechErr *panel.SpeechError
					if errors.As(err, &speechErr) {
						warnColor.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
						continue
					}
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(b.PanelLabels(), " "))
			if !speak {
				return nil
			}
			if err := b.Speak(ctx); err != nil {
				return err
			}
			return speaker.Wait(ctx)
		},
	}
	cmd.Flags().BoolVar(&speak, "speak", false, "Speak the composed phrase")
	return cmd
}
