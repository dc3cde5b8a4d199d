package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/system"
)

func newValidateCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check system files for configuration errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				sys, err := LoadSystem(path, flags.Logger)
				if err != nil {
					failed++
					errColor.Fprintf(out, "✗ %s\n", path)
					for _, line := range strings.Split(problems(err), "\n") {
						fmt.Fprintf(out, "    %s\n", line)
					}
					continue
				}
				okColor.Fprintf(out, "✓ %s", path)
				fmt.Fprintf(out, ": %q, %s\n", sys.Name, summary(sys))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d systems invalid", failed, len(args))
			}
			return nil
		},
	}
}

// problems strips the ConfigError prefix so each joined error is one line.
func problems(err error) string {
	var cfgErr *system.ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Err.Error()
	}
	return err.Error()
}

func summary(sys *system.System) string {
	top := 0
	for _, f := range sys.Folders {
		if f.TopLevel {
			top++
		}
	}
	return fmt.Sprintf("%d folders (%d top-level), %d buttons, %d hotbar buttons",
		len(sys.Folders), top, sys.ButtonCount(), len(sys.Hotbar.Buttons))
}
