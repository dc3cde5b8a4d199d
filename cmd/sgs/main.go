package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/cli"
	"codeberg.org/snonux/sgs/internal/gui"
	"codeberg.org/snonux/sgs/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()
	flags.Console = gui.NewLogViewer()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	proc := processor.NewProcessor(flags)
	if flags.TUI {
		return proc.RunTUIMode(cmd.Context())
	}
	// No subcommand - launch GUI mode by default
	return proc.RunGUIMode(cmd.Context())
}
