package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"codeberg.org/snonux/sgs/internal/board"
	"codeberg.org/snonux/sgs/internal/cli"
	"codeberg.org/snonux/sgs/internal/gui"
	"codeberg.org/snonux/sgs/internal/tui"
)

// Processor runs board sessions for the root command
type Processor struct {
	flags *cli.Flags
}

// NewProcessor creates a new session processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{flags: flags}
}

// openBoard loads the configured system and speech backend. The log
// backend writes utterances to out.
func (p *Processor) openBoard(ctx context.Context, out io.Writer) (*board.Board, *cli.Speaker, error) {
	sys, err := p.flags.LoadSystem()
	if err != nil {
		return nil, nil, err
	}

	speaker, err := cli.NewSpeaker(ctx, cli.SpeechConfig(), out, p.flags.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start speech: %w", err)
	}

	b, err := board.New(sys, speaker, p.flags.Logger)
	if err != nil {
		speaker.Close()
		return nil, nil, err
	}
	p.flags.Logger.Info("board ready",
		"system", sys.Name,
		"folders", len(sys.Folders),
		"speech", speaker.Name(),
	)
	return b, speaker, nil
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode(ctx context.Context) error {
	b, speaker, err := p.openBoard(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer speaker.Close()

	guiConfig := &gui.Config{
		Debug:  viper.GetBool("gui.debug"),
		Logger: p.flags.Logger,
	}
	if console, ok := p.flags.Console.(*gui.LogViewer); ok {
		guiConfig.Console = console
	}

	app := gui.New(b, guiConfig)
	app.Run()
	return nil
}

// RunTUIMode runs the board in the terminal. Utterances of the log backend
// are dropped since they would garble the screen.
func (p *Processor) RunTUIMode(ctx context.Context) error {
	b, speaker, err := p.openBoard(ctx, io.Discard)
	if err != nil {
		return err
	}
	defer speaker.Close()

	return tui.Run(ctx, b, p.flags.Logger)
}
