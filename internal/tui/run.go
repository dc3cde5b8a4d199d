// Package tui runs the board in a terminal.
package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/snonux/sgs/internal/board"
	"codeberg.org/snonux/sgs/internal/logging"
)

// Run shows the terminal board until the user quits or ctx is cancelled.
func Run(ctx context.Context, b *board.Board, logger *slog.Logger, opts ...tea.ProgramOption) error {
	logger = logging.OrDiscard(logger)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	logger.Info("terminal board started", "folder", b.Folder().Key())
	_, err := tea.NewProgram(New(ctx, b, logger), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	logger.Info("terminal board stopped")
	return err
}
