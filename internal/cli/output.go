package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"codeberg.org/snonux/sgs/internal/archive"
)

var (
	okColor   = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	bold      = color.New(color.Bold)
	faint     = color.New(color.Faint)
)

// writeOutput writes data to path, archiving a file already there first.
// An empty path or "-" writes to out.
func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := out.Write(data)
		return err
	}
	archived, err := archive.BackupFile(path)
	if err != nil {
		return err
	}
	if archived != "" {
		warnColor.Fprintf(out, "Archived previous %s to %s\n", path, archived)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	okColor.Fprintf(out, "Wrote %s\n", path)
	return nil
}
