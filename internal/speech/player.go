package speech

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Player plays an audio file to completion or until ctx is cancelled.
type Player interface {
	Play(ctx context.Context, file string) error
}

// CommandPlayer plays audio files with a platform command line player
type CommandPlayer struct {
	lookPath func(string) (string, error)
	goos     string
}

// NewCommandPlayer returns a player for the current platform
func NewCommandPlayer() *CommandPlayer {
	return &CommandPlayer{lookPath: exec.LookPath, goos: runtime.GOOS}
}

// Play runs the platform player and waits for it to exit. Cancelling ctx
// kills the player process.
func (p *CommandPlayer) Play(ctx context.Context, file string) error {
	name, args, err := p.command(file)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// command picks the player binary and arguments for file
func (p *CommandPlayer) command(file string) (string, []string, error) {
	switch p.goos {
	case "darwin": // macOS
		return "afplay", []string{file}, nil
	case "linux":
		for _, c := range linuxPlayers(file) {
			if _, err := p.lookPath(c[0]); err == nil {
				return c[0], append(c[1:], file), nil
			}
		}
		return "", nil, fmt.Errorf("no audio player found. Install ffplay, sox, paplay, aplay, or mpg123")
	case "windows":
		// the sound player blocks until playback ends, unlike "start"
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(file, "'", "''"))
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", p.goos)
	}
}

// linuxPlayers lists candidate commands in order of preference. mpg123 only
// handles MP3, so it leads for MP3 files and trails otherwise.
func linuxPlayers(file string) [][]string {
	mpg123 := []string{"mpg123", "-q"}
	others := [][]string{
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
		{"play", "-q"}, // SoX
		{"paplay"},
		{"aplay", "-q"},
	}
	if strings.EqualFold(filepath.Ext(file), ".mp3") {
		return append([][]string{mpg123}, others...)
	}
	return append(others, mpg123)
}
