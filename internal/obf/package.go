package obf

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"codeberg.org/snonux/sgs/internal/system"
)

// Manifest is the manifest.json of an .obz package.
type Manifest struct {
	Format string `json:"format"`
	Root   string `json:"root"`
	Paths  Paths  `json:"paths"`
}

// Paths maps board and image ids to their location inside the package.
type Paths struct {
	Boards map[string]string `json:"boards"`
	Images map[string]string `json:"images,omitempty"`
	Sounds map[string]string `json:"sounds,omitempty"`
}

const manifestName = "manifest.json"

func boardPath(id string) string {
	r := strings.NewReplacer(system.HierarchySeparator, "__", "/", "_", " ", "_")
	return "boards/" + r.Replace(id) + ".obf"
}

// ReadBoardFile loads a single .obf board as a one-folder system. Links to
// other boards cannot be followed and become plain buttons.
func ReadBoardFile(filename string, logger *slog.Logger) (*system.System, error) {
	b, err := ReadBoard(filename)
	if err != nil {
		return nil, err
	}
	f, err := FolderFromBoard(b)
	if err != nil {
		return nil, err
	}
	f.TopLevel, f.Default = true, true

	sys := &system.System{
		Name:        systemName(b),
		Description: b.DescriptionHTML,
		Folders:     []*system.Folder{f},
	}
	return finish(sys, filename, logger)
}

// ReadOBZ loads every board of an .obz package. When no board carries sgs
// folder flags, the root board becomes the default top-level folder.
func ReadOBZ(filename string, logger *slog.Logger) (*system.System, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open package: %w", err)
	}
	defer zr.Close()

	var m Manifest
	if err := readManifest(&zr.Reader, &m); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(m.Paths.Boards))
	byPath := map[string]string{}
	for id, p := range m.Paths.Boards {
		ids = append(ids, id)
		byPath[p] = id
	}
	sort.Strings(ids)

	sys := &system.System{}
	var root *system.Folder
	flagged := false
	for _, id := range ids {
		p := m.Paths.Boards[id]
		b, err := readBoard(&zr.Reader, p)
		if err != nil {
			return nil, err
		}
		if b.ID == "" {
			b.ID = id
		}
		if b.Hotbar {
			sys.Hotbar = hotbarFromBoard(b)
			continue
		}

		f, err := FolderFromBoard(b)
		if err != nil {
			return nil, err
		}
		for _, btn := range f.Buttons {
			if btn == nil || btn.Folder == "" {
				continue
			}
			if _, known := m.Paths.Boards[btn.Folder]; !known {
				if target, ok := byPath[btn.Folder]; ok {
					btn.Folder = target
				}
			}
		}
		if p == m.Root {
			root = f
			sys.Name = systemName(b)
			sys.Description = b.DescriptionHTML
		}
		flagged = flagged || f.TopLevel || f.Default
		sys.Folders = append(sys.Folders, f)
	}
	if root != nil && !flagged {
		root.TopLevel, root.Default = true, true
	}

	return finish(sys, filename, logger)
}

// WriteOBZ writes sys as an .obz package. Every folder becomes a board; the
// hotbar is stored as one more board flagged ext_sgs_hotbar.
func WriteOBZ(sys *system.System, filename string) error {
	root := 0
	if i, err := sys.DefaultFolder(); err == nil {
		root = i
	}

	m := Manifest{Format: Format, Paths: Paths{Boards: map[string]string{}}}
	var boards []*Board
	for i, f := range sys.Folders {
		b := BoardFromFolder(f)
		if i == root {
			b.SystemName = sys.Name
			b.DescriptionHTML = sys.Description
			m.Root = boardPath(b.ID)
		}
		boards = append(boards, b)
	}
	if len(sys.Hotbar.Buttons) > 0 {
		boards = append(boards, BoardFromHotbar(&sys.Hotbar))
	}
	for _, b := range boards {
		m.Paths.Boards[b.ID] = boardPath(b.ID)
	}

	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	defer out.Close()

	archive := zip.NewWriter(out)
	if err := writeJSON(archive, manifestName, &m); err != nil {
		return err
	}
	for _, b := range boards {
		if err := writeJSON(archive, boardPath(b.ID), b); err != nil {
			return err
		}
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return out.Close()
}

func systemName(b *Board) string {
	if b.SystemName != "" {
		return b.SystemName
	}
	return b.Name
}

// finish clears links that point nowhere, then validates.
func finish(sys *system.System, source string, logger *slog.Logger) (*system.System, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ids := map[string]bool{}
	for _, f := range sys.Folders {
		ids[f.Key()] = true
	}
	for _, f := range sys.Folders {
		for _, b := range f.Buttons {
			if b != nil && b.Folder != "" && !ids[b.Folder] {
				logger.Warn("dropping link to unknown board", "board", f.Key(), "target", b.Folder)
				b.Folder = ""
			}
		}
	}
	if err := sys.Validate(); err != nil {
		return nil, &system.ConfigError{Source: source, Err: err}
	}
	return sys, nil
}

func entryName(name string) string {
	return path.Clean(strings.TrimPrefix(name, "/"))
}

func readManifest(r *zip.Reader, m *Manifest) error {
	f, err := r.Open(manifestName)
	if err != nil {
		return fmt.Errorf("package has no manifest: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(m); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	return nil
}

func readBoard(r *zip.Reader, name string) (*Board, error) {
	f, err := r.Open(entryName(name))
	if err != nil {
		return nil, fmt.Errorf("package entry %s: %w", name, err)
	}
	defer f.Close()
	b, err := DecodeBoard(f)
	if err != nil {
		return nil, fmt.Errorf("package entry %s: %w", name, err)
	}
	return b, nil
}

func writeJSON(archive *zip.Writer, name string, v any) error {
	w, err := archive.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
