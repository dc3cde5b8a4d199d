package vocab

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/sgs/internal/system"
)

// DefaultHotbar holds the twenty most common English words.
var DefaultHotbar = []string{
	"the", "be", "to", "of", "and", "a", "in", "have", "for", "not",
	"on", "with", "as", "at", "but", "by", "from", "or", "out", "if",
}

// FolderSpec describes one generated folder.
//
// Key is the folder id, optionally prefixed with "^" for a top-level folder
// and "!" for an immediate one. Hierarchy uses "::" as in "Nouns::Food".
type FolderSpec struct {
	Key        string   `yaml:"key"`
	Default    bool     `yaml:"default,omitempty"`
	Subfolders []string `yaml:"subfolders,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty"`
	Words      []string `yaml:"words,omitempty"`
}

// Layout describes a whole generated system.
type Layout struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Rows        int          `yaml:"rows"`
	Cols        int          `yaml:"cols"`
	Folders     []FolderSpec `yaml:"folders"`
	Hotbar      []string     `yaml:"hotbar,omitempty"`
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &l, nil
}

// DefaultLayout puts every category of table into its own top-level folder.
func DefaultLayout(table WordTable) *Layout {
	l := &Layout{
		Name:        "Generated System",
		Description: "A system generated from a categorized word list.",
		Rows:        6,
		Cols:        9,
	}
	for _, c := range table.Categories() {
		key := "^" + strings.ReplaceAll(c, system.HierarchySeparator, " ")
		l.Folders = append(l.Folders, FolderSpec{Key: key, Categories: []string{c}})
	}
	return l
}

// parseKey splits the "^" and "!" markers off a folder key.
func parseKey(key string) (id string, toplevel, immediate bool) {
	id = key
	for len(id) > 0 {
		switch id[0] {
		case '^':
			toplevel = true
		case '!':
			immediate = true
		default:
			return id, toplevel, immediate
		}
		id = id[1:]
	}
	return id, toplevel, immediate
}

// Generate builds and validates a System from table and layout.
func Generate(table WordTable, layout *Layout) (*system.System, error) {
	rows, cols := layout.Rows, layout.Cols
	if rows <= 0 {
		rows = 6
	}
	if cols <= 0 {
		cols = 9
	}

	sys := &system.System{
		Name:        layout.Name,
		Description: layout.Description,
		Variants:    map[string][]system.Button{},
		Related:     map[string][]system.Button{},
	}

	for _, fs := range layout.Folders {
		id, toplevel, immediate := parseKey(fs.Key)
		if id == "" {
			return nil, fmt.Errorf("folder key %q has no id", fs.Key)
		}

		words, err := folderWords(table, fs)
		if err != nil {
			return nil, fmt.Errorf("folder %q: %w", id, err)
		}

		var buttons []*system.Button
		for _, sub := range fs.Subfolders {
			buttons = append(buttons, &system.Button{
				Label:  system.DisplayName(sub),
				Folder: sub,
				Parent: id,
			})
		}
		for _, w := range words {
			buttons = append(buttons, &system.Button{Label: w, Parent: id})
		}

		sys.Folders = append(sys.Folders, &system.Folder{
			Name:      system.DisplayName(id),
			ID:        id,
			TopLevel:  toplevel,
			Default:   fs.Default,
			Immediate: immediate,
			Rows:      rows,
			Cols:      cols,
			Buttons:   pad(buttons, rows*cols),
		})
	}

	hotbar := layout.Hotbar
	if len(hotbar) == 0 {
		hotbar = DefaultHotbar
	}
	sys.Hotbar = system.Hotbar{Rows: 1, Cols: cols}
	for _, w := range hotbar {
		b := system.NewButton(w)
		sys.Hotbar.Buttons = append(sys.Hotbar.Buttons, &b)
	}

	if err := sys.Validate(); err != nil {
		return nil, &system.ConfigError{Source: "generated", Err: err}
	}
	return sys, nil
}

func folderWords(table WordTable, fs FolderSpec) ([]string, error) {
	set := map[string]bool{}
	if len(fs.Categories) > 0 {
		words, err := table.Words(fs.Categories...)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			set[w] = true
		}
	}
	for _, w := range fs.Words {
		if w = strings.TrimSpace(w); w != "" {
			set[w] = true
		}
	}
	for _, w := range fs.Exclude {
		delete(set, w)
	}
	return sortedKeys(set), nil
}

// pad fills the last page with empty slots. An empty folder gets one empty
// page.
func pad(buttons []*system.Button, pageSize int) []*system.Button {
	n := len(buttons)
	if n == 0 {
		return make([]*system.Button, pageSize)
	}
	if rem := n % pageSize; rem != 0 {
		buttons = append(buttons, make([]*system.Button, pageSize-rem)...)
	}
	return buttons
}
