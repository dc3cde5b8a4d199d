package obf

import (
	"errors"
	"fmt"
	"strconv"

	"codeberg.org/snonux/sgs/internal/system"
)

// Standard OBF actions.
const (
	actionSpeak     = ":speak"
	actionBackspace = ":backspace"
)

// ErrEmptyBoard is returned for a board without a usable grid.
var ErrEmptyBoard = errors.New("board has no grid")

// BoardFromFolder converts a folder. Pages are stacked below each other.
func BoardFromFolder(f *system.Folder) *Board {
	pages := max(f.PageCount(), 1)
	b := &Board{
		Format:    Format,
		ID:        f.Key(),
		Locale:    "en",
		Name:      f.Name,
		TopLevel:  f.TopLevel,
		Default:   f.Default,
		Immediate: f.Immediate,
		Grid:      Grid{Rows: f.Rows * pages, Columns: f.Cols},
	}
	if pages > 1 {
		b.PageRows = f.Rows
	}
	b.fill(f.Buttons, b.Grid.Rows, f.Cols)
	return b
}

// BoardFromHotbar converts the hotbar into a board flagged as such.
func BoardFromHotbar(h *system.Hotbar) *Board {
	cols := h.Cols
	if cols <= 0 {
		cols = 1
	}
	rows := (len(h.Buttons) + cols - 1) / cols
	b := &Board{
		Format: Format,
		ID:     "sgs-hotbar",
		Locale: "en",
		Name:   "Hotbar",
		Hotbar: true,
		Grid:   Grid{Rows: rows, Columns: cols},
	}
	b.fill(h.Buttons, rows, cols)
	return b
}

func (b *Board) fill(buttons []*system.Button, rows, cols int) {
	b.Grid.Order = make([][]*string, rows)
	for r := range rows {
		b.Grid.Order[r] = make([]*string, cols)
		for c := range cols {
			i := r*cols + c
			if i >= len(buttons) || buttons[i] == nil {
				continue
			}
			id := strconv.Itoa(len(b.Buttons) + 1)
			b.Buttons = append(b.Buttons, b.exportButton(id, *buttons[i]))
			b.Grid.Order[r][c] = &id
		}
	}
}

func (b *Board) exportButton(id string, sb system.Button) Button {
	btn := Button{
		ID:           id,
		Label:        sb.Label,
		Vocalization: sb.Pronunciation,
		Parent:       sb.Parent,
	}
	switch sb.Action {
	case system.ActionSpeakBuiltPhrase:
		btn.Action = actionSpeak
	case system.ActionRemoveLast:
		btn.Action = actionBackspace
	}
	if sb.Action != system.ActionDefault {
		btn.SGSAction = sb.Action.String()
	}
	if sb.Navigates() {
		btn.LoadBoard = &LoadBoard{ID: sb.Folder, Path: boardPath(sb.Folder)}
	}
	if sb.Image != "" {
		btn.ImageID = "img" + id
		b.Images = append(b.Images, Image{ID: btn.ImageID, URL: sb.Image})
	}
	return btn
}

// FolderFromBoard converts a board. A board carrying page rows becomes a
// paginated folder again; any other board is a single page.
func FolderFromBoard(b *Board) (*system.Folder, error) {
	rows, cols := b.Grid.Rows, b.Grid.Columns
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyBoard, b.ID)
	}

	f := &system.Folder{
		Name:      b.Name,
		ID:        b.ID,
		TopLevel:  b.TopLevel,
		Default:   b.Default,
		Immediate: b.Immediate,
		Rows:      rows,
		Cols:      cols,
		Buttons:   b.importButtons(rows, cols),
	}
	if f.Name == "" {
		f.Name = system.DisplayName(b.ID)
	}
	if b.PageRows > 0 && rows%b.PageRows == 0 {
		f.Rows = b.PageRows
	}
	return f, nil
}

func (b *Board) importButtons(rows, cols int) []*system.Button {
	buttons := make([]*system.Button, rows*cols)
	for r := range rows {
		for c := range cols {
			btn, ok := b.button(b.Grid.Cell(r, c))
			if !ok {
				continue
			}
			sb := b.importButton(btn)
			buttons[r*cols+c] = &sb
		}
	}
	return buttons
}

func (b *Board) importButton(btn Button) system.Button {
	sb := system.Button{
		Label:         btn.Label,
		Pronunciation: btn.Vocalization,
		Parent:        btn.Parent,
	}
	if a, err := system.ParseAction(btn.SGSAction); btn.SGSAction != "" && err == nil {
		sb.Action = a
	} else {
		switch btn.Action {
		case actionSpeak:
			sb.Action = system.ActionSpeakBuiltPhrase
		case actionBackspace:
			sb.Action = system.ActionRemoveLast
		}
	}
	if btn.LoadBoard != nil {
		sb.Folder = btn.LoadBoard.ID
		if sb.Folder == "" {
			sb.Folder = btn.LoadBoard.Path
		}
	}
	if img, ok := b.image(btn.ImageID); ok {
		sb.Image = img.URL
		if sb.Image == "" {
			sb.Image = img.Path
		}
	}
	return sb
}

// hotbarFromBoard reads a board exported by BoardFromHotbar.
func hotbarFromBoard(b *Board) system.Hotbar {
	h := system.Hotbar{Rows: 1, Cols: b.Grid.Columns}
	h.Buttons = b.importButtons(b.Grid.Rows, b.Grid.Columns)
	for len(h.Buttons) > 0 && h.Buttons[len(h.Buttons)-1] == nil {
		h.Buttons = h.Buttons[:len(h.Buttons)-1]
	}
	return h
}
