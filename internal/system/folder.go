package system

import "strings"

// HierarchySeparator splits hierarchical folder ids such as "Home::Food".
const HierarchySeparator = "::"

// Folder is a named, paginated grid of optional buttons. Buttons are stored
// row-major, one page of Rows*Cols slots after another. A nil slot is an
// empty cell.
type Folder struct {
	Name string `json:"name" yaml:"name"`
	// ID identifies the folder for navigation. It defaults to Name.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// TopLevel folders are listed in the folder selector. Others are only
	// reachable through a navigating button.
	TopLevel bool `json:"toplevel,omitempty" yaml:"toplevel,omitempty"`
	// Default marks the folder shown at startup.
	Default bool `json:"default,omitempty" yaml:"default,omitempty"`
	// Immediate folders speak a pressed button instead of appending it.
	Immediate bool      `json:"immediate,omitempty" yaml:"immediate,omitempty"`
	Rows      int       `json:"rows" yaml:"rows"`
	Cols      int       `json:"cols" yaml:"cols"`
	Buttons   []*Button `json:"buttons" yaml:"buttons"`
}

// Key returns the folder id, falling back to its name.
func (f *Folder) Key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.Name
}

// PageSize is the number of slots on one page.
func (f *Folder) PageSize() int {
	return f.Rows * f.Cols
}

// ButtonAt returns the button in the given cell. Empty slots, cells outside
// the grid and pages past the end all report false.
func (f *Folder) ButtonAt(page, col, row int) (Button, bool) {
	if page < 0 || col < 0 || row < 0 || col >= f.Cols || row >= f.Rows {
		return Button{}, false
	}
	offset := page * f.PageSize()
	position := row*f.Cols + col
	return slot(f.Buttons, offset+position)
}

// NeedsPagination reports whether the folder holds more than one page.
func (f *Folder) NeedsPagination() bool {
	return len(f.Buttons) > f.PageSize()
}

// NextPage returns the page after current, wrapping to 0 once the next page
// would start past the last stored slot.
func (f *Folder) NextPage(current int) int {
	if !f.NeedsPagination() {
		return 0
	}
	next := current + 1
	if next*f.PageSize() < len(f.Buttons) {
		return next
	}
	return 0
}

// PageCount is the number of pages shown in the UI. A partially filled last
// page counts as a whole page.
func (f *Folder) PageCount() int {
	size := f.PageSize()
	if size <= 0 {
		return 0
	}
	return (len(f.Buttons) + size - 1) / size
}

// EffectiveAction is the action pressing b performs inside this folder.
func (f *Folder) EffectiveAction(b Button) Action {
	if b.Action != ActionDefault {
		return b.Action
	}
	if f.Immediate {
		return ActionSpeak
	}
	return ActionAppend
}

// TopLevelID returns the part of a folder id before the first hierarchy
// separator, or the whole id when it has none.
func TopLevelID(id string) string {
	top, _, _ := strings.Cut(id, HierarchySeparator)
	return top
}

// DisplayName returns the last segment of a hierarchical id.
func DisplayName(id string) string {
	if i := strings.LastIndex(id, HierarchySeparator); i >= 0 {
		return id[i+len(HierarchySeparator):]
	}
	return id
}

func slot(buttons []*Button, i int) (Button, bool) {
	if i < 0 || i >= len(buttons) || buttons[i] == nil {
		return Button{}, false
	}
	return *buttons[i], true
}
