package system

// Hotbar is a strip of frequently used buttons shown under every folder.
//
// It pages differently from a Folder: one page is as wide as the active
// folder's column count, so switching to a folder with a different number of
// columns moves the page boundaries.
type Hotbar struct {
	Rows    int       `json:"rows" yaml:"rows"`
	Cols    int       `json:"cols" yaml:"cols"`
	Buttons []*Button `json:"buttons" yaml:"buttons"`
}

// ButtonAt returns the button in column col of the given page.
func (h *Hotbar) ButtonAt(folderCols, page, col int) (Button, bool) {
	if folderCols <= 0 || page < 0 || col < 0 || col >= folderCols {
		return Button{}, false
	}
	return slot(h.Buttons, page*folderCols+col)
}

// NextPage returns the page after current, or 0 when that page would be
// empty.
func (h *Hotbar) NextPage(folderCols, current int) int {
	if folderCols <= 0 {
		return 0
	}
	next := current + 1
	if next*folderCols < len(h.Buttons) {
		return next
	}
	return 0
}

// NeedsPagination reports whether the hotbar is wider than one page.
func (h *Hotbar) NeedsPagination(folderCols int) bool {
	return folderCols > 0 && len(h.Buttons) > folderCols
}

// PageCount is the number of hotbar pages for the given folder width.
func (h *Hotbar) PageCount(folderCols int) int {
	if folderCols <= 0 {
		return 0
	}
	return (len(h.Buttons) + folderCols - 1) / folderCols
}
