package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/snonux/sgs/internal/logging"
	"codeberg.org/snonux/sgs/internal/panel"
	"codeberg.org/snonux/sgs/internal/speech"
	"codeberg.org/snonux/sgs/internal/system"
)

// Notification is a transient message for the presentation layer, such as a
// failed speech attempt.
type Notification struct {
	Message string
	Err     error
	At      time.Time
}

// Cell is one grid position as the presentation layer draws it.
type Cell struct {
	Col, Row int
	Button   system.Button
	// Empty cells have no button and do nothing when pressed.
	Empty bool
}

// Board holds the navigation state on top of a System.
type Board struct {
	sys    *system.System
	sink   speech.Sink
	panel  *panel.Panel
	logger *slog.Logger

	folder     int
	page       int
	hotbarPage int
	history    []int

	notice *Notification
	now    func() time.Time
}

// New starts a board on the system's default folder.
func New(sys *system.System, sink speech.Sink, logger *slog.Logger) (*Board, error) {
	if sys == nil {
		return nil, errors.New("board needs a system")
	}
	start, err := sys.DefaultFolder()
	if err != nil {
		return nil, &system.ConfigError{Err: err}
	}
	return &Board{
		sys:    sys,
		sink:   sink,
		panel:  panel.New(sys),
		logger: logging.OrDiscard(logger),
		folder: start,
		now:    time.Now,
	}, nil
}

// System returns the board definition.
func (b *Board) System() *system.System { return b.sys }

// Panel returns the phrase buffer.
func (b *Board) Panel() *panel.Panel { return b.panel }

// Sink returns the speech sink.
func (b *Board) Sink() speech.Sink { return b.sink }

// Folder returns the active folder.
func (b *Board) Folder() *system.Folder { return b.sys.Folders[b.folder] }

// FolderIndex returns the index of the active folder.
func (b *Board) FolderIndex() int { return b.folder }

// Page returns the active folder page.
func (b *Board) Page() int { return b.page }

// HotbarPage returns the active hotbar page.
func (b *Board) HotbarPage() int { return b.hotbarPage }

// SelectedTopLevel returns the folder selector entry to highlight: the
// top-level ancestor of the active folder.
func (b *Board) SelectedTopLevel() int {
	i, err := b.sys.TopLevelFolder(b.Folder().Key())
	if err != nil {
		return b.folder
	}
	return i
}

// SelectFolder switches to folder i from the folder selector. Navigation
// history is dropped.
func (b *Board) SelectFolder(i int) error {
	if _, ok := b.sys.Folder(i); !ok {
		return fmt.Errorf("folder index %d out of range", i)
	}
	b.history = b.history[:0]
	b.show(i)
	return nil
}

// Navigate follows a button's folder target.
func (b *Board) Navigate(id string) error {
	i, ok := b.sys.FolderIndex(id)
	if !ok {
		return fmt.Errorf("%w: %q", system.ErrUnknownFolderTarget, id)
	}
	if i != b.folder {
		b.history = append(b.history, b.folder)
	}
	b.show(i)
	return nil
}

// Back returns to the folder shown before the last Navigate. It reports
// false when there is nothing to go back to.
func (b *Board) Back() bool {
	if len(b.history) == 0 {
		return false
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.show(last)
	return true
}

// CanGoBack reports whether Back would do anything.
func (b *Board) CanGoBack() bool {
	return len(b.history) > 0
}

func (b *Board) show(i int) {
	b.folder = i
	b.page = 0
	if b.hotbarPage >= b.sys.Hotbar.PageCount(b.Folder().Cols) {
		b.hotbarPage = 0
	}
	b.logger.Debug("folder shown", "folder", b.Folder().Key())
}

// Press activates the cell at col,row of the current page.
func (b *Board) Press(ctx context.Context, col, row int) error {
	f := b.Folder()
	btn, ok := f.ButtonAt(b.page, col, row)
	if !ok {
		return nil
	}
	if btn.Navigates() {
		return b.Navigate(btn.Folder)
	}
	btn.Action = f.EffectiveAction(btn)
	return b.apply(ctx, btn)
}

// PressHotbar activates column col of the current hotbar page.
func (b *Board) PressHotbar(ctx context.Context, col int) error {
	btn, ok := b.sys.Hotbar.ButtonAt(b.Folder().Cols, b.hotbarPage, col)
	if !ok {
		return nil
	}
	if btn.Navigates() {
		return b.Navigate(btn.Folder)
	}
	if btn.Action == system.ActionDefault {
		btn.Action = system.ActionAppend
	}
	return b.apply(ctx, btn)
}

// ErrNoSuchButton is returned by PressLabel when neither the active folder
// nor the hotbar has a button with the label.
var ErrNoSuchButton = errors.New("no such button")

// PressLabel finds a button by label on any page of the active folder, then
// on the hotbar, turns to its page and presses it. An exact match wins over
// a case-insensitive one.
func (b *Board) PressLabel(ctx context.Context, label string) error {
	f := b.Folder()
	if i, ok := findLabel(f.Buttons, label); ok {
		size := f.PageSize()
		b.page = i / size
		return b.Press(ctx, (i%size)%f.Cols, (i%size)/f.Cols)
	}
	if i, ok := findLabel(b.sys.Hotbar.Buttons, label); ok {
		b.hotbarPage = i / f.Cols
		return b.PressHotbar(ctx, i%f.Cols)
	}
	return fmt.Errorf("%w: %q in folder %q or hotbar", ErrNoSuchButton, label, f.Key())
}

func findLabel(buttons []*system.Button, label string) (int, bool) {
	fold := -1
	for i, btn := range buttons {
		if btn == nil {
			continue
		}
		if btn.Label == label {
			return i, true
		}
		if fold < 0 && strings.EqualFold(btn.Label, label) {
			fold = i
		}
	}
	return fold, fold >= 0
}

func (b *Board) apply(ctx context.Context, btn system.Button) error {
	err := b.panel.ApplyButton(ctx, btn, b.sink)
	b.record(err)
	return err
}

// NextPage advances the folder page, wrapping at the end.
func (b *Board) NextPage() {
	b.page = b.Folder().NextPage(b.page)
}

// NextHotbarPage advances the hotbar page, wrapping at the end.
func (b *Board) NextHotbarPage() {
	b.hotbarPage = b.sys.Hotbar.NextPage(b.Folder().Cols, b.hotbarPage)
}

// PageLabel returns "page/total" for a paginated folder, or "".
func (b *Board) PageLabel() string {
	f := b.Folder()
	if !f.NeedsPagination() {
		return ""
	}
	return fmt.Sprintf("%d/%d", b.page+1, f.PageCount())
}

// HotbarPageLabel is PageLabel for the hotbar.
func (b *Board) HotbarPageLabel() string {
	cols := b.Folder().Cols
	if !b.sys.Hotbar.NeedsPagination(cols) {
		return ""
	}
	return fmt.Sprintf("%d/%d", b.hotbarPage+1, b.sys.Hotbar.PageCount(cols))
}

// Speak voices the composed phrase. An empty phrase does nothing. On
// failure the phrase is kept and a notification is recorded.
func (b *Board) Speak(ctx context.Context) error {
	if b.panel.Len() == 0 {
		return nil
	}
	words := b.panel.Len()
	err := b.panel.Speak(ctx, b.sink)
	if err == nil {
		b.logger.Info("phrase spoken", "words", words)
	}
	b.record(err)
	return err
}

// Stop cuts off speech in progress.
func (b *Board) Stop() {
	if b.sink != nil {
		b.sink.Stop()
	}
}

// IsSpeaking reports whether the sink is busy.
func (b *Board) IsSpeaking() bool {
	return b.sink != nil && b.sink.IsSpeaking()
}

// DeleteLast removes the last word of the phrase.
func (b *Board) DeleteLast() { b.panel.RemoveLastEntry() }

// Clear empties the phrase.
func (b *Board) Clear() { b.panel.Clear() }

// ChooseRelated replaces the last word with its i-th related word.
func (b *Board) ChooseRelated(i int) { b.panel.SetLastEntryRelated(i) }

// ChooseVariant replaces the last word with its i-th variant.
func (b *Board) ChooseVariant(i int) { b.panel.SetLastEntryVariant(i) }

// ClearVariant restores the last word's unvaried form.
func (b *Board) ClearVariant() { b.panel.ClearLastEntryVariant() }

// RelatedChoices lists the related words offered for the last word.
func (b *Board) RelatedChoices() []system.Button {
	last, ok := b.panel.Last()
	if !ok {
		return nil
	}
	return last.RelatedChoices(b.sys)
}

// VariantChoices lists the variants offered for the last word.
func (b *Board) VariantChoices() []system.Button {
	last, ok := b.panel.Last()
	if !ok {
		return nil
	}
	return last.VariantChoices(b.sys)
}

// Cells returns the current folder page as rows of cells.
func (b *Board) Cells() [][]Cell {
	f := b.Folder()
	rows := make([][]Cell, f.Rows)
	for r := range rows {
		rows[r] = make([]Cell, f.Cols)
		for c := range rows[r] {
			btn, ok := f.ButtonAt(b.page, c, r)
			rows[r][c] = Cell{Col: c, Row: r, Button: btn, Empty: !ok}
		}
	}
	return rows
}

// HotbarCells returns the current hotbar page, as wide as the active folder.
func (b *Board) HotbarCells() []Cell {
	if len(b.sys.Hotbar.Buttons) == 0 {
		return nil
	}
	cols := b.Folder().Cols
	cells := make([]Cell, cols)
	for c := range cells {
		btn, ok := b.sys.Hotbar.ButtonAt(cols, b.hotbarPage, c)
		cells[c] = Cell{Col: c, Button: btn, Empty: !ok}
	}
	return cells
}

// PanelLabels returns the resolved labels of the phrase.
func (b *Board) PanelLabels() []string {
	return b.panel.Labels()
}

// Notification returns the last recorded notification, if any.
func (b *Board) Notification() (Notification, bool) {
	if b.notice == nil {
		return Notification{}, false
	}
	return *b.notice, true
}

// DismissNotification clears the notification.
func (b *Board) DismissNotification() {
	b.notice = nil
}

// record turns speech failures into a notification. Other errors are caller
// bugs and are only logged.
func (b *Board) record(err error) {
	if err == nil {
		return
	}
	var speechErr *panel.SpeechError
	if errors.As(err, &speechErr) {
		b.logger.Warn("speech failed", "error", speechErr.Err)
		b.notice = &Notification{
			Message: fmt.Sprintf("Could not speak: %v", speechErr.Err),
			Err:     err,
			At:      b.now(),
		}
		return
	}
	b.logger.Error("button action failed", "error", err)
}
