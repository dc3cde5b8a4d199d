package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/snonux/sgs/internal/board"
	"codeberg.org/snonux/sgs/internal/logging"
	"codeberg.org/snonux/sgs/internal/system"
)

// actionDoneMsg reports the end of a board action that ran as a command.
type actionDoneMsg struct {
	err error
}

// snapshot is what View draws. It is taken in Update whenever no action is
// running, so View never reads the board while a command uses it.
type snapshot struct {
	systemName      string
	folderIndex     int
	folder          *system.Folder
	tabs            []tab
	cells           [][]board.Cell
	hotbar          []board.Cell
	pageLabel       string
	hotbarPageLabel string
	phrase          []string
	canGoBack       bool
}

type tab struct {
	name   string
	active bool
}

// Model is the bubbletea model of the terminal board.
type Model struct {
	board  *board.Board
	ctx    context.Context
	logger *slog.Logger
	keys   KeyMap
	theme  Theme
	help   help.Model

	snap snapshot
	// row == len(snap.cells) is the hotbar.
	row, col int
	width    int

	busy   bool
	status string
	alert  bool
}

// New creates the terminal board model for b.
func New(ctx context.Context, b *board.Board, logger *slog.Logger) Model {
	m := Model{
		board:  b,
		ctx:    ctx,
		logger: logging.OrDiscard(logger),
		keys:   DefaultKeyMap,
		theme:  DefaultTheme(),
		help:   help.New(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.help.Width = message.Width
	case actionDoneMsg:
		m.busy = false
		m.refresh()
		m.report(message.err)
	case tea.KeyMsg:
		return m.handleKey(message)
	}
	return m, nil
}

func (m Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Quit):
		m.board.Stop()
		return m, tea.Quit
	case key.Matches(message, m.keys.Stop):
		m.board.Stop()
		if !m.busy {
			m.board.DismissNotification()
			m.setStatus("", false)
		}
		return m, nil
	case key.Matches(message, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(message, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(message, m.keys.Down):
		m.move(1, 0)
	case key.Matches(message, m.keys.Left):
		m.move(0, -1)
	case key.Matches(message, m.keys.Right):
		m.move(0, 1)
	case key.Matches(message, m.keys.Press):
		return m.press()
	case key.Matches(message, m.keys.Speak):
		if m.board.Panel().Len() == 0 {
			return m, nil
		}
		return m.run("Speaking...", m.board.Speak)
	case key.Matches(message, m.keys.NextFolder):
		m.cycleFolder(1)
	case key.Matches(message, m.keys.PrevFolder):
		m.cycleFolder(-1)
	case key.Matches(message, m.keys.NextPage):
		m.board.NextPage()
	case key.Matches(message, m.keys.NextHotbarPage):
		m.board.NextHotbarPage()
	case key.Matches(message, m.keys.Back):
		m.board.Back()
	case key.Matches(message, m.keys.DeleteLast):
		m.board.DeleteLast()
	case key.Matches(message, m.keys.Clear):
		m.board.Clear()
	case key.Matches(message, m.keys.Related):
		m.cycleRelated()
	case key.Matches(message, m.keys.Variant):
		m.cycleVariant()
	case key.Matches(message, m.keys.Plain):
		m.board.ClearVariant()
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// run hands a board action that may speak to bubbletea as a command, so
// slow synthesis does not block the event loop. Input other than stop and
// quit is ignored until it reports back.
func (m Model) run(status string, action func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	m.setStatus(status, false)
	ctx := m.ctx
	return m, func() tea.Msg {
		return actionDoneMsg{err: action(ctx)}
	}
}

func (m Model) press() (tea.Model, tea.Cmd) {
	b := m.board
	col, row := m.col, m.row
	if row < len(m.snap.cells) {
		return m.run("", func(ctx context.Context) error {
			return b.Press(ctx, col, row)
		})
	}
	if len(m.snap.hotbar) > 0 {
		return m.run("", func(ctx context.Context) error {
			return b.PressHotbar(ctx, col)
		})
	}
	return m, nil
}

func (m *Model) report(err error) {
	if err == nil {
		m.board.DismissNotification()
		m.setStatus("", false)
		return
	}
	if n, ok := m.board.Notification(); ok && errors.Is(err, n.Err) {
		m.setStatus(n.Message, true)
		return
	}
	m.logger.Error("board action failed", "error", err)
	m.setStatus("Error: "+err.Error(), true)
}

func (m *Model) setStatus(status string, alert bool) {
	m.status = status
	m.alert = alert
}

func (m *Model) move(dRow, dCol int) {
	m.row += dRow
	m.col += dCol
	m.clampCursor()
}

func (m *Model) clampCursor() {
	rows := len(m.snap.cells)
	if len(m.snap.hotbar) > 0 {
		rows++
	}
	m.row = clamp(m.row, 0, rows-1)
	m.col = clamp(m.col, 0, m.snap.folder.Cols-1)
}

func (m *Model) cycleFolder(dir int) {
	folders := m.board.System().SelectorFolders()
	if len(folders) == 0 {
		return
	}
	current := m.board.SelectedTopLevel()
	pos := 0
	for i, f := range folders {
		if f == current {
			pos = i
			break
		}
	}
	next := folders[(pos+dir+len(folders))%len(folders)]
	if err := m.board.SelectFolder(next); err != nil {
		m.setStatus("Error: "+err.Error(), true)
	}
}

func (m *Model) cycleRelated() {
	choices := m.board.RelatedChoices()
	last, ok := m.board.Panel().Last()
	if !ok || len(choices) == 0 {
		m.setStatus("No related words", false)
		return
	}
	m.board.ChooseRelated((last.RelatedIndex() + 1) % len(choices))
}

func (m *Model) cycleVariant() {
	choices := m.board.VariantChoices()
	last, ok := m.board.Panel().Last()
	if !ok || len(choices) == 0 {
		m.setStatus("No variants", false)
		return
	}
	m.board.ChooseVariant((last.VariantIndex() + 1) % len(choices))
}

// refresh takes a new snapshot. The cursor goes back to the top left when
// the active folder changed.
func (m *Model) refresh() {
	b := m.board
	sys := b.System()
	selected := b.SelectedTopLevel()

	var tabs []tab
	for _, i := range sys.SelectorFolders() {
		tabs = append(tabs, tab{name: folderTitle(sys.Folders[i]), active: i == selected})
	}

	previous := m.snap.folder
	m.snap = snapshot{
		systemName:      sys.Name,
		folderIndex:     b.FolderIndex(),
		folder:          b.Folder(),
		tabs:            tabs,
		cells:           b.Cells(),
		hotbar:          b.HotbarCells(),
		pageLabel:       b.PageLabel(),
		hotbarPageLabel: b.HotbarPageLabel(),
		phrase:          b.PanelLabels(),
		canGoBack:       b.CanGoBack(),
	}
	if previous != nil && previous != m.snap.folder {
		m.row, m.col = 0, 0
	}
	m.clampCursor()
}

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme
	s := m.snap

	title := "sgs"
	if s.systemName != "" {
		title += " · " + s.systemName
	}

	tabs := make([]string, len(s.tabs))
	for i, tb := range s.tabs {
		if tb.active {
			tabs[i] = t.TabActive.Render(tb.name)
		} else {
			tabs[i] = t.Tab.Render(tb.name)
		}
	}

	phrase := t.PhraseEmpty.Render("(empty phrase)")
	if len(s.phrase) > 0 {
		phrase = t.Phrase.Render(strings.Join(s.phrase, " "))
	}

	width := m.cellWidth()
	parts := []string{
		t.Title.Render(title) + "  " + t.Status.Render(s.folder.Key()),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		phrase,
	}
	for r, row := range s.cells {
		cells := make([]string, len(row))
		for c, cell := range row {
			action := system.ActionDefault
			if !cell.Empty {
				action = s.folder.EffectiveAction(cell.Button)
			}
			cells[c] = m.renderCell(cell, action, width, r == m.row && c == m.col)
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if len(s.hotbar) > 0 {
		parts = append(parts, t.HotbarDivider.Render(strings.Repeat("─", width*len(s.hotbar))))
		cells := make([]string, len(s.hotbar))
		onHotbar := m.row == len(s.cells)
		for c, cell := range s.hotbar {
			action := system.ActionAppend
			if !cell.Empty && cell.Button.Action != system.ActionDefault {
				action = cell.Button.Action
			}
			cells[c] = m.renderCell(cell, action, width, onHotbar && c == m.col)
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var pages []string
	if s.pageLabel != "" {
		pages = append(pages, "Page "+s.pageLabel)
	}
	if s.hotbarPageLabel != "" {
		pages = append(pages, "Hotbar "+s.hotbarPageLabel)
	}
	if s.canGoBack {
		pages = append(pages, "b: back")
	}
	if len(pages) > 0 {
		parts = append(parts, t.Status.Render(strings.Join(pages, "   ")))
	}

	if m.status != "" {
		if m.alert {
			parts = append(parts, t.Notification.Render(m.status))
		} else {
			parts = append(parts, t.Status.Render(m.status))
		}
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderCell(cell board.Cell, action system.Action, width int, cursor bool) string {
	t := m.theme
	style := t.Cell
	text := "·"
	switch {
	case cell.Empty:
		style = t.CellEmpty
	case cell.Button.Navigates():
		style = t.CellFolder
		text = cell.Button.Label + " ›"
	case action == system.ActionSpeakBuiltPhrase || action == system.ActionRemoveLast:
		style = t.CellControl
		text = cell.Button.Label
	case action == system.ActionSpeak:
		style = t.CellImmediate
		text = cell.Button.Label
	default:
		text = cell.Button.Label
	}
	if cursor {
		style = t.Cursor
	}
	return style.Width(width).Render(truncate(text, width-2))
}

func (m Model) cellWidth() int {
	lo, hi := m.theme.CellWidthRange[0], m.theme.CellWidthRange[1]
	if m.width <= 0 {
		return 14
	}
	return clamp(m.width/max(m.snap.folder.Cols, 1), lo, hi)
}

func folderTitle(f *system.Folder) string {
	if f.Name != "" {
		return f.Name
	}
	return system.DisplayName(f.Key())
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
