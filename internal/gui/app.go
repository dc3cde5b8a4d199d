package gui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/sgs/internal"
	"codeberg.org/snonux/sgs/internal/board"
	"codeberg.org/snonux/sgs/internal/logging"
)

// Application represents the board window
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// Phrase row
	speakButton   *ttwidget.Button
	stopButton    *ttwidget.Button
	panelLabel    *widget.Label
	relatedButton *ttwidget.Button
	variantButton *ttwidget.Button
	deleteButton  *ttwidget.Button
	clearButton   *ttwidget.Button
	backButton    *ttwidget.Button
	helpButton    *ttwidget.Button

	// Board area
	selector         *fyne.Container
	grid             *fyne.Container
	pageButton       *ttwidget.Button
	hotbar           *fyne.Container
	hotbarPageButton *ttwidget.Button
	statusLabel      *widget.Label
	console          *LogViewer

	board  *board.Board
	config *Config
	logger *slog.Logger
	icons  map[string]fyne.Resource

	// busy is only touched on the UI thread. The board is not safe for
	// concurrent use, so input is ignored while an action runs.
	busy    bool
	async   bool
	actions sync.WaitGroup

	noticeTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration
type Config struct {
	// Debug shows the log console under the board.
	Debug bool
	// Console receives the log records when Debug is set. It may be nil.
	Console *LogViewer
	Logger  *slog.Logger
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{Logger: logging.Discard()}
}

// New creates the board window for b.
func New(b *board.Board, config *Config) *Application {
	myApp := app.NewWithID("org.codeberg.snonux.sgs")
	myApp.SetIcon(GetAppIcon())
	return newApplication(myApp, b, config)
}

func newApplication(fyneApp fyne.App, b *board.Board, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:           fyneApp,
		board:         b,
		config:        config,
		logger:        logging.OrDiscard(config.Logger),
		icons:         make(map[string]fyne.Resource),
		async:         true,
		noticeTimeout: 6 * time.Second,
		ctx:           ctx,
		cancel:        cancel,
	}
	a.setupUI()
	a.refresh()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	title := fmt.Sprintf("sgs v%s", internal.Version)
	if name := a.board.System().Name; name != "" {
		title += " - " + name
	}
	a.window = a.app.NewWindow(title)
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(1100, 760))

	a.speakButton = ttwidget.NewButton("Speak", a.onSpeak)
	a.speakButton.Icon = theme.MediaPlayIcon()
	a.speakButton.Importance = widget.HighImportance

	a.stopButton = ttwidget.NewButton("", a.onStop)
	a.stopButton.Icon = theme.MediaStopIcon()

	a.panelLabel = widget.NewLabel("")
	a.panelLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.panelLabel.Truncation = fyne.TextTruncateEllipsis

	a.relatedButton = ttwidget.NewButton("", a.onShowRelated)
	a.relatedButton.Icon = theme.ListIcon()

	a.variantButton = ttwidget.NewButton("", a.onShowVariants)
	a.variantButton.Icon = theme.ViewRefreshIcon()

	a.deleteButton = ttwidget.NewButton("", a.onDeleteLast)
	a.deleteButton.Icon = theme.ContentUndoIcon()

	a.clearButton = ttwidget.NewButton("", a.onClear)
	a.clearButton.Icon = theme.ContentClearIcon()

	a.backButton = ttwidget.NewButton("", a.onBack)
	a.backButton.Icon = theme.NavigateBackIcon()

	a.helpButton = ttwidget.NewButton("", a.onShowHotkeys)
	a.helpButton.Icon = theme.HelpIcon()

	phraseRow := container.NewBorder(
		nil, nil,
		container.NewHBox(a.speakButton, a.stopButton),
		container.NewHBox(
			a.relatedButton,
			a.variantButton,
			widget.NewSeparator(),
			a.deleteButton,
			a.clearButton,
			widget.NewSeparator(),
			a.backButton,
			a.helpButton,
		),
		a.panelLabel,
	)

	a.selector = container.NewHBox()

	a.grid = container.NewGridWithColumns(1)
	a.pageButton = ttwidget.NewButton("", a.onNextPage)
	a.pageButton.Icon = theme.NavigateNextIcon()
	a.pageButton.IconPlacement = widget.ButtonIconTrailingText

	a.hotbar = container.NewGridWithColumns(1)
	a.hotbarPageButton = ttwidget.NewButton("", a.onNextHotbarPage)
	a.hotbarPageButton.Icon = theme.NavigateNextIcon()
	a.hotbarPageButton.IconPlacement = widget.ButtonIconTrailingText

	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	gridSection := container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), a.pageButton),
		nil, nil,
		a.grid,
	)
	hotbarSection := container.NewBorder(nil, nil, nil, a.hotbarPageButton, a.hotbar)

	bottom := container.NewVBox(widget.NewSeparator(), hotbarSection, widget.NewSeparator(), a.statusLabel)

	var content fyne.CanvasObject = container.NewBorder(
		container.NewVBox(
			phraseRow,
			widget.NewSeparator(),
			container.NewHScroll(a.selector),
		),
		bottom,
		nil, nil,
		gridSection,
	)

	if a.config.Debug {
		a.console = a.config.Console
		if a.console == nil {
			a.console = NewLogViewer()
		}
		split := container.NewVSplit(content, a.console)
		split.Offset = 0.75
		content = split
	}

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.board.Stop()
	})

	a.setupKeyboardShortcuts()
}

func (a *Application) setupTooltips() {
	a.speakButton.SetToolTip("Speak the phrase (Enter)")
	a.stopButton.SetToolTip("Stop speaking (Esc)")
	a.relatedButton.SetToolTip("Related words for the last word (r)")
	a.variantButton.SetToolTip("Variants of the last word (v)")
	a.deleteButton.SetToolTip("Delete the last word (Backspace)")
	a.clearButton.SetToolTip("Clear the phrase (Delete)")
	a.backButton.SetToolTip("Back to the previous folder (b)")
	a.helpButton.SetToolTip("Show hotkeys (F1)")
	a.pageButton.SetToolTip("Next page (n)")
	a.hotbarPageButton.SetToolTip("Next hotbar page (h)")
}

// Run shows the window and blocks until it is closed.
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// run executes a board action that may speak. It runs off the UI thread so
// slow synthesis does not freeze the window.
func (a *Application) run(status string, action func(ctx context.Context) error) {
	if a.busy {
		return
	}
	a.busy = true
	if status != "" {
		a.updateStatus(status)
	}

	a.actions.Add(1)
	finish := func(err error) {
		defer a.actions.Done()
		a.busy = false
		a.refresh()
		a.report(err)
	}
	if !a.async {
		finish(action(a.ctx))
		return
	}
	go func() {
		err := action(a.ctx)
		fyne.Do(func() { finish(err) })
	}()
}

// wait blocks until every action started by run has finished.
func (a *Application) wait() {
	a.actions.Wait()
}

// update applies a state change that never speaks.
func (a *Application) update(change func()) {
	if a.busy {
		return
	}
	change()
	a.refresh()
}

func (a *Application) report(err error) {
	if err == nil {
		a.dismissNotification()
		return
	}
	if n, ok := a.board.Notification(); ok && errors.Is(err, n.Err) {
		a.showNotification(n)
		return
	}
	a.showError(err)
}

// showNotification shows a speech failure until it is dismissed or times
// out. The phrase stays in place so it can be spoken again.
func (a *Application) showNotification(n board.Notification) {
	a.statusLabel.Importance = widget.DangerImportance
	a.updateStatus(n.Message)
	if a.noticeTimeout <= 0 {
		return
	}
	time.AfterFunc(a.noticeTimeout, func() {
		fyne.Do(func() {
			if a.busy {
				return
			}
			current, ok := a.board.Notification()
			if !ok || !current.At.Equal(n.At) {
				return
			}
			a.dismissNotification()
		})
	})
}

func (a *Application) dismissNotification() {
	a.board.DismissNotification()
	a.statusLabel.Importance = widget.MediumImportance
	a.updateStatus("Ready")
}

func (a *Application) onSpeak() {
	if a.busy || a.board.Panel().Len() == 0 {
		return
	}
	a.run("Speaking...", a.board.Speak)
}

func (a *Application) onStop() {
	a.board.Stop()
}

func (a *Application) onDeleteLast() {
	a.update(a.board.DeleteLast)
}

func (a *Application) onClear() {
	a.update(a.board.Clear)
}

func (a *Application) onBack() {
	a.update(func() { a.board.Back() })
}

func (a *Application) onNextPage() {
	a.update(a.board.NextPage)
}

func (a *Application) onNextHotbarPage() {
	a.update(a.board.NextHotbarPage)
}

func (a *Application) onSelectFolder(i int) {
	a.update(func() {
		if err := a.board.SelectFolder(i); err != nil {
			a.showError(err)
		}
	})
}

func (a *Application) onNextFolder() {
	if a.busy {
		return
	}
	folders := a.board.System().SelectorFolders()
	if len(folders) == 0 {
		return
	}
	current := a.board.SelectedTopLevel()
	next := folders[0]
	for i, f := range folders {
		if f == current {
			next = folders[(i+1)%len(folders)]
			break
		}
	}
	a.onSelectFolder(next)
}

func (a *Application) onPress(col, row int) {
	a.run("", func(ctx context.Context) error {
		return a.board.Press(ctx, col, row)
	})
}

func (a *Application) onPressHotbar(col int) {
	a.run("", func(ctx context.Context) error {
		return a.board.PressHotbar(ctx, col)
	})
}

func (a *Application) onShowRelated() {
	a.showChoices(a.relatedButton, a.relatedMenu)
}

func (a *Application) onShowVariants() {
	a.showChoices(a.variantButton, a.variantMenu)
}

func (a *Application) relatedMenu() *fyne.Menu {
	choices := a.board.RelatedChoices()
	if len(choices) == 0 {
		return nil
	}
	items := make([]*fyne.MenuItem, len(choices))
	for i, c := range choices {
		items[i] = fyne.NewMenuItem(c.Label, func() {
			a.update(func() { a.board.ChooseRelated(i) })
		})
	}
	return fyne.NewMenu("Related", items...)
}

func (a *Application) variantMenu() *fyne.Menu {
	choices := a.board.VariantChoices()
	if len(choices) == 0 {
		return nil
	}
	items := make([]*fyne.MenuItem, 0, len(choices)+2)
	for i, c := range choices {
		items = append(items, fyne.NewMenuItem(c.Label, func() {
			a.update(func() { a.board.ChooseVariant(i) })
		}))
	}
	items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Plain", func() {
		a.update(a.board.ClearVariant)
	}))
	return fyne.NewMenu("Variants", items...)
}

// showChoices builds a menu from board state and pops it up below anchor.
func (a *Application) showChoices(anchor fyne.CanvasObject, build func() *fyne.Menu) {
	if a.busy {
		return
	}
	menu := build()
	if menu == nil {
		return
	}
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(anchor)
	pos = pos.Add(fyne.NewPos(0, anchor.Size().Height))
	widget.ShowPopUpMenuAtPosition(menu, a.window.Canvas(), pos)
}

// refresh redraws everything that depends on board state.
func (a *Application) refresh() {
	labels := a.board.PanelLabels()
	a.panelLabel.SetText(phraseText(labels))

	hasWords := len(labels) > 0
	setEnabled(a.speakButton, hasWords)
	setEnabled(a.deleteButton, hasWords)
	setEnabled(a.clearButton, hasWords)
	setEnabled(a.relatedButton, len(a.board.RelatedChoices()) > 0)
	setEnabled(a.variantButton, len(a.board.VariantChoices()) > 0)
	setEnabled(a.backButton, a.board.CanGoBack())

	a.refreshSelector()
	a.refreshGrid()
	a.refreshHotbar()
}

func (a *Application) refreshSelector() {
	sys := a.board.System()
	selected := a.board.SelectedTopLevel()
	objects := make([]fyne.CanvasObject, 0, len(sys.Folders))
	for _, i := range sys.SelectorFolders() {
		f := sys.Folders[i]
		btn := widget.NewButton(folderTitle(f), func() { a.onSelectFolder(i) })
		if i == selected {
			btn.Importance = widget.HighImportance
		}
		objects = append(objects, btn)
	}
	a.selector.Objects = objects
	a.selector.Refresh()
}

func (a *Application) refreshGrid() {
	f := a.board.Folder()
	objects := make([]fyne.CanvasObject, 0, f.PageSize())
	for _, row := range a.board.Cells() {
		for _, cell := range row {
			if cell.Empty {
				objects = append(objects, emptyTile())
				continue
			}
			col, r := cell.Col, cell.Row
			objects = append(objects, a.newTile(cell.Button, f.EffectiveAction(cell.Button), func() {
				a.onPress(col, r)
			}))
		}
	}
	a.grid.Layout = layout.NewGridLayoutWithColumns(f.Cols)
	a.grid.Objects = objects
	a.grid.Refresh()

	setPageButton(a.pageButton, "Page", a.board.PageLabel())
}

func (a *Application) refreshHotbar() {
	cells := a.board.HotbarCells()
	objects := make([]fyne.CanvasObject, 0, len(cells))
	for _, cell := range cells {
		if cell.Empty {
			objects = append(objects, emptyTile())
			continue
		}
		col := cell.Col
		objects = append(objects, a.newTile(cell.Button, hotbarAction(cell.Button), func() {
			a.onPressHotbar(col)
		}))
	}
	a.hotbar.Layout = layout.NewGridLayoutWithColumns(max(len(cells), 1))
	a.hotbar.Objects = objects
	a.hotbar.Refresh()

	setPageButton(a.hotbarPageButton, "Hotbar", a.board.HotbarPageLabel())
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus("Error: " + err.Error())
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

func setPageButton(btn *ttwidget.Button, prefix, label string) {
	if label == "" {
		btn.Hide()
		return
	}
	btn.SetText(prefix + " " + label)
	btn.Show()
}
