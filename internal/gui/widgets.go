package gui

import (
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/sgs/internal/system"
)

// newTile builds the button drawn for one grid or hotbar cell. Navigation
// buttons get a folder icon; control buttons get the icon of the toolbar
// button they mirror; word buttons show their picture when it is a local
// file.
func (a *Application) newTile(btn system.Button, action system.Action, tapped func()) *ttwidget.Button {
	tile := ttwidget.NewButton(tileText(btn), tapped)
	switch {
	case btn.Navigates():
		tile.Icon = theme.FolderIcon()
		tile.Importance = widget.LowImportance
	case action == system.ActionSpeakBuiltPhrase:
		tile.Icon = theme.MediaPlayIcon()
		tile.Importance = widget.HighImportance
	case action == system.ActionRemoveLast:
		tile.Icon = theme.ContentUndoIcon()
		tile.Importance = widget.WarningImportance
	default:
		tile.Icon = a.imageResource(btn.Image)
		if action == system.ActionSpeak {
			tile.Importance = widget.SuccessImportance
		}
	}
	if tip := tileToolTip(btn, action); tip != "" {
		tile.SetToolTip(tip)
	}
	return tile
}

func emptyTile() fyne.CanvasObject {
	return widget.NewLabel("")
}

func tileText(btn system.Button) string {
	if btn.Navigates() {
		return btn.Label + " ›"
	}
	return btn.Label
}

func tileToolTip(btn system.Button, action system.Action) string {
	switch {
	case btn.Navigates():
		return "Open " + system.DisplayName(btn.Folder)
	case action == system.ActionSpeakBuiltPhrase:
		return "Speak the phrase"
	case action == system.ActionRemoveLast:
		return "Delete the last word"
	case btn.Pronunciation != "" && btn.Pronunciation != btn.Label:
		return "Says “" + btn.Pronunciation + "”"
	case action == system.ActionSpeak:
		return "Speaks right away"
	}
	return ""
}

// hotbarAction is the action a hotbar button performs: hotbar buttons
// without an explicit action append.
func hotbarAction(btn system.Button) system.Action {
	if btn.Action == system.ActionDefault {
		return system.ActionAppend
	}
	return btn.Action
}

func folderTitle(f *system.Folder) string {
	if f.Name != "" {
		return f.Name
	}
	return system.DisplayName(f.Key())
}

func phraseText(labels []string) string {
	if len(labels) == 0 {
		return "…"
	}
	return strings.Join(labels, " ")
}

// imageResource loads a button picture once. Remote URLs and missing files
// give no icon.
func (a *Application) imageResource(path string) fyne.Resource {
	if path == "" || strings.Contains(path, "://") {
		return nil
	}
	if res, ok := a.icons[path]; ok {
		return res
	}
	res, err := ResourceFromPath(path)
	if err != nil {
		a.logger.Debug("button image unavailable", "image", path, "error", err)
	}
	a.icons[path] = res
	return res
}

// ResourceFromPath creates a Fyne resource from a file path
func ResourceFromPath(path string) (fyne.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(filepath.Base(path), data), nil
}
