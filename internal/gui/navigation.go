package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

type shortcut int

const (
	shortcutNone shortcut = iota
	shortcutSpeak
	shortcutStop
	shortcutDeleteLast
	shortcutClear
	shortcutNextFolder
	shortcutNextPage
	shortcutNextHotbarPage
	shortcutBack
	shortcutRelated
	shortcutVariants
	shortcutHelp
	shortcutQuit
)

// shortcutFor maps a key to a board command.
func shortcutFor(key fyne.KeyName) shortcut {
	switch key {
	case fyne.KeyReturn, fyne.KeyEnter:
		return shortcutSpeak
	case fyne.KeyEscape:
		return shortcutStop
	case fyne.KeyBackspace:
		return shortcutDeleteLast
	case fyne.KeyDelete:
		return shortcutClear
	case fyne.KeyTab:
		return shortcutNextFolder
	case fyne.KeyPageDown, fyne.KeyN:
		return shortcutNextPage
	case fyne.KeyH:
		return shortcutNextHotbarPage
	case fyne.KeyB:
		return shortcutBack
	case fyne.KeyR:
		return shortcutRelated
	case fyne.KeyV:
		return shortcutVariants
	case fyne.KeyF1:
		return shortcutHelp
	case fyne.KeyQ:
		return shortcutQuit
	}
	return shortcutNone
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		a.handleShortcutKey(ev.Name)
	})
}

func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch shortcutFor(key) {
	case shortcutSpeak:
		a.onSpeak()
	case shortcutStop:
		a.onStop()
		if a.busy {
			return
		}
		if _, ok := a.board.Notification(); ok {
			a.dismissNotification()
		}
	case shortcutDeleteLast:
		a.onDeleteLast()
	case shortcutClear:
		a.onClear()
	case shortcutNextFolder:
		a.onNextFolder()
	case shortcutNextPage:
		a.onNextPage()
	case shortcutNextHotbarPage:
		a.onNextHotbarPage()
	case shortcutBack:
		a.onBack()
	case shortcutRelated:
		a.showChoices(a.panelLabel, a.relatedMenu)
	case shortcutVariants:
		a.showChoices(a.panelLabel, a.variantMenu)
	case shortcutHelp:
		a.onShowHotkeys()
	case shortcutQuit:
		a.window.Close()
	}
}

const hotkeys = `[Project Page: https://codeberg.org/snonux/sgs](https://codeberg.org/snonux/sgs)

---

## Phrase
**Enter** Speak the phrase
**Esc** Stop speaking, dismiss a message
**Backspace** Delete the last word
**Delete** Clear the phrase
**r** Related words for the last word
**v** Variants of the last word

## Board
**Tab** Next top-level folder
**n / Page Down** Next page
**h** Next hotbar page
**b** Back to the previous folder

## Help
**F1** Show hotkeys
**q** Quit application
`

func (a *Application) onShowHotkeys() {
	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(520, 420))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)
	d.Show()
}
