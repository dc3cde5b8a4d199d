package panel

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/sgs/internal/system"
)

// Sink is the part of a speech backend the panel needs.
type Sink interface {
	Speak(ctx context.Context, text string, interrupt bool) error
}

// Panel is the phrase buffer. It is not safe for concurrent use; the
// presentation layer drives it from its single event loop.
type Panel struct {
	sys     *system.System
	entries []system.Entry
}

// New returns an empty panel resolving entries against sys.
func New(sys *system.System) *Panel {
	return &Panel{sys: sys}
}

// System returns the system entries are resolved against.
func (p *Panel) System() *system.System {
	return p.sys
}

// Len is the number of entries in the buffer.
func (p *Panel) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the buffer.
func (p *Panel) Entries() []system.Entry {
	out := make([]system.Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Last returns the most recent entry.
func (p *Panel) Last() (system.Entry, bool) {
	if len(p.entries) == 0 {
		return system.Entry{}, false
	}
	return p.entries[len(p.entries)-1], true
}

// AddEntry appends a copy of b. Only Append buttons are accepted; anything
// else is reported as a *ContractError and the buffer is unchanged.
func (p *Panel) AddEntry(b system.Button) error {
	if b.Action != system.ActionAppend {
		return &ContractError{Op: "AddEntry", Action: b.Action}
	}
	p.entries = append(p.entries, system.NewEntry(b))
	return nil
}

// RemoveLastEntry drops the last entry, if any.
func (p *Panel) RemoveLastEntry() {
	if len(p.entries) == 0 {
		return
	}
	p.entries = p.entries[:len(p.entries)-1]
}

// Clear empties the buffer.
func (p *Panel) Clear() {
	p.entries = nil
}

// SetLastEntryRelated picks a related word for the last entry and drops its
// variant choice.
func (p *Panel) SetLastEntryRelated(i int) {
	if e := p.last(); e != nil {
		e.SetRelated(i)
	}
}

// SetLastEntryVariant picks a variant for the last entry.
func (p *Panel) SetLastEntryVariant(i int) {
	if e := p.last(); e != nil {
		e.SetVariant(i)
	}
}

// ClearLastEntryVariant drops the variant choice of the last entry.
func (p *Panel) ClearLastEntryVariant() {
	if e := p.last(); e != nil {
		e.ClearVariant()
	}
}

// Text joins the raw entry labels with single spaces.
func (p *Panel) Text() string {
	parts := make([]string, len(p.entries))
	for i, e := range p.entries {
		parts[i] = e.Button.Label
	}
	return strings.Join(parts, " ")
}

// Labels returns the resolved label of every entry, in order.
func (p *Panel) Labels() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Label(p.sys)
	}
	return out
}

// PronounceableText joins the resolved pronunciation of every entry.
func (p *Panel) PronounceableText() string {
	parts := make([]string, len(p.entries))
	for i, e := range p.entries {
		parts[i] = e.PronounceableText(p.sys)
	}
	return strings.Join(parts, " ")
}

// Speak sends the phrase to sink, interrupting anything already playing. The
// buffer is cleared only when the sink succeeds.
func (p *Panel) Speak(ctx context.Context, sink Sink) error {
	text := p.PronounceableText()
	if err := say(ctx, sink, text); err != nil {
		return err
	}
	p.Clear()
	return nil
}

// ApplyButton performs b's action. The action must already be concrete;
// ActionDefault is resolved by the folder the button came from.
func (p *Panel) ApplyButton(ctx context.Context, b system.Button, sink Sink) error {
	switch b.Action {
	case system.ActionSpeak:
		return say(ctx, sink, system.NewEntry(b).PronounceableText(p.sys))
	case system.ActionSpeakBuiltPhrase:
		return p.Speak(ctx, sink)
	case system.ActionAppend:
		return p.AddEntry(b)
	case system.ActionRemoveLast:
		p.RemoveLastEntry()
		return nil
	case system.ActionDefault:
		return &ContractError{Op: "ApplyButton", Action: b.Action}
	default:
		return fmt.Errorf("%w: %s", system.ErrUnknownAction, b.Action)
	}
}

func (p *Panel) last() *system.Entry {
	if len(p.entries) == 0 {
		return nil
	}
	return &p.entries[len(p.entries)-1]
}

func say(ctx context.Context, sink Sink, text string) error {
	if sink == nil {
		return &SpeechError{Text: text, Err: fmt.Errorf("no speech sink configured")}
	}
	if err := sink.Speak(ctx, text, true); err != nil {
		return &SpeechError{Text: text, Err: err}
	}
	return nil
}
