package panel

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/sgs/internal/system"
	"codeberg.org/snonux/sgs/internal/testutil"
)

func appendButton(label string) system.Button {
	return system.Button{Label: label, Action: system.ActionAppend}
}

func testSystem() *system.System {
	return &system.System{
		Related: map[string][]system.Button{
			"hi": {system.NewButton("hi"), system.NewButton("hello"), system.NewButton("hey")},
		},
		Variants: map[string][]system.Button{
			"hey": {system.NewButton("hey"), {Label: "hey there", Pronunciation: "hey there you"}},
		},
	}
}

func TestAddAndRemove(t *testing.T) {
	p := New(testSystem())
	if err := p.AddEntry(appendButton("foo")); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if err := p.AddEntry(appendButton("bar")); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if got := p.Text(); got != "foo bar" {
		t.Errorf("Text() = %q, want %q", got, "foo bar")
	}

	p.RemoveLastEntry()
	if got := p.Text(); got != "foo" {
		t.Errorf("Text() = %q, want %q", got, "foo")
	}

	p.RemoveLastEntry()
	p.RemoveLastEntry()
	if p.Len() != 0 || p.Text() != "" {
		t.Errorf("expected empty panel, got %q", p.Text())
	}
}

func TestAddEntryRejectsOtherActions(t *testing.T) {
	p := New(nil)
	for _, action := range []system.Action{system.ActionSpeak, system.ActionRemoveLast, system.ActionSpeakBuiltPhrase, system.ActionDefault} {
		err := p.AddEntry(system.Button{Label: "x", Action: action})
		var contractErr *ContractError
		if !errors.As(err, &contractErr) {
			t.Fatalf("AddEntry(%v) error = %v, want *ContractError", action, err)
		}
		if contractErr.Action != action {
			t.Errorf("ContractError.Action = %v, want %v", contractErr.Action, action)
		}
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestLastEntryMutationsOnEmptyPanel(t *testing.T) {
	p := New(testSystem())
	p.SetLastEntryRelated(1)
	p.SetLastEntryVariant(1)
	p.ClearLastEntryVariant()
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestLastEntryResolution(t *testing.T) {
	p := New(testSystem())
	_ = p.AddEntry(appendButton("I"))
	_ = p.AddEntry(appendButton("hi"))

	p.SetLastEntryRelated(2)
	p.SetLastEntryVariant(1)
	if got := p.PronounceableText(); got != "I hey there you" {
		t.Errorf("PronounceableText() = %q", got)
	}
	if got := p.Labels(); got[1] != "hey there" {
		t.Errorf("Labels()[1] = %q, want %q", got[1], "hey there")
	}
	// raw text keeps the base labels
	if got := p.Text(); got != "I hi" {
		t.Errorf("Text() = %q, want %q", got, "I hi")
	}

	p.SetLastEntryRelated(1)
	if got := p.Labels()[1]; got != "hello" {
		t.Errorf("after new related choice label = %q, want hello", got)
	}
	last, _ := p.Last()
	if _, ok := last.Variant(); ok {
		t.Error("variant should be cleared by a new related choice")
	}

	p.SetLastEntryRelated(2)
	p.SetLastEntryVariant(1)
	p.ClearLastEntryVariant()
	if got := p.Labels()[1]; got != "hey" {
		t.Errorf("after ClearLastEntryVariant label = %q, want hey", got)
	}
}

func TestSpeak(t *testing.T) {
	t.Run("success clears", func(t *testing.T) {
		p := New(testSystem())
		_ = p.AddEntry(appendButton("hi"))
		_ = p.AddEntry(system.Button{Label: "ty", Pronunciation: "thank you", Action: system.ActionAppend})

		sink := &testutil.RecordingSink{}
		if err := p.Speak(context.Background(), sink); err != nil {
			t.Fatalf("Speak() error = %v", err)
		}
		if p.Len() != 0 {
			t.Errorf("Len() = %d after successful speech, want 0", p.Len())
		}
		if got := sink.Utterances(); len(got) != 1 || got[0] != "hi thank you" {
			t.Errorf("spoken = %v", got)
		}
	})

	t.Run("failure keeps buffer", func(t *testing.T) {
		p := New(testSystem())
		_ = p.AddEntry(appendButton("hi"))
		_ = p.AddEntry(appendButton("there"))
		before := p.Entries()

		boom := errors.New("device busy")
		err := p.Speak(context.Background(), &testutil.RecordingSink{Err: boom})
		var speechErr *SpeechError
		if !errors.As(err, &speechErr) {
			t.Fatalf("Speak() error = %v, want *SpeechError", err)
		}
		if !errors.Is(err, boom) {
			t.Error("SpeechError should wrap the sink error")
		}
		if speechErr.Text != "hi there" {
			t.Errorf("SpeechError.Text = %q", speechErr.Text)
		}
		after := p.Entries()
		if len(after) != len(before) {
			t.Fatalf("Len() = %d, want %d", len(after), len(before))
		}
		for i := range before {
			if after[i] != before[i] {
				t.Errorf("entry %d changed: %v -> %v", i, before[i], after[i])
			}
		}
	})

	t.Run("nil sink", func(t *testing.T) {
		p := New(nil)
		_ = p.AddEntry(appendButton("hi"))
		if err := p.Speak(context.Background(), nil); err == nil {
			t.Error("expected an error without a sink")
		}
		if p.Len() != 1 {
			t.Error("buffer should be kept")
		}
	})
}

func TestApplyButton(t *testing.T) {
	ctx := context.Background()
	sink := &testutil.RecordingSink{}
	p := New(testSystem())

	if err := p.ApplyButton(ctx, appendButton("hi"), sink); err != nil {
		t.Fatal(err)
	}
	if err := p.ApplyButton(ctx, appendButton("you"), sink); err != nil {
		t.Fatal(err)
	}
	if err := p.ApplyButton(ctx, system.Button{Label: "yes", Pronunciation: "yes please", Action: system.ActionSpeak}, sink); err != nil {
		t.Fatal(err)
	}
	if p.Len() != 2 {
		t.Errorf("Speak action should not touch the buffer, Len() = %d", p.Len())
	}

	if err := p.ApplyButton(ctx, system.Button{Label: "undo", Action: system.ActionRemoveLast}, sink); err != nil {
		t.Fatal(err)
	}
	if got := p.Text(); got != "hi" {
		t.Errorf("Text() = %q, want hi", got)
	}

	if err := p.ApplyButton(ctx, system.Button{Label: "say", Action: system.ActionSpeakBuiltPhrase}, sink); err != nil {
		t.Fatal(err)
	}
	if p.Len() != 0 {
		t.Errorf("SpeakBuiltPhrase should flush, Len() = %d", p.Len())
	}

	want := []string{"yes please", "hi"}
	got := sink.Utterances()
	if len(got) != len(want) {
		t.Fatalf("spoken = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spoken[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	var contractErr *ContractError
	if err := p.ApplyButton(ctx, system.NewButton("raw"), sink); !errors.As(err, &contractErr) {
		t.Errorf("ApplyButton(default action) error = %v, want *ContractError", err)
	}
	if err := p.ApplyButton(ctx, system.Button{Label: "?", Action: system.Action(42)}, sink); !errors.Is(err, system.ErrUnknownAction) {
		t.Errorf("ApplyButton(unknown) error = %v, want ErrUnknownAction", err)
	}
}
