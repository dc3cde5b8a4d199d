package system

import "testing"

func entrySystem() *System {
	return &System{
		Related: map[string][]Button{
			"hello": {NewButton("hello"), NewButton("hi"), NewButton("hey")},
			"big":   {NewButton("big"), NewButton("large")},
		},
		Variants: map[string][]Button{
			"hey":   {NewButton("hey"), {Label: "hey there", Pronunciation: "hey there friend"}},
			"hello": {NewButton("hello"), NewButton("hellos")},
		},
	}
}

func TestEntryResolve(t *testing.T) {
	sys := entrySystem()

	tests := []struct {
		name    string
		label   string
		related int
		variant int
		setRel  bool
		setVar  bool
		want    string
	}{
		{name: "no choices", label: "hello", want: "hello"},
		{name: "related only", label: "hello", related: 2, setRel: true, want: "hey"},
		{name: "variant keyed by related label", label: "hello", related: 2, variant: 1, setRel: true, setVar: true, want: "hey there"},
		{name: "variant on base label", label: "hello", variant: 1, setVar: true, want: "hellos"},
		{name: "related out of range", label: "big", related: 5, setRel: true, want: "big"},
		{name: "negative related", label: "big", related: -1, setRel: true, want: "big"},
		{name: "variant out of range", label: "hello", variant: 9, setVar: true, want: "hello"},
		{name: "no table for label", label: "cat", related: 1, variant: 1, setRel: true, setVar: true, want: "cat"},
		{name: "variant missing for related word", label: "big", related: 1, variant: 1, setRel: true, setVar: true, want: "large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry(NewButton(tt.label))
			if tt.setRel {
				e.SetRelated(tt.related)
			}
			if tt.setVar {
				e.SetVariant(tt.variant)
			}
			if got := e.Label(sys); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntryPronounceableText(t *testing.T) {
	sys := entrySystem()
	e := NewEntry(NewButton("hello"))
	e.SetRelated(2)
	e.SetVariant(1)
	if got := e.PronounceableText(sys); got != "hey there friend" {
		t.Errorf("PronounceableText() = %q, want %q", got, "hey there friend")
	}

	plain := NewEntry(Button{Label: "ty", Pronunciation: "thank you"})
	if got := plain.PronounceableText(sys); got != "thank you" {
		t.Errorf("PronounceableText() = %q, want %q", got, "thank you")
	}
}

func TestEntrySetRelatedClearsVariant(t *testing.T) {
	e := NewEntry(NewButton("hello"))
	e.SetVariant(1)
	e.SetRelated(1)
	if _, ok := e.Variant(); ok {
		t.Error("SetRelated should drop the variant choice")
	}
	if got := e.RelatedIndex(); got != 1 {
		t.Errorf("RelatedIndex() = %d, want 1", got)
	}
	e.SetVariant(0)
	e.ClearVariant()
	if _, ok := e.Variant(); ok {
		t.Error("ClearVariant should drop the variant choice")
	}
}

func TestEntryChoices(t *testing.T) {
	sys := entrySystem()
	e := NewEntry(NewButton("hello"))
	if got := len(e.RelatedChoices(sys)); got != 3 {
		t.Errorf("RelatedChoices() = %d entries, want 3", got)
	}
	e.SetRelated(2)
	if got := e.RelatedWordLabel(sys); got != "hey" {
		t.Errorf("RelatedWordLabel() = %q, want hey", got)
	}
	choices := e.VariantChoices(sys)
	if len(choices) != 2 || choices[1].Label != "hey there" {
		t.Errorf("VariantChoices() = %v", choices)
	}
	if e.Label(nil) != "hello" {
		t.Error("nil system should resolve to the template")
	}
}
