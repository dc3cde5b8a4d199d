package system

// Entry is a Button copied into the phrase buffer. Besides the template
// fields it carries two per-instance choices: which related word replaces
// the base label, and which variant of the (possibly replaced) word is used.
//
// Both choices are looked up against the System on every call. An index with
// no matching table or outside its range silently resolves to the unreplaced
// button, since a table may change after the entry was created.
type Entry struct {
	// Button is the template copied at selection time.
	Button Button

	related *int
	variant *int
}

// NewEntry copies b into a fresh entry with no related or variant choice.
func NewEntry(b Button) Entry {
	return Entry{Button: b}
}

// Related returns the related-word index, if one was chosen.
func (e Entry) Related() (int, bool) {
	if e.related == nil {
		return 0, false
	}
	return *e.related, true
}

// Variant returns the variant index, if one was chosen.
func (e Entry) Variant() (int, bool) {
	if e.variant == nil {
		return 0, false
	}
	return *e.variant, true
}

// RelatedIndex returns the chosen related index or 0.
func (e Entry) RelatedIndex() int {
	i, _ := e.Related()
	return i
}

// VariantIndex returns the chosen variant index or 0.
func (e Entry) VariantIndex() int {
	i, _ := e.Variant()
	return i
}

// SetRelated chooses a related word. The variant choice is dropped because
// variants are keyed by the related word's label.
func (e *Entry) SetRelated(i int) {
	e.related = &i
	e.variant = nil
}

// SetVariant chooses a variant of the current related word.
func (e *Entry) SetVariant(i int) {
	e.variant = &i
}

// ClearVariant drops the variant choice.
func (e *Entry) ClearVariant() {
	e.variant = nil
}

// Resolve returns the button the entry currently stands for: the related
// word first (looked up by the entry's own label), then the variant (looked
// up by the label of that result).
func (e Entry) Resolve(sys *System) Button {
	btn := e.resolveRelated(sys)
	if e.variant == nil || sys == nil {
		return btn
	}
	return pick(sys.Variants[btn.Label], *e.variant, btn)
}

// Label is the resolved display label.
func (e Entry) Label(sys *System) string {
	return e.Resolve(sys).Label
}

// PronounceableText is the resolved text handed to speech.
func (e Entry) PronounceableText(sys *System) string {
	return e.Resolve(sys).PronounceableText()
}

// RelatedWordLabel is the label after related-word substitution only.
func (e Entry) RelatedWordLabel(sys *System) string {
	return e.resolveRelated(sys).Label
}

// RelatedChoices lists the related words available for this entry.
func (e Entry) RelatedChoices(sys *System) []Button {
	if sys == nil {
		return nil
	}
	return sys.Related[e.Button.Label]
}

// VariantChoices lists the variants of the entry's current related word.
func (e Entry) VariantChoices(sys *System) []Button {
	if sys == nil {
		return nil
	}
	return sys.Variants[e.RelatedWordLabel(sys)]
}

func (e Entry) resolveRelated(sys *System) Button {
	if e.related == nil || sys == nil {
		return e.Button
	}
	return pick(sys.Related[e.Button.Label], *e.related, e.Button)
}

func pick(choices []Button, i int, fallback Button) Button {
	if i < 0 || i >= len(choices) {
		return fallback
	}
	return choices[i]
}
