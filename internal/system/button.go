package system

// Button is an immutable template as stored in a Folder, the Hotbar or one of
// the variant/related tables. Buttons placed into a phrase are copied into an
// Entry first.
type Button struct {
	Label         string `json:"label" yaml:"label"`
	Pronunciation string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	Image         string `json:"image,omitempty" yaml:"image,omitempty"`
	// Folder is the id of the folder this button navigates to.
	Folder string `json:"folder,omitempty" yaml:"folder,omitempty"`
	// Parent is the id of the folder the button was generated for.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Action Action `json:"action,omitempty" yaml:"action,omitempty"`
}

// NewButton returns a plain button with only a label.
func NewButton(label string) Button {
	return Button{Label: label}
}

// PronounceableText is the text handed to speech: the pronunciation override
// when present, the label otherwise.
func (b Button) PronounceableText() string {
	if b.Pronunciation != "" {
		return b.Pronunciation
	}
	return b.Label
}

// Navigates reports whether pressing the button opens another folder instead
// of performing its action.
func (b Button) Navigates() bool {
	return b.Folder != ""
}
