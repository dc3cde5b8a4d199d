package system

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Action selects what pressing a button does.
type Action int

const (
	// ActionDefault defers to the containing folder: buttons in an
	// immediate folder speak, all others append to the phrase.
	ActionDefault Action = iota
	ActionSpeak
	ActionAppend
	ActionRemoveLast
	ActionSpeakBuiltPhrase
)

var actionNames = map[Action]string{
	ActionDefault:          "",
	ActionSpeak:            "Speak",
	ActionAppend:           "Append",
	ActionRemoveLast:       "RemoveLast",
	ActionSpeakBuiltPhrase: "SpeakBuiltPhrase",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		if name == "" {
			return "Default"
		}
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps a configuration name to an Action. The empty string is
// ActionDefault.
func ParseAction(name string) (Action, error) {
	for action, n := range actionNames {
		if n == name {
			return action, nil
		}
	}
	return ActionDefault, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	name, ok := actionNames[a]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	action, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// UnmarshalYAML decodes the same names as the JSON form.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	return a.UnmarshalText([]byte(value.Value))
}

// MarshalYAML encodes the action by name.
func (a Action) MarshalYAML() (interface{}, error) {
	text, err := a.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}
