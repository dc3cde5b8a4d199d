package panel

import (
	"fmt"

	"codeberg.org/snonux/sgs/internal/system"
)

// ContractError reports a caller bug, such as appending a button whose action
// is not Append. It is never caused by user input.
type ContractError struct {
	Op     string
	Action system.Action
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("panel: %s does not accept action %s", e.Op, e.Action)
}

// SpeechError reports a failed speech attempt. The buffer is left untouched
// so the phrase can be spoken again.
type SpeechError struct {
	Text string
	Err  error
}

func (e *SpeechError) Error() string {
	return fmt.Sprintf("failed to speak %q: %v", e.Text, e.Err)
}

func (e *SpeechError) Unwrap() error { return e.Err }
