package system

import (
	"errors"
	"fmt"
)

var (
	ErrNoFolders           = errors.New("system defines no folders")
	ErrNoDefaultFolder     = errors.New("no default folder defined")
	ErrMultipleDefaults    = errors.New("more than one default folder")
	ErrEmptyGrid           = errors.New("rows and cols must be positive")
	ErrButtonCount         = errors.New("button count is not a positive multiple of rows*cols")
	ErrDuplicateFolder     = errors.New("duplicate folder id")
	ErrUnknownTopLevel     = errors.New("unknown top-level folder")
	ErrUnknownFolderTarget = errors.New("button navigates to unknown folder")
	ErrUnknownAction       = errors.New("unknown action")
	ErrUnknownFormat       = errors.New("unknown system format")
	ErrMissingSetting      = errors.New("missing system setting")
	ErrFolderMode          = errors.New("folder mode must be append or immediate")
)

// ParseError reports a document that could not be decoded at all.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s system: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports a system that cannot be used. Source is the file the
// system came from, if any.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid system: %v", e.Err)
	}
	return fmt.Sprintf("invalid system %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
