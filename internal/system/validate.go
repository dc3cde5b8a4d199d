package system

import (
	"errors"
	"fmt"
)

// Validate checks the structural rules a system must satisfy before the
// board can run on it. All problems are reported together.
func (s *System) Validate() error {
	if len(s.Folders) == 0 {
		return ErrNoFolders
	}

	var errs []error
	ids := make(map[string]bool, len(s.Folders))
	selector := make(map[string]bool, len(s.Folders))
	for i, f := range s.Folders {
		if f == nil {
			errs = append(errs, fmt.Errorf("folder %d: missing definition", i))
			continue
		}
		if ids[f.Key()] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateFolder, f.Key()))
		}
		ids[f.Key()] = true
		selector[f.Key()] = s.inSelector(f)
		if err := f.validateGrid(); err != nil {
			errs = append(errs, fmt.Errorf("folder %q: %w", f.Key(), err))
		}
	}

	if len(errs) > 0 && hasNil(s.Folders) {
		return errors.Join(errs...)
	}

	if _, err := s.DefaultFolder(); err != nil {
		errs = append(errs, err)
	}

	for _, f := range s.Folders {
		if f == nil {
			continue
		}
		if top := TopLevelID(f.Key()); !ids[top] || (top != f.Key() && !selector[top]) {
			errs = append(errs, fmt.Errorf("folder %q: %w: %q", f.Key(), ErrUnknownTopLevel, top))
		}
		for _, b := range f.Buttons {
			if b != nil && b.Navigates() && !ids[b.Folder] {
				errs = append(errs, fmt.Errorf("folder %q: %w: %q", f.Key(), ErrUnknownFolderTarget, b.Folder))
			}
		}
	}

	if len(s.Hotbar.Buttons) > 0 && (s.Hotbar.Rows <= 0 || s.Hotbar.Cols <= 0) {
		errs = append(errs, fmt.Errorf("hotbar: %w", ErrEmptyGrid))
	}
	for _, b := range s.Hotbar.Buttons {
		if b != nil && b.Navigates() && !ids[b.Folder] {
			errs = append(errs, fmt.Errorf("hotbar: %w: %q", ErrUnknownFolderTarget, b.Folder))
		}
	}

	return errors.Join(errs...)
}

func (f *Folder) validateGrid() error {
	if f.Rows <= 0 || f.Cols <= 0 {
		return ErrEmptyGrid
	}
	n := len(f.Buttons)
	if n == 0 || n%f.PageSize() != 0 {
		return fmt.Errorf("%w: %d buttons for a %dx%d grid", ErrButtonCount, n, f.Rows, f.Cols)
	}
	return nil
}

func hasNil(folders []*Folder) bool {
	for _, f := range folders {
		if f == nil {
			return true
		}
	}
	return false
}
