package system

import "fmt"

// System is the whole board definition.
type System struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Folders     []*Folder `json:"folders" yaml:"folders"`
	Hotbar      Hotbar    `json:"hotbar" yaml:"hotbar"`
	// Variants maps a label to alternate forms of the word (tense, plural).
	Variants map[string][]Button `json:"variants,omitempty" yaml:"variants,omitempty"`
	// Related maps a label to semantically related replacement words.
	Related map[string][]Button `json:"related,omitempty" yaml:"related,omitempty"`
}

// Folder returns the folder at index i.
func (s *System) Folder(i int) (*Folder, bool) {
	if i < 0 || i >= len(s.Folders) {
		return nil, false
	}
	return s.Folders[i], true
}

// FolderIndex finds a folder by id.
func (s *System) FolderIndex(id string) (int, bool) {
	for i, f := range s.Folders {
		if f.Key() == id {
			return i, true
		}
	}
	return 0, false
}

// DefaultFolder returns the index of the startup folder: the folder marked
// default, or else the first top-level folder.
func (s *System) DefaultFolder() (int, error) {
	found := -1
	for i, f := range s.Folders {
		if !f.Default {
			continue
		}
		if found >= 0 {
			return 0, fmt.Errorf("%w: %q and %q", ErrMultipleDefaults, s.Folders[found].Key(), f.Key())
		}
		found = i
	}
	if found >= 0 {
		return found, nil
	}
	for i, f := range s.Folders {
		if f.TopLevel {
			return i, nil
		}
	}
	return 0, ErrNoDefaultFolder
}

// TopLevelFolder returns the index of the top-level ancestor of the folder
// with the given id. The ancestor of a hierarchical id must be a selector
// folder.
func (s *System) TopLevelFolder(id string) (int, error) {
	top := TopLevelID(id)
	i, ok := s.FolderIndex(top)
	if !ok || (top != id && !s.inSelector(s.Folders[i])) {
		return 0, &ConfigError{Err: fmt.Errorf("%w: %q (from %q)", ErrUnknownTopLevel, top, id)}
	}
	return i, nil
}

// inSelector reports whether f is listed by SelectorFolders.
func (s *System) inSelector(f *Folder) bool {
	return f.TopLevel || !s.hasTopLevel()
}

func (s *System) hasTopLevel() bool {
	for _, f := range s.Folders {
		if f != nil && f.TopLevel {
			return true
		}
	}
	return false
}

// SelectorFolders lists the folder indices shown in the folder selector.
// Systems that flag no folder as top-level show every folder.
func (s *System) SelectorFolders() []int {
	var top, all []int
	for i, f := range s.Folders {
		all = append(all, i)
		if f.TopLevel {
			top = append(top, i)
		}
	}
	if len(top) == 0 {
		return all
	}
	return top
}

// ButtonCount counts the non-empty slots across all folders and the hotbar.
func (s *System) ButtonCount() int {
	n := 0
	count := func(buttons []*Button) {
		for _, b := range buttons {
			if b != nil {
				n++
			}
		}
	}
	for _, f := range s.Folders {
		count(f.Buttons)
	}
	count(s.Hotbar.Buttons)
	return n
}
