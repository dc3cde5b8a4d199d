package system

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// A text system lists its settings first and then its folders:
//
//	name = "Example"
//	description = "A small system."
//	default = "Home"
//	rows = 2
//	cols = 3
//
//	folder "Home" (append) "I" "you" "want" "go" "stop" "more";
//	folder "Quick" (immediate) "yes" "no" "hello" "thanks" "help" "bye";
//
// Every folder uses the system's rows and cols. The folder named by default
// is shown at startup.
var textSettings = []string{"name", "description", "default", "rows", "cols"}

type textParser struct {
	s        scanner.Scanner
	tok      rune
	err      error
	settings map[string]string
}

func decodeText(data []byte) (*System, error) {
	p := &textParser{settings: make(map[string]string)}
	p.s.Init(bytes.NewReader(data))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("line %d: %s", s.Position.Line, msg)
		}
	}
	p.next()

	sys := &System{}
	for p.tok != scanner.EOF && p.err == nil {
		if p.tok != scanner.Ident {
			return nil, p.errorf("expected a setting or a folder, got %s", p.s.TokenText())
		}
		if p.s.TokenText() == "folder" {
			if err := p.require("default", "rows", "cols"); err != nil {
				return nil, err
			}
			f, err := p.folder()
			if err != nil {
				return nil, err
			}
			sys.Folders = append(sys.Folders, f)
			continue
		}
		if len(sys.Folders) > 0 {
			return nil, p.errorf("setting %q after the first folder", p.s.TokenText())
		}
		if err := p.setting(); err != nil {
			return nil, err
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := p.require(textSettings...); err != nil {
		return nil, err
	}

	sys.Name = p.settings["name"]
	sys.Description = p.settings["description"]
	return sys, nil
}

func (p *textParser) next() {
	p.tok = p.s.Scan()
}

func (p *textParser) errorf(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	return fmt.Errorf("line %d: %s", p.s.Position.Line, fmt.Sprintf(format, args...))
}

func (p *textParser) require(keys ...string) error {
	for _, key := range keys {
		if _, ok := p.settings[key]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSetting, key)
		}
	}
	return nil
}

// setting parses `key = "text"` or `key = 3`.
func (p *textParser) setting() error {
	key := p.s.TokenText()
	p.next()
	if p.tok != '=' {
		return p.errorf("expected = after %q", key)
	}
	p.next()

	var value string
	switch p.tok {
	case scanner.String:
		value = p.unquote()
	case scanner.Int:
		value = p.s.TokenText()
	default:
		return p.errorf("expected a value for %q, got %s", key, p.s.TokenText())
	}
	if key == "rows" || key == "cols" {
		if _, err := strconv.Atoi(value); err != nil {
			return p.errorf("%s must be a whole number, got %q", key, value)
		}
	}
	p.settings[key] = value
	p.next()
	return nil
}

// folder parses `folder "Name" (append|immediate) "label" ... ;`.
func (p *textParser) folder() (*Folder, error) {
	p.next()
	if p.tok != scanner.String {
		return nil, p.errorf("expected a folder name, got %s", p.s.TokenText())
	}
	name := p.unquote()
	p.next()

	if p.tok != '(' {
		return nil, p.errorf("expected ( after folder %q", name)
	}
	line := p.s.Position.Line
	p.next()
	var mode strings.Builder
	for p.tok != ')' && p.tok != ';' && p.tok != scanner.EOF {
		mode.WriteString(p.s.TokenText())
		p.next()
	}
	if p.tok != ')' {
		return nil, p.errorf("expected ) after the mode of folder %q", name)
	}
	p.next()

	var immediate bool
	switch mode.String() {
	case "append":
	case "immediate":
		immediate = true
	default:
		return nil, fmt.Errorf("line %d: folder %q: %w, got %q", line, name, ErrFolderMode, mode.String())
	}

	var buttons []*Button
	for p.tok == scanner.String {
		b := NewButton(p.unquote())
		buttons = append(buttons, &b)
		p.next()
	}
	if p.tok != ';' {
		return nil, p.errorf("expected ; to end folder %q, got %s", name, p.s.TokenText())
	}
	p.next()

	rows, _ := strconv.Atoi(p.settings["rows"])
	cols, _ := strconv.Atoi(p.settings["cols"])
	return &Folder{
		Name:      name,
		Default:   name == p.settings["default"],
		Immediate: immediate,
		Rows:      rows,
		Cols:      cols,
		Buttons:   buttons,
	}, nil
}

func (p *textParser) unquote() string {
	text := p.s.TokenText()
	s, err := strconv.Unquote(text)
	if err != nil {
		return strings.Trim(text, `"`)
	}
	return s
}
