package system

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format names a system document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatBoard is the "sgs-board" JSON document with named images and
	// layouts.
	FormatBoard Format = "sgs-board"
	// FormatText is the plain text system language.
	FormatText Format = "text"
)

//go:embed default_system.json
var defaultSystem []byte

// FormatForPath picks the document format from a file extension. Anything
// unknown is read as JSON with comments allowed.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".sgs":
		return FormatText
	case ".board":
		return FormatBoard
	default:
		return FormatJSON
	}
}

// DetectFormat is FormatForPath, except that JSON files holding an
// sgs-board document are recognised by their content.
func DetectFormat(path string, data []byte) Format {
	format := FormatForPath(path)
	if format == FormatJSON && isBoardDocument(data) {
		return FormatBoard
	}
	return format
}

// Load decodes and validates a system document.
func Load(data []byte, format Format) (*System, error) {
	sys, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	sys.normalize()
	if err := sys.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return sys, nil
}

// LoadFile reads a system from disk.
func LoadFile(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system file: %w", err)
	}
	sys, err := Load(data, DetectFormat(path, data))
	if err != nil {
		if cfgErr, ok := err.(*ConfigError); ok {
			cfgErr.Source = path
		}
		return nil, err
	}
	return sys, nil
}

// Default returns the system bundled with the binary.
func Default() (*System, error) {
	return Load(defaultSystem, FormatJSON)
}

// Encode writes sys in the given format.
func Encode(sys *System, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "    ")
		if err := enc.Encode(sys); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(sys)
	default:
		return nil, fmt.Errorf("%w: cannot write %q", ErrUnknownFormat, format)
	}
}

func decode(data []byte, format Format) (*System, error) {
	sys := &System{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(jsonc.ToJSON(data), sys)
	case FormatYAML:
		err = yaml.Unmarshal(data, sys)
	case FormatBoard:
		sys, err = decodeBoard(data)
	case FormatText:
		sys, err = decodeText(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return sys, nil
}

// normalize fills in ids that the document left implicit.
func (s *System) normalize() {
	for _, f := range s.Folders {
		if f != nil && f.ID == "" {
			f.ID = f.Name
		}
	}
}
