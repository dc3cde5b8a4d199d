package system

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

const (
	boardFormatName    = "sgs-board"
	boardFormatVersion = 0
)

// boardDocument is the "sgs-board" layout document. Its layouts are folders
// and its buttons refer to images by name through the images table.
type boardDocument struct {
	Format        string            `json:"format"`
	FormatVersion int               `json:"format_version"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Images        map[string]string `json:"images"`
	Layouts       []*Folder         `json:"layouts"`
}

func decodeBoard(data []byte) (*System, error) {
	var doc boardDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, err
	}
	if doc.Format != "" && doc.Format != boardFormatName {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, doc.Format)
	}
	if doc.FormatVersion != boardFormatVersion {
		return nil, fmt.Errorf("unsupported %s version %d", boardFormatName, doc.FormatVersion)
	}

	for _, layout := range doc.Layouts {
		if layout == nil {
			continue
		}
		for _, b := range layout.Buttons {
			if b != nil {
				b.Image = doc.imageLocation(b.Image)
			}
		}
	}
	return &System{
		Name:        doc.Name,
		Description: doc.Description,
		Folders:     doc.Layouts,
	}, nil
}

// imageLocation maps an image name to its path. Names missing from the
// table are taken as paths already.
func (d *boardDocument) imageLocation(name string) string {
	if path, ok := d.Images[name]; ok {
		return path
	}
	return name
}

// isBoardDocument reports whether a JSON document is an sgs-board layout
// document rather than a system.
func isBoardDocument(data []byte) bool {
	var head struct {
		Format  string          `json:"format"`
		Layouts json.RawMessage `json:"layouts"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &head); err != nil {
		return false
	}
	return head.Format == boardFormatName || head.Layouts != nil
}
