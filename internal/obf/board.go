package obf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
)

// Format is the OBF version written by this package.
const Format = "open-board-0.1"

// Board is one OBF board.
type Board struct {
	Format          string   `json:"format"`
	ID              string   `json:"id"`
	Locale          string   `json:"locale,omitempty"`
	URL             string   `json:"url,omitempty"`
	Name            string   `json:"name,omitempty"`
	DescriptionHTML string   `json:"description_html,omitempty"`
	Buttons         []Button `json:"buttons"`
	Grid            Grid     `json:"grid"`
	Images          []Image  `json:"images,omitempty"`

	TopLevel  bool `json:"ext_sgs_toplevel,omitempty"`
	Default   bool `json:"ext_sgs_default,omitempty"`
	Immediate bool `json:"ext_sgs_immediate,omitempty"`
	Hotbar    bool `json:"ext_sgs_hotbar,omitempty"`
	PageRows  int  `json:"ext_sgs_page_rows,omitempty"`
	// SystemName is set on the root board of a package.
	SystemName string `json:"ext_sgs_system_name,omitempty"`
}

// Button is one OBF button.
type Button struct {
	ID              string     `json:"id"`
	Label           string     `json:"label,omitempty"`
	ImageID         string     `json:"image_id,omitempty"`
	Vocalization    string     `json:"vocalization,omitempty"`
	BorderColor     string     `json:"border_color,omitempty"`
	BackgroundColor string     `json:"background_color,omitempty"`
	Action          string     `json:"action,omitempty"`
	LoadBoard       *LoadBoard `json:"load_board,omitempty"`

	SGSAction string `json:"ext_sgs_action,omitempty"`
	Parent    string `json:"ext_sgs_parent,omitempty"`
}

// LoadBoard links a button to another board.
type LoadBoard struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Grid places buttons by id. A nil cell is empty.
type Grid struct {
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Order   [][]*string `json:"order"`
}

// Image is an image referenced by buttons.
type Image struct {
	ID          string `json:"id"`
	URL         string `json:"url,omitempty"`
	Path        string `json:"path,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Cell returns the button id at row, col, or "" for an empty or missing
// cell.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Order) {
		return ""
	}
	if col < 0 || col >= len(g.Order[row]) || g.Order[row][col] == nil {
		return ""
	}
	return *g.Order[row][col]
}

// DecodeBoard parses a board. Comments and trailing commas are tolerated.
func DecodeBoard(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var b Board
	if err := json.Unmarshal(jsonc.ToJSON(data), &b); err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}
	return &b, nil
}

// EncodeBoard writes b as indented JSON.
func EncodeBoard(w io.Writer, b *Board) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// ReadBoard reads a single .obf file without converting it.
func ReadBoard(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board: %w", err)
	}
	defer f.Close()
	return DecodeBoard(f)
}

func (b *Board) button(id string) (Button, bool) {
	for _, btn := range b.Buttons {
		if btn.ID == id {
			return btn, true
		}
	}
	return Button{}, false
}

func (b *Board) image(id string) (Image, bool) {
	for _, img := range b.Images {
		if img.ID == id {
			return img, true
		}
	}
	return Image{}, false
}
