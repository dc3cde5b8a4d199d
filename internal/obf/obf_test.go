package obf

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/sgs/internal/system"
	"codeberg.org/snonux/sgs/internal/testutil"
)

const exampleBoard = `{
    "format": "open-board-0.1",
    "id": "1",
    "locale": "en",
    "url": "https://example.com/boards/123",
    "name": "Example Board",
    "description_html": "This is just a <b>simple</b> example board I put together.",
    "buttons": [
        {
            "id": "1",
            "image_id": "2",
            "label": "happy",
            "border_color": "rgb(0, 0, 55)",
            "background_color": "rgba(200, 255, 255, 0.2)"
        },
        {
            "id": "2",
            "label": "drinks",
            "image_id": "1",
            "load_board": {"id": "elsewhere"}
        }
    ],
    "grid": {
        "rows": 1,
        "columns": 2,
        "order": [
            ["1","2"]
        ]
    },
    "images": [
        {
            "id": "1",
            "url": "https://example.com/happy.png",
            "width": 1024,
            "height": 768,
            "content_type": "image/png"
        }
    ]
}`

func TestDecodeBoard(t *testing.T) {
	b, err := DecodeBoard(strings.NewReader(exampleBoard))
	require.NoError(t, err)

	require.Equal(t, Format, b.Format)
	require.Equal(t, "1", b.ID)
	require.Equal(t, "en", b.Locale)
	require.Equal(t, "https://example.com/boards/123", b.URL)
	require.Equal(t, "rgba(200, 255, 255, 0.2)", b.Buttons[0].BackgroundColor)
	require.Empty(t, b.Buttons[1].BackgroundColor)
	require.Equal(t, "1", b.Grid.Cell(0, 0))
	require.Equal(t, "2", b.Grid.Cell(0, 1))
	require.Equal(t, "", b.Grid.Cell(1, 0))
	require.Equal(t, "https://example.com/happy.png", b.Images[0].URL)

	_, err = DecodeBoard(strings.NewReader("{"))
	require.ErrorContains(t, err, "failed to parse board")
}

func TestReadBoardFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example.obf")
	testutil.CreateTestFile(t, path, []byte(exampleBoard))

	sys, err := ReadBoardFile(path, nil)
	require.NoError(t, err)
	require.Equal(t, "Example Board", sys.Name)
	require.Len(t, sys.Folders, 1)

	f := sys.Folders[0]
	require.True(t, f.TopLevel)
	require.Equal(t, 1, f.Rows)
	require.Equal(t, 2, f.Cols)
	require.Equal(t, "happy", f.Buttons[0].Label)
	require.Empty(t, f.Buttons[0].Image)
	require.Equal(t, "drinks", f.Buttons[1].Label)
	require.Equal(t, "https://example.com/happy.png", f.Buttons[1].Image)
	require.Empty(t, f.Buttons[1].Folder, "dangling link is dropped")
}

func TestFolderFromBoardErrors(t *testing.T) {
	_, err := FolderFromBoard(&Board{ID: "x"})
	require.True(t, errors.Is(err, ErrEmptyBoard))
}

func TestBoardFromFolder(t *testing.T) {
	say := system.Button{Label: "Say", Action: system.ActionSpeakBuiltPhrase}
	undo := system.Button{Label: "Undo", Action: system.ActionRemoveLast}
	yes := system.Button{Label: "yes", Pronunciation: "yes please", Image: "yes.png"}
	f := &system.Folder{
		Name: "Quick", ID: "Quick", Immediate: true, Rows: 1, Cols: 2,
		Buttons: []*system.Button{&say, nil, &undo, &yes},
	}

	b := BoardFromFolder(f)
	require.Equal(t, 2, b.Grid.Rows)
	require.Equal(t, 1, b.PageRows)
	require.True(t, b.Immediate)
	require.Len(t, b.Buttons, 3)
	require.Equal(t, actionSpeak, b.Buttons[0].Action)
	require.Equal(t, "SpeakBuiltPhrase", b.Buttons[0].SGSAction)
	require.Equal(t, actionBackspace, b.Buttons[1].Action)
	require.Equal(t, "yes please", b.Buttons[2].Vocalization)
	require.Len(t, b.Images, 1)
	require.Equal(t, "", b.Grid.Cell(0, 1))

	back, err := FolderFromBoard(b)
	require.NoError(t, err)
	require.Equal(t, 1, back.Rows)
	require.Len(t, back.Buttons, 4)
	require.Nil(t, back.Buttons[1])
	require.Equal(t, say, *back.Buttons[0])
	require.Equal(t, undo, *back.Buttons[2])
	require.Equal(t, yes, *back.Buttons[3])
}

func TestOBZRoundTrip(t *testing.T) {
	sys, err := system.Load([]byte(testutil.TinySystemJSON), system.FormatJSON)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tiny.obz")
	require.NoError(t, WriteOBZ(sys, path))

	got, err := ReadOBZ(path, nil)
	require.NoError(t, err)
	require.Equal(t, "Tiny", got.Name)
	require.Equal(t, "test system", got.Description)
	require.Len(t, got.Folders, len(sys.Folders))

	for _, want := range sys.Folders {
		i, ok := got.FolderIndex(want.Key())
		require.True(t, ok, want.Key())
		f := got.Folders[i]
		require.Equal(t, want.Name, f.Name)
		require.Equal(t, want.TopLevel, f.TopLevel)
		require.Equal(t, want.Immediate, f.Immediate)
		require.Equal(t, want.Rows, f.Rows)
		require.Equal(t, want.Cols, f.Cols)
		require.Equal(t, want.Buttons, f.Buttons)
	}
	require.Equal(t, sys.Hotbar, got.Hotbar)
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
}

func TestReadOBZForeign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.obz")
	writeZip(t, path, map[string]string{
		"manifest.json": `{"format":"open-board-0.1","root":"boards/a.obf",
			"paths":{"boards":{"a":"boards/a.obf","b":"boards/b.obf"}}}`,
		"boards/a.obf": `{"format":"open-board-0.1","id":"a","name":"Start",
			"buttons":[{"id":"1","label":"More","load_board":{"path":"boards/b.obf"}},
			           {"id":"2","label":"Lost","load_board":{"id":"zzz"}}],
			"grid":{"rows":1,"columns":2,"order":[["1","2"]]}}`,
		"boards/b.obf": `{"format":"open-board-0.1","id":"b","name":"More",
			"buttons":[{"id":"1","label":"cake"}],
			"grid":{"rows":1,"columns":1,"order":[["1"]]}}`,
	})

	sys, err := ReadOBZ(path, nil)
	require.NoError(t, err)
	require.Equal(t, "Start", sys.Name)

	i, err := sys.DefaultFolder()
	require.NoError(t, err)
	start := sys.Folders[i]
	require.Equal(t, "a", start.Key())
	require.True(t, start.TopLevel)
	require.Equal(t, "b", start.Buttons[0].Folder)
	require.Empty(t, start.Buttons[1].Folder)
}

func TestReadOBZErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadOBZ(filepath.Join(dir, "missing.obz"), nil)
	require.ErrorContains(t, err, "failed to open package")

	noManifest := filepath.Join(dir, "nomanifest.obz")
	writeZip(t, noManifest, map[string]string{"x.txt": "x"})
	_, err = ReadOBZ(noManifest, nil)
	require.ErrorContains(t, err, "no manifest")

	missingBoard := filepath.Join(dir, "missingboard.obz")
	writeZip(t, missingBoard, map[string]string{
		"manifest.json": `{"root":"boards/a.obf","paths":{"boards":{"a":"boards/a.obf"}}}`,
	})
	_, err = ReadOBZ(missingBoard, nil)
	require.ErrorContains(t, err, "boards/a.obf")
}
