package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestDirectory creates a temporary directory structure for testing
func CreateTestDirectory(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	dirs := []string{
		"systems",
		"output",
		"cache",
	}

	for _, dir := range dirs {
		path := filepath.Join(tempDir, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			t.Fatalf("Failed to create test directory %s: %v", path, err)
		}
	}

	return tempDir
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// TinySystemJSON is a minimal valid system: one folder with two buttons, a
// second folder reached from the first and a two-button hotbar.
const TinySystemJSON = `{
    "name": "Tiny",
    "description": "test system",
    "folders": [
        {
            "name": "Home",
            "toplevel": true,
            "rows": 1,
            "cols": 2,
            "buttons": [{"label": "hi"}, {"label": "there"}, {"label": "More", "folder": "Home::More"}, null]
        },
        {
            "name": "More",
            "id": "Home::More",
            "immediate": true,
            "rows": 1,
            "cols": 2,
            "buttons": [{"label": "yes", "pronunciation": "yes please"}, {"label": "Say", "action": "SpeakBuiltPhrase"}]
        }
    ],
    "hotbar": {"rows": 1, "cols": 2, "buttons": [{"label": "the"}, {"label": "a"}, {"label": "Undo", "action": "RemoveLast"}]},
    "related": {"hi": [{"label": "hi"}, {"label": "hello"}, {"label": "hey"}]},
    "variants": {"hey": [{"label": "hey"}, {"label": "hey there"}]}
}`

// WriteSystemFile writes a system document into dir and returns its path.
func WriteSystemFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	CreateTestFile(t, path, []byte(content))
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
