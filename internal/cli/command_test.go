package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sgs/internal/board"
	"codeberg.org/snonux/sgs/internal/system"
	"codeberg.org/snonux/sgs/internal/testutil"
)

// runCLI executes the root command with args and returns everything it
// printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	color.NoColor = true
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	flags := NewFlags()
	cmd := CreateRootCommand(flags)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tinySystem(t *testing.T) string {
	t.Helper()
	return testutil.WriteSystemFile(t, t.TempDir(), "tiny.json", testutil.TinySystemJSON)
}

func TestCreateRootCommand(t *testing.T) {
	viper.Reset()
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "sgs" {
		t.Errorf("Expected Use to be 'sgs', got %s", cmd.Use)
	}

	// Test that flags are set up
	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"system", true},
		{"log-level", true},
		{"speech", true},
		{"fallback", true},
		{"voice", true},
		{"speed", true},
		{"pitch", true},
		{"amplitude", true},
		{"word-gap", true},
		{"cache", true},
		{"cache-dir", true},
		{"cache-max-mb", true},
		{"openai-model", true},
		{"openai-voice", true},
		{"openai-speed", true},
		{"openai-instruction", true},
		{"gemini-model", true},
		{"gemini-voice", true},
		{"tui", false},
		{"debug", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}

	for _, name := range []string{"validate", "show", "say", "compose", "generate", "obf", "voices", "cache"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("Expected subcommand %s, got %v (%v)", name, sub, err)
		}
	}
}

func TestInitConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
	content := `speech:
  backend: openai
  openai_key: test-key
  speed: 220
system:
  path: /test/system.yaml
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	InitConfig(cfgPath)
	t.Setenv("SGS_TEST_VAR", "test-value")

	if viper.GetString("test_var") != "test-value" {
		t.Error("Environment variable not properly loaded")
	}
	if got := viper.GetString("system.path"); got != "/test/system.yaml" {
		t.Errorf("system.path = %q", got)
	}

	t.Setenv("OPENAI_API_KEY", "")
	cfg := SpeechConfig()
	if cfg.Backend != "openai" || cfg.Speed != 220 || cfg.OpenAIKey != "test-key" {
		t.Errorf("SpeechConfig() = %+v", cfg)
	}
	if cfg.Voice != "en" {
		t.Errorf("unset Voice = %q, want default en", cfg.Voice)
	}
}

func TestGetAPIKeys(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		configKey string
		get       func() string
		expected  string
	}{
		{"openai from environment", map[string]string{"OPENAI_API_KEY": "env-key"}, "speech.openai_key", GetOpenAIKey, "env-key"},
		{"openai from config", map[string]string{"OPENAI_API_KEY": ""}, "speech.openai_key", GetOpenAIKey, "config-key"},
		{"gemini from GEMINI_API_KEY", map[string]string{"GEMINI_API_KEY": "g-key", "GOOGLE_API_KEY": "x"}, "speech.gemini_key", GetGeminiKey, "g-key"},
		{"gemini from GOOGLE_API_KEY", map[string]string{"GEMINI_API_KEY": "", "GOOGLE_API_KEY": "google-key"}, "speech.gemini_key", GetGeminiKey, "google-key"},
		{"gemini from config", map[string]string{"GEMINI_API_KEY": "", "GOOGLE_API_KEY": ""}, "speech.gemini_key", GetGeminiKey, "config-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			viper.Set(tt.configKey, "config-key")

			if got := tt.get(); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.PersistentFlags().Set("system", "/test/system.json")
	cmd.PersistentFlags().Set("speech", "gemini")
	cmd.PersistentFlags().Set("openai-model", "tts-1-hd")
	cmd.Flags().Set("debug", "true")

	bindFlagsToViper(cmd)

	tests := map[string]string{
		"system.path":         "/test/system.json",
		"speech.backend":      "gemini",
		"speech.openai_model": "tts-1-hd",
		"gui.debug":           "true",
		"speech.voice":        "en",
	}
	for key, want := range tests {
		if got := viper.GetString(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoadSystem(t *testing.T) {
	sys, err := LoadSystem("", nil)
	if err != nil || len(sys.Folders) == 0 {
		t.Fatalf("LoadSystem(\"\") = %v, %v", sys, err)
	}

	sys, err = LoadSystem(tinySystem(t), nil)
	if err != nil || sys.Name != "Tiny" {
		t.Fatalf("LoadSystem(tiny) = %v, %v", sys, err)
	}

	if _, err := LoadSystem(filepath.Join(t.TempDir(), "missing.obz"), nil); err == nil {
		t.Error("Expected error for missing package")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteSystemFile(t, dir, "good.json", testutil.TinySystemJSON)
	bad := testutil.WriteSystemFile(t, dir, "bad.yaml", "name: Broken\nfolders: []\n")

	out, err := runCLI(t, "validate", good)
	if err != nil {
		t.Fatalf("validate good: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, `"Tiny"`) || !strings.Contains(out, "2 folders") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = runCLI(t, "validate", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("validate bad: error = %v", err)
	}
	if !strings.Contains(out, "✗ "+bad) || !strings.Contains(out, system.ErrNoFolders.Error()) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestValidateAndShowOtherFormats(t *testing.T) {
	dir := t.TempDir()
	text := testutil.WriteSystemFile(t, dir, "small.sgs", `
name = "Small"
description = "Text system."
default = "Home"
rows = 1
cols = 2

folder "Home" (append) "yes" "no";
folder "Quick" (immediate) "hello" "bye";
`)
	board := testutil.WriteSystemFile(t, dir, "board.json", `{
	"format": "sgs-board",
	"name": "Layouts",
	"images": {"wave": "wave.png"},
	"layouts": [{"name": "Main", "default": true, "rows": 1, "cols": 2,
		"buttons": [{"label": "hi", "image": "wave"}, null]}]
}`)
	broken := testutil.WriteSystemFile(t, dir, "broken.sgs", `name = "x"
folder "A" (shout) "a";`)

	out, err := runCLI(t, "validate", text, board)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	for _, want := range []string{`"Small", 2 folders`, `"Layouts", 1 folders`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "validate", broken)
	if err == nil {
		t.Fatalf("validate broken: no error\n%s", out)
	}
	if !strings.Contains(out, system.ErrMissingSetting.Error()) {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = runCLI(t, "show", "--system", text, "--folder", "Quick")
	if err != nil {
		t.Fatalf("show text: %v", err)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "speaks immediately") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = runCLI(t, "show", "--system", board)
	if err != nil {
		t.Fatalf("show board: %v", err)
	}
	if !strings.Contains(out, "Main") || !strings.Contains(out, "hi") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestShowCommand(t *testing.T) {
	path := tinySystem(t)

	out, err := runCLI(t, "show", "--system", path, "--page", "2")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Home  (page 2/2)", "More →", "Hotbar (page 1/2)", "the"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "show", "--system", path, "--folder", "Home::More")
	if err != nil {
		t.Fatalf("show folder: %v", err)
	}
	if !strings.Contains(out, "yes") || !strings.Contains(out, "speaks immediately") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := runCLI(t, "show", "--system", path, "--page", "3"); err == nil {
		t.Error("Expected error for missing page")
	}
	if _, err := runCLI(t, "show", "--system", path, "--folder", "Nowhere"); err == nil {
		t.Error("Expected error for unknown folder")
	}
}

func TestComposeCommand(t *testing.T) {
	path := tinySystem(t)

	out, err := runCLI(t, "compose", "--system", path, "hi", "the")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.HasSuffix(out, "hi the\n") {
		t.Errorf("output = %q", out)
	}

	out, err = runCLI(t, "compose", "--system", path, "there", "More", "yes")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(out, "say: yes please\n") || !strings.HasSuffix(out, "there\n") {
		t.Errorf("output = %q", out)
	}

	_, err = runCLI(t, "compose", "--system", path, "hi", "zebra")
	if err == nil || !strings.Contains(err.Error(), board.ErrNoSuchButton.Error()) {
		t.Errorf("compose unknown label: error = %v", err)
	}
}

func TestSayCommand(t *testing.T) {
	out, err := runCLI(t, "say", "--speech", "log", "hello", "world")
	if err != nil {
		t.Fatalf("say: %v", err)
	}
	if out != "say: hello world\n" {
		t.Errorf("output = %q", out)
	}

	if _, err := runCLI(t, "say", "--speech", "log", " "); err == nil {
		t.Error("Expected error for blank text")
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.tsv")
	testutil.CreateTestFile(t, words, []byte("word\tFood\tDrinks\napple\tx\t\nwater\t\tx\n"))
	output := filepath.Join(dir, "system.yaml")

	out, err := runCLI(t, "generate", words, "-o", output)
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	sys, err := system.LoadFile(output)
	if err != nil {
		t.Fatalf("generated system does not load: %v", err)
	}
	if len(sys.Folders) != 2 || sys.Folders[0].Name != "Drinks" {
		t.Errorf("generated folders = %d, first %q", len(sys.Folders), sys.Folders[0].Name)
	}

	out, err = runCLI(t, "generate", words, "-o", output)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if !strings.Contains(out, "Archived previous") {
		t.Errorf("expected archive notice:\n%s", out)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "archive"))
	if len(entries) != 1 {
		t.Errorf("archive entries = %d, want 1", len(entries))
	}

	out, err = runCLI(t, "generate", words)
	if err != nil || !strings.Contains(out, `"name": "Generated System"`) {
		t.Errorf("generate to stdout = %v\n%s", err, out)
	}
}

func TestOBFCommands(t *testing.T) {
	dir := t.TempDir()
	path := tinySystem(t)
	pkg := filepath.Join(dir, "tiny.obz")
	back := filepath.Join(dir, "back.yaml")

	if out, err := runCLI(t, "obf", "export", "--system", path, "-o", pkg); err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	testutil.AssertFileExists(t, pkg)

	if out, err := runCLI(t, "obf", "import", pkg, "-o", back); err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	sys, err := system.LoadFile(back)
	if err != nil {
		t.Fatalf("imported system does not load: %v", err)
	}
	if sys.Name != "Tiny" || len(sys.Folders) != 2 || len(sys.Hotbar.Buttons) != 3 {
		t.Errorf("imported system = %q, %d folders, %d hotbar", sys.Name, len(sys.Folders), len(sys.Hotbar.Buttons))
	}
}

func TestVoicesCommand(t *testing.T) {
	out, err := runCLI(t, "voices", "--speech", "openai")
	if err != nil {
		t.Fatalf("voices: %v", err)
	}
	if !strings.Contains(out, "VOICE") || !strings.Contains(out, "nova") {
		t.Errorf("output:\n%s", out)
	}

	out, err = runCLI(t, "voices", "--speech", "log")
	if err != nil || !strings.Contains(out, "has no voices") {
		t.Errorf("voices log = %v\n%s", err, out)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "cache", "stats", "--cache-dir", dir)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Clips") || !strings.Contains(out, "0.0 MB") {
		t.Errorf("stats output:\n%s", out)
	}

	out, err = runCLI(t, "cache", "prune", "--cache-dir", dir, "--max-mb", "0")
	if err != nil || !strings.Contains(out, "Removed 0 clips") {
		t.Errorf("prune = %v\n%s", err, out)
	}

	out, err = runCLI(t, "cache", "clear", "--cache-dir", dir)
	if err != nil || !strings.Contains(out, "cleared") {
		t.Errorf("clear = %v\n%s", err, out)
	}
}
