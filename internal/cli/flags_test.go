package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", flags.LogLevel, "info"},
		{"Speech", flags.Speech, "espeak"},
		{"Voice", flags.Voice, "en"},
		{"Speed", flags.Speed, 160},
		{"Pitch", flags.Pitch, 50},
		{"Amplitude", flags.Amplitude, 100},
		{"Cache", flags.Cache, true},
		{"CacheMaxMB", flags.CacheMaxMB, 200},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAIVoice", flags.OpenAIVoice, "nova"},
		{"OpenAISpeed", flags.OpenAISpeed, 1.0},
		{"GeminiVoice", flags.GeminiVoice, "Kore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"TUI", flags.TUI},
		{"Debug", flags.Debug},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"SystemPath", flags.SystemPath},
		{"Fallback", flags.Fallback},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}

	if flags.Logger == nil {
		t.Error("Logger is nil before any command ran")
	}
}
