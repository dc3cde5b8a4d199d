package speech

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Voice describes one selectable voice of a backend
type Voice struct {
	Backend  string
	Name     string
	Language string
	Detail   string
}

var openAIVoices = []openai.SpeechVoice{
	openai.VoiceAlloy, openai.VoiceAsh, openai.VoiceBallad, openai.VoiceCoral,
	openai.VoiceEcho, openai.VoiceFable, openai.VoiceOnyx, openai.VoiceNova,
	openai.VoiceShimmer, openai.VoiceVerse,
}

// Prebuilt Gemini TTS voices with the style Google describes for each.
var geminiVoices = [][2]string{
	{"Zephyr", "bright"}, {"Puck", "upbeat"}, {"Charon", "informative"},
	{"Kore", "firm"}, {"Fenrir", "excitable"}, {"Leda", "youthful"},
	{"Orus", "firm"}, {"Aoede", "breezy"}, {"Callirrhoe", "easy-going"},
	{"Autonoe", "bright"}, {"Enceladus", "breathy"}, {"Iapetus", "clear"},
	{"Umbriel", "easy-going"}, {"Algieba", "smooth"}, {"Despina", "smooth"},
	{"Erinome", "clear"}, {"Gacrux", "mature"}, {"Sulafat", "warm"},
}

// Voices lists the voices available for backend
func Voices(ctx context.Context, backend string) ([]Voice, error) {
	switch strings.ToLower(backend) {
	case BackendESpeak:
		out, err := exec.CommandContext(ctx, "espeak-ng", "--voices").Output()
		if err != nil {
			return nil, fmt.Errorf("failed to list espeak-ng voices: %w", err)
		}
		return parseESpeakVoices(string(out)), nil
	case BackendOpenAI:
		voices := make([]Voice, len(openAIVoices))
		for i, v := range openAIVoices {
			voices[i] = Voice{Backend: BackendOpenAI, Name: string(v), Language: "multilingual"}
		}
		return voices, nil
	case BackendGemini:
		voices := make([]Voice, len(geminiVoices))
		for i, v := range geminiVoices {
			voices[i] = Voice{Backend: BackendGemini, Name: v[0], Language: "multilingual", Detail: v[1]}
		}
		return voices, nil
	case BackendLog:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown speech backend: %s", backend)
	}
}

// parseESpeakVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  af              --/M      Afrikaans          gmw/af
func parseESpeakVoices(out string) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, Voice{
			Backend:  BackendESpeak,
			Name:     fields[1],
			Language: fields[3],
			Detail:   fields[2],
		})
	}
	return voices
}

type modelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// ListOpenAISpeechModels returns the sorted ids of the speech models the key
// can use.
func ListOpenAISpeechModels(ctx context.Context, apiKey string) ([]string, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .sgs.yaml")
	}
	return listSpeechModels(ctx, openai.NewClient(apiKey))
}

func listSpeechModels(ctx context.Context, client modelLister) ([]string, error) {
	models, err := client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	var ids []string
	for _, model := range models.Models {
		if strings.Contains(model.ID, "tts") {
			ids = append(ids, model.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
