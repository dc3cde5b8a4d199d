package speech

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"codeberg.org/snonux/sgs/internal/testutil"
)

func TestESpeakArgs(t *testing.T) {
	e := NewESpeak(&Config{Voice: "en+f3", Speed: 1000, Pitch: -5, Amplitude: 120, WordGap: 2})

	got := e.args("-hi", "/tmp/out.wav")
	want := []string{"-v", "en+f3", "-s", "450", "-p", "0", "-a", "120", "-g", "2", "-w", "/tmp/out.wav", "--", "-hi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args() = %v, want %v", got, want)
	}

	e.SetWordGap(-1)
	e.SetSpeed(10)
	got = e.args("hi", "o.wav")
	want = []string{"-v", "en+f3", "-s", "80", "-p", "0", "-a", "120", "-w", "o.wav", "--", "hi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args() = %v, want %v", got, want)
	}
}

func TestESpeakMissingBinary(t *testing.T) {
	e := NewESpeak(nil)
	e.command = "espeak-ng-does-not-exist"
	if err := e.IsAvailable(); err == nil {
		t.Error("IsAvailable() = nil for a missing binary")
	}
	err := e.Synthesize(context.Background(), "hi", filepath.Join(t.TempDir(), "x.wav"))
	if err == nil {
		t.Error("Synthesize() = nil for a missing binary")
	}
	if err := e.Synthesize(context.Background(), "  ", "x.wav"); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Synthesize(blank) error = %v, want ErrEmptyText", err)
	}
}

func TestESpeakCacheKeyTracksSettings(t *testing.T) {
	a := NewESpeak(&Config{Voice: "en", Speed: 160})
	b := NewESpeak(&Config{Voice: "en", Speed: 170})
	if a.CacheKey() == b.CacheKey() {
		t.Error("different speeds should give different cache keys")
	}
}

type fakeSpeechClient struct {
	requests []openai.CreateSpeechRequest
	body     string
	err      error
}

func (f *fakeSpeechClient) CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return openai.RawResponse{}, f.err
	}
	return openai.RawResponse{ReadCloser: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestOpenAISynthesizer(t *testing.T) {
	client := &fakeSpeechClient{body: "RIFFdata"}
	cfg := &Config{OpenAIModel: "gpt-4o-mini-tts", OpenAIVoice: "nova", OpenAISpeed: 1.1, OpenAIInstruction: "calm"}
	s := newOpenAISynthesizer(client, cfg)

	out := filepath.Join(t.TempDir(), "sub", "a.wav")
	if err := s.Synthesize(context.Background(), " hello there ", out); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	testutil.AssertFileContent(t, out, []byte("RIFFdata"))

	req := client.requests[0]
	if req.Input != "hello there" || req.Voice != "nova" || req.ResponseFormat != openai.SpeechResponseFormatWav {
		t.Errorf("request = %+v", req)
	}
	if req.Instructions != "calm" {
		t.Errorf("Instructions = %q, want calm", req.Instructions)
	}

	s = newOpenAISynthesizer(client, &Config{OpenAIModel: "tts-1", OpenAIInstruction: "calm"})
	_ = s.Synthesize(context.Background(), "x", out)
	if got := client.requests[1].Instructions; got != "" {
		t.Errorf("tts-1 should not get instructions, got %q", got)
	}
	if got := client.requests[1].Voice; got != openai.VoiceAlloy {
		t.Errorf("default voice = %q, want alloy", got)
	}
}

func TestOpenAISynthesizerErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.wav")

	s := newOpenAISynthesizer(&fakeSpeechClient{err: errors.New("boom")}, &Config{})
	if err := s.Synthesize(context.Background(), "hi", out); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v", err)
	}

	s = newOpenAISynthesizer(&fakeSpeechClient{}, &Config{})
	if err := s.Synthesize(context.Background(), "hi", out); err == nil || !strings.Contains(err.Error(), "no audio data") {
		t.Errorf("empty body error = %v", err)
	}
}

func TestGeminiSynthesizer(t *testing.T) {
	var gotModel string
	var gotConfig *genai.GenerateContentConfig
	var gotText string
	generate := func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = model
		gotConfig = config
		gotText = contents[0].Parts[0].Text
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{InlineData: &genai.Blob{Data: []byte{1, 2}, MIMEType: "audio/L16;rate=24000"}},
					{InlineData: &genai.Blob{Data: []byte{3, 4}}},
				}},
			}},
		}, nil
	}

	s := newGeminiSynthesizer(generate, &Config{GeminiVoice: "Puck"})
	out := filepath.Join(t.TempDir(), "g.wav")
	if err := s.Synthesize(context.Background(), "good morning", out); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if gotModel != DefaultConfig().GeminiModel {
		t.Errorf("model = %q", gotModel)
	}
	if gotText != "good morning" {
		t.Errorf("text = %q", gotText)
	}
	if gotConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != "Puck" {
		t.Error("voice not passed through")
	}
	if !reflect.DeepEqual(gotConfig.ResponseModalities, []string{"AUDIO"}) {
		t.Errorf("modalities = %v", gotConfig.ResponseModalities)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 48 || string(data[:4]) != "RIFF" {
		t.Errorf("wav = %d bytes, header %q", len(data), data[:4])
	}
	if !reflect.DeepEqual(data[44:], []byte{1, 2, 3, 4}) {
		t.Errorf("pcm = %v", data[44:])
	}
}

func TestGeminiSynthesizerNoAudio(t *testing.T) {
	generate := func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	}
	s := newGeminiSynthesizer(generate, &Config{})
	err := s.Synthesize(context.Background(), "hi", filepath.Join(t.TempDir(), "g.wav"))
	if err == nil || !strings.Contains(err.Error(), "no audio data") {
		t.Errorf("error = %v", err)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	mock := &testutil.MockSynthesizer{ID: "cloud", Errors: map[string]error{"hi": errors.New("timeout")}}
	b := NewBreakerSynthesizer(mock, nil)
	out := filepath.Join(t.TempDir(), "b.wav")

	for i := 0; i < 3; i++ {
		if err := b.Synthesize(context.Background(), "hi", out); err == nil {
			t.Fatal("expected failure")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	err := b.Synthesize(context.Background(), "hi", out)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
	if err := b.IsAvailable(); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("IsAvailable() = %v, want ErrOpenState", err)
	}
	if b.Name() != "cloud" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestParseESpeakVoices(t *testing.T) {
	out := `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-us           --/M      English_(America)  gmw/en-US            (en 3)
`
	voices := parseESpeakVoices(out)
	if len(voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(voices))
	}
	if voices[1].Name != "en-us" || voices[1].Language != "English_(America)" {
		t.Errorf("voice = %+v", voices[1])
	}
}

func TestStaticVoices(t *testing.T) {
	for _, backend := range []string{BackendOpenAI, BackendGemini} {
		voices, err := Voices(context.Background(), backend)
		if err != nil || len(voices) == 0 {
			t.Errorf("Voices(%s) = %d, %v", backend, len(voices), err)
		}
	}
	if _, err := Voices(context.Background(), "festival"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

type fakeLister struct{ ids []string }

func (f fakeLister) ListModels(ctx context.Context) (openai.ModelsList, error) {
	var list openai.ModelsList
	for _, id := range f.ids {
		list.Models = append(list.Models, openai.Model{ID: id})
	}
	return list, nil
}

func TestListSpeechModels(t *testing.T) {
	ids, err := listSpeechModels(context.Background(), fakeLister{ids: []string{"gpt-4o", "tts-1-hd", "gpt-4o-mini-tts", "tts-1"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"gpt-4o-mini-tts", "tts-1", "tts-1-hd"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}
