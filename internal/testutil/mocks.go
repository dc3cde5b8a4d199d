package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// RecordingSink is a speech sink that records every utterance. Setting Err
// makes every Speak call fail without recording.
type RecordingSink struct {
	mu         sync.Mutex
	Err        error
	Spoken     []string
	Interrupts []bool
	Stops      int
}

// Speak records text or returns Err.
func (s *RecordingSink) Speak(ctx context.Context, text string, interrupt bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.Spoken = append(s.Spoken, text)
	s.Interrupts = append(s.Interrupts, interrupt)
	return nil
}

// Stop counts stop requests.
func (s *RecordingSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stops++
}

// IsSpeaking always reports false.
func (s *RecordingSink) IsSpeaking() bool { return false }

// Name returns "recording".
func (s *RecordingSink) Name() string { return "recording" }

// Utterances returns a copy of everything spoken so far.
func (s *RecordingSink) Utterances() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Spoken))
	copy(out, s.Spoken)
	return out
}

// MockSynthesizer writes canned audio for every request.
type MockSynthesizer struct {
	mu        sync.Mutex
	ID        string
	Audio     []byte
	Errors    map[string]error
	Available error
	Calls     []string
}

// Synthesize writes Audio to outputFile unless an error is registered for
// text.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text, outputFile string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	err, failed := m.Errors[text]
	m.mu.Unlock()

	if failed {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := m.Audio
	if data == nil {
		data = GenerateAudioData()
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("mock synthesizer: %w", err)
	}
	return nil
}

// Name returns ID, or "mock".
func (m *MockSynthesizer) Name() string {
	if m.ID == "" {
		return "mock"
	}
	return m.ID
}

// IsAvailable returns Available.
func (m *MockSynthesizer) IsAvailable() error { return m.Available }

// CallCount is the number of Synthesize calls so far.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// GenerateAudioData returns a minimal RIFF/WAVE header.
func GenerateAudioData() []byte {
	return []byte{'R', 'I', 'F', 'F', 0x24, 0, 0, 0, 'W', 'A', 'V', 'E'}
}
