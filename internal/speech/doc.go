// Package speech turns phrases into sound.
//
// A Synthesizer renders text into a WAV file (espeak-ng locally, or the
// OpenAI and Gemini speech APIs). An AudioSink combines a Synthesizer with an
// optional on-disk Cache, a platform Player and a playback Queue, and is
// what the board speaks through. LogSink is a silent Sink for headless use.
package speech
