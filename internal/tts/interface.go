package tts

import "context"

// Synthesizer converts text to speech audio
type Synthesizer interface {
	// Synthesize generates audio bytes for text using the given voice
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}
