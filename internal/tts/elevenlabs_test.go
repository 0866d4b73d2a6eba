package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestSynthesizeRequest verifies the request path, key header and payload.
func TestSynthesizeRequest(t *testing.T) {
	var gotBody synthesizeRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech/voice-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotKey = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	client := NewElevenLabsClient("el-key", srv.URL)
	audio, err := client.Synthesize(context.Background(), "hello", "voice-1")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "audio-bytes" {
		t.Errorf("audio = %q", audio)
	}
	if gotKey != "el-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody.Text != "hello" || gotBody.ModelID != "eleven_multilingual_v2" {
		t.Errorf("unexpected body: %+v", gotBody)
	}
}

// TestSynthesizeProviderError verifies non-200 responses are errors.
func TestSynthesizeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewElevenLabsClient("el-key", srv.URL)
	if _, err := client.Synthesize(context.Background(), "hello", "voice-1"); err == nil {
		t.Fatal("expected error for provider failure")
	}
}

// TestVoiceForSpeaker verifies pool round-robin.
func TestVoiceForSpeaker(t *testing.T) {
	n := len(DefaultVoices)
	for i := 0; i < n; i++ {
		if VoiceForSpeaker(i) != DefaultVoices[i] {
			t.Errorf("voice %d = %s, want %s", i, VoiceForSpeaker(i), DefaultVoices[i])
		}
	}
	if VoiceForSpeaker(n) != DefaultVoices[0] {
		t.Errorf("voice %d should wrap to the first pool voice", n)
	}
	if VoiceForSpeaker(n+2) != DefaultVoices[2] {
		t.Errorf("voice %d should wrap to the third pool voice", n+2)
	}
}
