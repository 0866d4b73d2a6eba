package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// AssemblyAIClient implements Client against the AssemblyAI transcript API
type AssemblyAIClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewAssemblyAIClient creates a new AssemblyAI client
func NewAssemblyAIClient(apiKey, baseURL string) *AssemblyAIClient {
	return &AssemblyAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type submitRequest struct {
	AudioURL      string `json:"audio_url"`
	SpeakerLabels bool   `json:"speaker_labels"`
	LanguageCode  string `json:"language_code,omitempty"`
}

// Submit submits audio for transcription with speaker diarization enabled
func (c *AssemblyAIClient) Submit(ctx context.Context, audioURL, languageCode string) (string, error) {
	payload, err := json.Marshal(submitRequest{
		AudioURL:      audioURL,
		SpeakerLabels: true,
		LanguageCode:  languageCode,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcript", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit transcription: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[STT] Submission rejected: status %d, body: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("transcription submission failed with status %d: %s", resp.StatusCode, string(body))
	}

	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return "", fmt.Errorf("failed to parse submission response: %w", err)
	}
	if job.ID == "" {
		return "", fmt.Errorf("transcription submission returned no job id")
	}

	log.Printf("[STT] Transcript submitted with ID: %s", job.ID)
	return job.ID, nil
}

// Poll retrieves the current state of a transcription job
func (c *AssemblyAIClient) Poll(ctx context.Context, jobID string) (*Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transcript/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to poll transcription status: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription poll failed with status %d: %s", resp.StatusCode, string(body))
	}

	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to parse poll response: %w", err)
	}

	return &job, nil
}
