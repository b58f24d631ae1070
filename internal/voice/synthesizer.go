package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/codebuildervaibhav/film-generator/internal/enrich"
	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// Synthesizer calls an OpenAI-style text-to-speech endpoint to turn
// dialogue lines into audio. In demo mode no network calls are made
// and clips carry metadata only.
type Synthesizer struct {
	baseURL  string
	apiKey   string
	model    string
	demoMode bool
	client   *http.Client
}

// NewSynthesizer creates a speech synthesizer client. An empty API key
// forces demo mode.
func NewSynthesizer(baseURL, apiKey, model string, demoMode bool, timeout time.Duration) *Synthesizer {
	if model == "" {
		model = "tts-1"
	}
	if apiKey == "" {
		demoMode = true
	}
	if demoMode {
		log.Println("Speech synthesis running in demo mode")
	}
	return &Synthesizer{
		baseURL:  baseURL,
		apiKey:   apiKey,
		model:    model,
		demoMode: demoMode,
		client:   &http.Client{Timeout: timeout},
	}
}

// Synthesize generates speech audio for a single dialogue line.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"model": s.model,
		"voice": voiceID,
		"input": text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode speech request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("speech service returned %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech audio: %v", err)
	}
	return audio, nil
}

// SynthesizeScene generates audio clips for every dialogue line in a
// scene. A failed line is logged and skipped; synthesis is never fatal
// to the scene or the job.
func (s *Synthesizer) SynthesizeScene(ctx context.Context, scene types.Scene, voices map[string]string) []types.AudioClip {
	clips := make([]types.AudioClip, 0, len(scene.Dialogues))

	for _, dialogue := range scene.Dialogues {
		voiceID, ok := voices[dialogue.Character]
		if !ok {
			voiceID = enrich.DefaultVoice
		}

		clip := types.AudioClip{
			Character: dialogue.Character,
			Text:      dialogue.Text,
			Voice:     voiceID,
		}

		if !s.demoMode {
			audio, err := s.Synthesize(ctx, dialogue.Text, voiceID)
			if err != nil {
				log.Printf("Scene %d: speech synthesis failed for %s: %v",
					scene.Number, dialogue.Character, err)
				continue
			}
			clip.SizeBytes = len(audio)
		}

		clips = append(clips, clip)
	}

	return clips
}
