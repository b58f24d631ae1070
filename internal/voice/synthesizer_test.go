package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

func sampleScene() types.Scene {
	return types.Scene{
		Number: 1,
		Dialogues: []types.Dialogue{
			{Character: "JOHN", Text: "Where is the coffee?"},
			{Character: "MARY", Text: "You finished it yesterday."},
		},
		Characters: []string{"JOHN", "MARY"},
	}
}

func TestSynthesizeSceneDemoMode(t *testing.T) {
	synth := NewSynthesizer("", "", "", true, time.Second)
	voices := map[string]string{"JOHN": "onyx"}

	clips := synth.SynthesizeScene(context.Background(), sampleScene(), voices)

	require.Len(t, clips, 2)
	assert.Equal(t, "JOHN", clips[0].Character)
	assert.Equal(t, "onyx", clips[0].Voice)
	// MARY has no assignment and gets the default voice.
	assert.Equal(t, "alloy", clips[1].Voice)
	assert.Zero(t, clips[0].SizeBytes)
}

func TestSynthesizeSceneCallsService(t *testing.T) {
	var requests []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)
		w.Write([]byte("fake-audio-bytes"))
	}))
	defer server.Close()

	synth := NewSynthesizer(server.URL, "key", "tts-1", false, time.Second)
	voices := map[string]string{"JOHN": "onyx", "MARY": "nova"}

	clips := synth.SynthesizeScene(context.Background(), sampleScene(), voices)

	require.Len(t, clips, 2)
	assert.Equal(t, len("fake-audio-bytes"), clips[0].SizeBytes)
	require.Len(t, requests, 2)
	assert.Equal(t, "Where is the coffee?", requests[0]["input"])
	assert.Equal(t, "onyx", requests[0]["voice"])
	assert.Equal(t, "tts-1", requests[0]["model"])
}

func TestSynthesizeSceneSkipsFailedLines(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	synth := NewSynthesizer(server.URL, "key", "", false, time.Second)

	clips := synth.SynthesizeScene(context.Background(), sampleScene(), map[string]string{})

	// The failed first line is dropped, the second still synthesizes.
	require.Len(t, clips, 1)
	assert.Equal(t, "MARY", clips[0].Character)
}
