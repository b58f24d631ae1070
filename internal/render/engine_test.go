package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

func TestResolutionFor(t *testing.T) {
	res, err := ResolutionFor(types.QualityUltra)
	require.NoError(t, err)
	assert.Equal(t, 1920, res.Width)
	assert.Equal(t, 1080, res.Height)

	_, err = ResolutionFor("potato")
	assert.ErrorIs(t, err, ErrUnsupportedQuality)
}

func TestPrompt(t *testing.T) {
	scene := types.Scene{
		Number:            1,
		Setting:           types.SettingExterior,
		Location:          "GARDEN",
		VisualDescription: "cinematic, exterior scene in GARDEN",
	}

	assert.Equal(t, "cinematic, exterior scene in GARDEN, film noir, black and white, dramatic shadows",
		Prompt(scene, "noir"))

	scene.VisualDescription = ""
	assert.Equal(t, "exterior scene in GARDEN, cinematic, film quality", Prompt(scene, "unknown"))
}

func TestRenderSceneDemoMode(t *testing.T) {
	engine := NewEngine("", "", true, time.Second)
	scene := types.Scene{Number: 4, Setting: types.SettingInterior, Location: "LAB"}

	result, err := engine.RenderScene(context.Background(), scene, "cinematic", types.QualityMedium)

	require.NoError(t, err)
	assert.True(t, result.IsDemo)
	assert.Equal(t, demoVideos[1], result.VideoURL)
	assert.Positive(t, result.FileSize)

	// Same scene renders to the same demo artifact.
	again, err := engine.RenderScene(context.Background(), scene, "cinematic", types.QualityMedium)
	require.NoError(t, err)
	assert.Equal(t, result.VideoURL, again.VideoURL)
	assert.Equal(t, result.FileSize, again.FileSize)
}

func TestRenderSceneUnsupportedQuality(t *testing.T) {
	engine := NewEngine("", "", true, time.Second)

	_, err := engine.RenderScene(context.Background(), types.Scene{Number: 1}, "cinematic", "4k")
	assert.ErrorIs(t, err, ErrUnsupportedQuality)
}

func TestRenderSceneRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/render", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"video_url":"https://cdn.example.net/scene.mp4","file_size":4096}`))
	}))
	defer server.Close()

	engine := NewEngine(server.URL, "token", false, time.Second)
	scene := types.Scene{Number: 1, Setting: types.SettingInterior, Location: "LAB"}

	result, err := engine.RenderScene(context.Background(), scene, "cinematic", types.QualityHigh)

	require.NoError(t, err)
	assert.False(t, result.IsDemo)
	assert.Equal(t, "https://cdn.example.net/scene.mp4", result.VideoURL)
	assert.Equal(t, int64(4096), result.FileSize)
	assert.Equal(t, types.QualityHigh, result.Quality)
}

func TestRenderSceneFallsBackOnServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of credit", http.StatusPaymentRequired)
	}))
	defer server.Close()

	engine := NewEngine(server.URL, "token", false, time.Second)
	scene := types.Scene{Number: 2, Setting: types.SettingInterior, Location: "LAB"}

	result, err := engine.RenderScene(context.Background(), scene, "cinematic", types.QualityLow)

	require.NoError(t, err)
	assert.True(t, result.IsDemo)
	assert.NotEmpty(t, result.VideoURL)
}
