package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// ErrUnsupportedQuality is returned for quality values outside the
// low/medium/high/ultra set.
var ErrUnsupportedQuality = errors.New("unsupported render quality")

// Resolution is the output frame size for one quality level
type Resolution struct {
	Width  int
	Height int
}

var resolutions = map[string]Resolution{
	types.QualityLow:    {768, 432},
	types.QualityMedium: {1024, 576},
	types.QualityHigh:   {1280, 720},
	types.QualityUltra:  {1920, 1080},
}

var styleSuffixes = map[string]string{
	"realistic":   "photorealistic, highly detailed",
	"animated":    "animated style, cartoon, colorful",
	"noir":        "film noir, black and white, dramatic shadows",
	"scifi":       "science fiction, futuristic, neon lights",
	"horror":      "horror atmosphere, dark, eerie",
	"fantasy":     "fantasy style, magical, ethereal",
	"documentary": "documentary style, realistic, natural",
	"anime":       "anime style, vibrant colors, stylized",
}

// Demo artifacts returned when the render service is unavailable or
// demo mode is on.
var demoVideos = []string{
	"https://videos.example.net/demo/establishing.mp4",
	"https://videos.example.net/demo/dialogue.mp4",
	"https://videos.example.net/demo/action.mp4",
}

// Result is the outcome of rendering a single scene
type Result struct {
	VideoURL       string
	GenerationTime float64
	FileSize       int64
	Quality        string
	IsDemo         bool
}

// Engine renders scene videos through an external generation service,
// falling back to demo artifacts when the service fails.
type Engine struct {
	baseURL  string
	token    string
	demoMode bool
	client   *http.Client
}

// NewEngine creates a render engine client. An empty token forces demo
// mode.
func NewEngine(baseURL, token string, demoMode bool, timeout time.Duration) *Engine {
	if token == "" {
		demoMode = true
	}
	if demoMode {
		log.Println("Video rendering running in demo mode")
	}
	return &Engine{
		baseURL:  baseURL,
		token:    token,
		demoMode: demoMode,
		client:   &http.Client{Timeout: timeout},
	}
}

// ResolutionFor maps a quality level to its output resolution.
func ResolutionFor(quality string) (Resolution, error) {
	res, ok := resolutions[quality]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnsupportedQuality, quality)
	}
	return res, nil
}

// ResolutionLabel formats a quality's resolution as "WxH", defaulting
// to medium for unknown values.
func ResolutionLabel(quality string) string {
	res, err := ResolutionFor(quality)
	if err != nil {
		res = resolutions[types.QualityMedium]
	}
	return fmt.Sprintf("%dx%d", res.Width, res.Height)
}

// Prompt builds the generation prompt for a scene from its visual
// description and the style suffix.
func Prompt(scene types.Scene, style string) string {
	prompt := scene.VisualDescription
	if prompt == "" {
		prompt = fmt.Sprintf("%s scene in %s", strings.ToLower(scene.Setting), scene.Location)
	}

	suffix, ok := styleSuffixes[style]
	if !ok {
		suffix = "cinematic, film quality"
	}
	return prompt + ", " + suffix
}

// RenderScene generates the video for one scene. Failures of the real
// service degrade to a demo artifact rather than an error, so a
// returned error always means the scene has no artifact at all.
func (e *Engine) RenderScene(ctx context.Context, scene types.Scene, style, quality string) (Result, error) {
	res, err := ResolutionFor(quality)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()

	if e.demoMode {
		return e.demoResult(scene, start), nil
	}

	result, err := e.renderRemote(ctx, scene, style, quality, res)
	if err != nil {
		log.Printf("Scene %d: render service failed (%v), falling back to demo artifact", scene.Number, err)
		return e.demoResult(scene, start), nil
	}
	result.GenerationTime = time.Since(start).Seconds()
	return result, nil
}

func (e *Engine) renderRemote(ctx context.Context, scene types.Scene, style, quality string, res Resolution) (Result, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"prompt": Prompt(scene, style),
		"width":  res.Width,
		"height": res.Height,
		"fps":    6,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode render request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+"/v1/render", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build render request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("render request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("render service returned %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		VideoURL string `json:"video_url"`
		FileSize int64  `json:"file_size"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("failed to decode render response: %v", err)
	}
	if out.VideoURL == "" {
		return Result{}, fmt.Errorf("render service returned no video url")
	}

	return Result{
		VideoURL: out.VideoURL,
		FileSize: out.FileSize,
		Quality:  quality,
	}, nil
}

// demoResult picks the demo artifact for a scene. The choice and size
// are derived from the scene number so repeated runs stay stable.
func (e *Engine) demoResult(scene types.Scene, start time.Time) Result {
	sizeMB := int64(2 + scene.Number%7)
	return Result{
		VideoURL:       demoVideos[scene.Number%len(demoVideos)],
		GenerationTime: time.Since(start).Seconds(),
		FileSize:       sizeMB * 1024 * 1024,
		Quality:        "demo",
		IsDemo:         true,
	}
}
