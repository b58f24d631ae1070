package enrich

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// maxDescriptionLen caps prompts sent to image/video generation APIs.
const maxDescriptionLen = 1000

var styleModifiers = map[string]string{
	"realistic": "photorealistic, cinematic, high quality, 8k resolution",
	"animated":  "animated, cartoon style, colorful, stylized",
	"cinematic": "cinematic, dramatic lighting, film quality, professional cinematography",
}

// BuildDescription builds the visual prompt for one scene. Unknown
// styles fall back to the cinematic modifier.
func BuildDescription(scene types.Scene, style string) string {
	base, ok := styleModifiers[style]
	if !ok {
		base = styleModifiers["cinematic"]
	}

	parts := []string{
		strings.ToLower(scene.Setting) + " scene in " + scene.Location,
	}

	if len(scene.CameraDirections) > 0 {
		parts = append(parts, "camera: "+strings.Join(scene.CameraDirections, ", "))
	}
	if len(scene.LightingDirections) > 0 {
		parts = append(parts, "lighting: "+strings.Join(scene.LightingDirections, ", "))
	}
	if len(scene.Actions) > 0 {
		actions := scene.Actions
		if len(actions) > 2 {
			actions = actions[:2]
		}
		parts = append(parts, strings.Join(actions, ". "))
	}
	if len(scene.Characters) > 0 {
		names := scene.Characters
		if len(names) > 3 {
			names = names[:3]
		}
		parts = append(parts, "featuring "+strings.Join(names, ", "))
	}

	description := base + ", " + strings.Join(parts, ", ")
	if len(description) > maxDescriptionLen {
		// Back off to a rune boundary so the cut never leaves a
		// partial UTF-8 sequence at the end.
		cut := maxDescriptionLen
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = description[:cut]
	}
	return description
}

// DescribeScenes returns a new slice with the visual description set
// on every scene.
func DescribeScenes(scenes []types.Scene, style string) []types.Scene {
	out := make([]types.Scene, len(scenes))
	for i, scene := range scenes {
		scene.VisualDescription = BuildDescription(scene, style)
		out[i] = scene
	}
	log.Printf("Built visual descriptions for %d scenes", len(out))
	return out
}
