package enrich

import (
	"log"
	"strings"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

var lightingPresets = map[string]string{
	"natural":     "natural daylight, soft shadows",
	"dramatic":    "dramatic high-contrast lighting, strong shadows",
	"soft":        "soft diffused lighting, minimal shadows",
	"candlelight": "warm candlelight, intimate atmosphere",
}

// AnalyzeLighting determines the lighting setup for one scene.
// Explicit in-script lighting directions win; otherwise the setting
// picks a preset, adjusted by mood words found in the action lines.
func AnalyzeLighting(scene types.Scene) *types.LightingSetup {
	if len(scene.LightingDirections) > 0 {
		return &types.LightingSetup{
			Type:        "custom",
			Description: strings.Join(scene.LightingDirections, ", "),
		}
	}

	setup := &types.LightingSetup{Type: "soft", Description: lightingPresets["soft"]}
	if scene.Setting == types.SettingExterior {
		setup.Type = "natural"
		setup.Description = lightingPresets["natural"]
	}

	actions := strings.ToLower(strings.Join(scene.Actions, " "))
	switch {
	case containsAny(actions, "dark", "night", "shadow"):
		setup.Type = "dramatic"
		setup.Description = lightingPresets["dramatic"]
	case containsAny(actions, "warm", "cozy"):
		setup.Type = "candlelight"
		setup.Description = lightingPresets["candlelight"]
	}

	return setup
}

// ApplyLighting returns a new slice with lighting setups on every scene.
func ApplyLighting(scenes []types.Scene) []types.Scene {
	out := make([]types.Scene, len(scenes))
	for i, scene := range scenes {
		scene.LightingSetup = AnalyzeLighting(scene)
		out[i] = scene
	}
	log.Printf("Analyzed lighting for %d scenes", len(out))
	return out
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
