package enrich

import (
	"log"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

var (
	ambientSounds = map[string][]string{
		types.SettingExterior: {"wind", "birds chirping", "traffic"},
		types.SettingInterior: {"room tone", "clock ticking", "distant sounds"},
	}

	musicPresets = map[string]string{
		"dramatic":  "dramatic orchestral score",
		"action":    "intense action music",
		"emotional": "emotional piano melody",
	}
)

// AnalyzeSound determines the sound design for one scene: explicit
// directions become effects, ambience follows the setting, and the
// music cue follows whether dialogue or action dominates.
func AnalyzeSound(scene types.Scene) *types.SoundDesign {
	design := &types.SoundDesign{
		Effects: []string{},
		Ambient: []string{},
	}

	if len(scene.SoundDirections) > 0 {
		design.Effects = append(design.Effects, scene.SoundDirections...)
	}

	ambient, ok := ambientSounds[scene.Setting]
	if !ok {
		ambient = ambientSounds[types.SettingInterior]
	}
	design.Ambient = append(design.Ambient, ambient...)

	switch {
	case len(scene.Dialogues) > 2:
		design.Music = musicPresets["emotional"]
	case len(scene.Actions) > 2:
		design.Music = musicPresets["action"]
	default:
		design.Music = musicPresets["dramatic"]
	}

	return design
}

// ApplySound returns a new slice with sound designs on every scene.
func ApplySound(scenes []types.Scene) []types.Scene {
	out := make([]types.Scene, len(scenes))
	for i, scene := range scenes {
		scene.SoundDesign = AnalyzeSound(scene)
		out[i] = scene
	}
	log.Printf("Analyzed sound for %d scenes", len(out))
	return out
}
