package enrich

import (
	"log"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

var cameraPresets = map[string]string{
	"wide":   "wide establishing shot",
	"medium": "medium shot",
	"close":  "close-up shot",
	"pan":    "panning shot",
}

// AnalyzeCamera determines the camera setup for one scene. Explicit
// in-script camera directions win; otherwise shots are picked from the
// scene's shape.
func AnalyzeCamera(scene types.Scene) *types.CameraSetup {
	setup := &types.CameraSetup{
		Shots:     []string{},
		Movements: []string{},
		Angles:    []string{},
	}

	if len(scene.CameraDirections) > 0 {
		setup.Shots = append(setup.Shots, scene.CameraDirections...)
		return setup
	}

	// Opening scene gets an establishing shot.
	if scene.Number == 1 {
		setup.Shots = append(setup.Shots, cameraPresets["wide"])
	}
	if len(scene.Dialogues) > 0 {
		setup.Shots = append(setup.Shots, cameraPresets["medium"])
		if len(scene.Dialogues) > 2 {
			setup.Shots = append(setup.Shots, cameraPresets["close"])
		}
	}
	if len(scene.Actions) > 1 {
		setup.Movements = append(setup.Movements, cameraPresets["pan"])
	}

	return setup
}

// ApplyCamera returns a new slice with camera setups on every scene.
func ApplyCamera(scenes []types.Scene) []types.Scene {
	out := make([]types.Scene, len(scenes))
	for i, scene := range scenes {
		scene.CameraSetup = AnalyzeCamera(scene)
		out[i] = scene
	}
	log.Printf("Analyzed camera setup for %d scenes", len(out))
	return out
}
