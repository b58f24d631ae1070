package enrich

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

func sampleScene() types.Scene {
	return types.Scene{
		Number:   2,
		Setting:  types.SettingInterior,
		Location: "KITCHEN",
		Dialogues: []types.Dialogue{
			{Character: "JOHN", Text: "Where is the coffee?"},
			{Character: "MARY", Text: "You finished it yesterday."},
		},
		Actions:    []string{"John opens every cupboard.", "Mary watches from the doorway."},
		Characters: []string{"JOHN", "MARY"},
	}
}

func TestBuildDescription(t *testing.T) {
	scene := sampleScene()
	scene.CameraDirections = []string{"slow push in"}
	scene.LightingDirections = []string{"morning haze"}

	desc := BuildDescription(scene, "realistic")

	assert.True(t, strings.HasPrefix(desc, "photorealistic"))
	assert.Contains(t, desc, "interior scene in KITCHEN")
	assert.Contains(t, desc, "camera: slow push in")
	assert.Contains(t, desc, "lighting: morning haze")
	assert.Contains(t, desc, "featuring JOHN, MARY")
	assert.LessOrEqual(t, len(desc), 1000)
}

func TestBuildDescriptionUnknownStyleFallsBack(t *testing.T) {
	desc := BuildDescription(sampleScene(), "vapor-wave")
	assert.True(t, strings.HasPrefix(desc, "cinematic"))
}

func TestBuildDescriptionCapsLength(t *testing.T) {
	scene := sampleScene()
	scene.Actions = []string{strings.Repeat("a very long action line ", 100)}

	desc := BuildDescription(scene, "cinematic")
	assert.Len(t, desc, 1000)
}

func TestBuildDescriptionTruncatesOnRuneBoundary(t *testing.T) {
	scene := sampleScene()
	scene.Actions = []string{strings.Repeat("über die Straße läuft er ", 100)}

	desc := BuildDescription(scene, "cinematic")
	assert.LessOrEqual(t, len(desc), 1000)
	assert.True(t, utf8.ValidString(desc))
}

func TestDescribeScenesPreservesOrder(t *testing.T) {
	scenes := []types.Scene{sampleScene(), sampleScene()}
	scenes[1].Number = 3
	scenes[1].Location = "GARDEN"

	out := DescribeScenes(scenes, "cinematic")

	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].Number)
	assert.Equal(t, 3, out[1].Number)
	assert.Contains(t, out[1].VisualDescription, "GARDEN")
	// Input scenes stay untouched.
	assert.Empty(t, scenes[0].VisualDescription)
}

func TestExtractCharacters(t *testing.T) {
	scenes := []types.Scene{
		{
			Number:     1,
			Characters: []string{"JOHN"},
			Dialogues:  []types.Dialogue{{Character: "JOHN", Text: "Hello."}},
		},
		{
			Number:     2,
			Characters: []string{"JOHN", "MARY"},
			Dialogues: []types.Dialogue{
				{Character: "MARY", Text: "Back again?"},
				{Character: "JOHN", Text: "Always."},
			},
		},
	}

	profiles := ExtractCharacters(scenes)

	require.Len(t, profiles, 2)
	assert.Equal(t, "JOHN", profiles[0].Name)
	assert.Equal(t, []int{1, 2}, profiles[0].Scenes)
	assert.Equal(t, 2, profiles[0].DialogueCount)
	assert.Equal(t, "MARY", profiles[1].Name)
	assert.Equal(t, []int{2}, profiles[1].Scenes)
	assert.Equal(t, 1, profiles[1].DialogueCount)
}

func TestAssignVoicesStable(t *testing.T) {
	profiles := []Profile{{Name: "ANNA"}, {Name: "BEN"}, {Name: "CARL"}}

	first := AssignVoices(profiles)
	second := AssignVoices(profiles)

	assert.Equal(t, first, second)
	assert.Equal(t, "alloy", first["ANNA"])
	assert.Equal(t, "echo", first["BEN"])
	assert.Equal(t, "fable", first["CARL"])
}

func TestAssignVoicesWrapsAround(t *testing.T) {
	profiles := make([]Profile, 8)
	for i := range profiles {
		profiles[i] = Profile{Name: string(rune('A' + i))}
	}

	mapping := AssignVoices(profiles)

	assert.Len(t, mapping, 8)
	assert.Equal(t, mapping["A"], mapping["G"])
}

func TestAnalyzeCameraExplicitDirectionsWin(t *testing.T) {
	scene := sampleScene()
	scene.CameraDirections = []string{"handheld tracking shot"}

	setup := AnalyzeCamera(scene)

	assert.Equal(t, []string{"handheld tracking shot"}, setup.Shots)
	assert.Empty(t, setup.Movements)
}

func TestAnalyzeCameraHeuristics(t *testing.T) {
	scene := sampleScene()
	scene.Number = 1
	scene.Dialogues = append(scene.Dialogues, types.Dialogue{Character: "JOHN", Text: "Really?"})

	setup := AnalyzeCamera(scene)

	assert.Contains(t, setup.Shots, "wide establishing shot")
	assert.Contains(t, setup.Shots, "medium shot")
	assert.Contains(t, setup.Shots, "close-up shot")
	assert.Contains(t, setup.Movements, "panning shot")
}

func TestAnalyzeLighting(t *testing.T) {
	scene := sampleScene()
	assert.Equal(t, "soft", AnalyzeLighting(scene).Type)

	scene.Setting = types.SettingExterior
	assert.Equal(t, "natural", AnalyzeLighting(scene).Type)

	scene.Actions = []string{"A shadow moves across the wall at night."}
	assert.Equal(t, "dramatic", AnalyzeLighting(scene).Type)

	scene.Actions = []string{"They gather around a warm fire."}
	assert.Equal(t, "candlelight", AnalyzeLighting(scene).Type)

	scene.LightingDirections = []string{"strobe", "red wash"}
	setup := AnalyzeLighting(scene)
	assert.Equal(t, "custom", setup.Type)
	assert.Equal(t, "strobe, red wash", setup.Description)
}

func TestAnalyzeSound(t *testing.T) {
	scene := sampleScene()
	scene.SoundDirections = []string{"kettle whistling"}

	design := AnalyzeSound(scene)

	assert.Equal(t, []string{"kettle whistling"}, design.Effects)
	assert.Equal(t, []string{"room tone", "clock ticking", "distant sounds"}, design.Ambient)
	assert.Equal(t, "dramatic orchestral score", design.Music)

	scene.Dialogues = append(scene.Dialogues, types.Dialogue{Character: "JOHN", Text: "Well."})
	assert.Equal(t, "emotional piano melody", AnalyzeSound(scene).Music)

	scene.Dialogues = scene.Dialogues[:1]
	scene.Actions = append(scene.Actions, "A third thing happens suddenly.")
	assert.Equal(t, "intense action music", AnalyzeSound(scene).Music)
}
