package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

func TestParseSingleScene(t *testing.T) {
	scenes := Parse("INT. KITCHEN\nJohn enters the room quietly.\nJOHN\nWhere is the coffee?")

	require.Len(t, scenes, 1)
	scene := scenes[0]
	assert.Equal(t, 1, scene.Number)
	assert.Equal(t, types.SettingInterior, scene.Setting)
	assert.Equal(t, "KITCHEN", scene.Location)
	assert.Equal(t, []string{"John enters the room quietly."}, scene.Actions)
	require.Len(t, scene.Dialogues, 1)
	assert.Equal(t, "JOHN", scene.Dialogues[0].Character)
	assert.Equal(t, "Where is the coffee?", scene.Dialogues[0].Text)
	assert.Equal(t, []string{"JOHN"}, scene.Characters)
}

func TestParseMultipleScenes(t *testing.T) {
	text := "INT. KITCHEN\nJohn pours himself a cup of coffee.\nJOHN\nGood morning.\n" +
		"EXT. GARDEN\nMary waters the roses in silence.\nMARY\nWhat a day.\n"

	scenes := Parse(text)

	require.Len(t, scenes, 2)
	assert.Equal(t, 1, scenes[0].Number)
	assert.Equal(t, 2, scenes[1].Number)
	assert.Equal(t, types.SettingInterior, scenes[0].Setting)
	assert.Equal(t, types.SettingExterior, scenes[1].Setting)
	assert.Equal(t, "GARDEN", scenes[1].Location)

	// Scene content never leaks across the boundary.
	assert.Equal(t, []string{"JOHN"}, scenes[0].Characters)
	assert.Equal(t, []string{"MARY"}, scenes[1].Characters)
	require.Len(t, scenes[0].Actions, 1)
	require.Len(t, scenes[1].Actions, 1)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("Just some notes without any scene heading."))
	assert.Empty(t, Parse("interior thoughts and ext erior words"))
}

func TestParseSceneNumbersAreDense(t *testing.T) {
	text := ""
	for i := 0; i < 5; i++ {
		text += fmt.Sprintf("INT. ROOM %d\nSomebody walks through the room.\n", i)
	}

	scenes := Parse(text)

	require.Len(t, scenes, 5)
	for i, scene := range scenes {
		assert.Equal(t, i+1, scene.Number)
	}
}

func TestParseDirectives(t *testing.T) {
	text := "EXT. STREET - NIGHT\n" +
		"CAMERA: slow dolly forward\n" +
		"LIGHT: flickering neon signs\n" +
		"SOUND: distant sirens\n" +
		"KAMERA: crane shot from above\n" +
		"LICHT: harte Schatten\n" +
		"TON: Regen auf Blech\n" +
		"A stranger crosses the empty street.\n"

	scenes := Parse(text)

	require.Len(t, scenes, 1)
	scene := scenes[0]
	assert.Equal(t, "STREET - NIGHT", scene.Location)
	assert.Equal(t, []string{"slow dolly forward", "crane shot from above"}, scene.CameraDirections)
	assert.Equal(t, []string{"flickering neon signs", "harte Schatten"}, scene.LightingDirections)
	assert.Equal(t, []string{"distant sirens", "Regen auf Blech"}, scene.SoundDirections)
	assert.Equal(t, []string{"A stranger crosses the empty street."}, scene.Actions)
	assert.Empty(t, scene.Dialogues)
}

func TestParseDirectivePriorityOverCue(t *testing.T) {
	// An upper-case directive line must stay a directive, never become
	// a speaker cue or an action.
	text := "INT. LAB\nCAMERA: STATIC WIDE SHOT\nThe centrifuge hums in the corner.\n"

	scenes := Parse(text)

	require.Len(t, scenes, 1)
	scene := scenes[0]
	assert.Equal(t, []string{"STATIC WIDE SHOT"}, scene.CameraDirections)
	assert.Empty(t, scene.Dialogues)
	assert.Equal(t, []string{"The centrifuge hums in the corner."}, scene.Actions)
}

func TestParseDanglingSpeakerCue(t *testing.T) {
	scenes := Parse("INT. HALLWAY\nFootsteps echo down the corridor.\nJOHN")

	require.Len(t, scenes, 1)
	assert.Empty(t, scenes[0].Dialogues)
	assert.Empty(t, scenes[0].Characters)
}

func TestParseCueBeforeBlankLineKeepsActionSeparate(t *testing.T) {
	// The dialogue text is the immediate next line, blank or not; a
	// cue must not swallow content from beyond an empty line.
	scenes := Parse("INT. HALLWAY\nCUT TO:\n\nThe hallway stretches on endlessly.\n")

	require.Len(t, scenes, 1)
	scene := scenes[0]
	require.Len(t, scene.Dialogues, 1)
	assert.Equal(t, "CUT TO:", scene.Dialogues[0].Character)
	assert.Equal(t, "", scene.Dialogues[0].Text)
	assert.Equal(t, []string{"The hallway stretches on endlessly."}, scene.Actions)
}

func TestParseDialogueLineNotReusedAsAction(t *testing.T) {
	scenes := Parse("INT. KITCHEN\nJOHN\nThis line is clearly long enough to be an action.\n")

	require.Len(t, scenes, 1)
	scene := scenes[0]
	require.Len(t, scene.Dialogues, 1)
	assert.Equal(t, "This line is clearly long enough to be an action.", scene.Dialogues[0].Text)
	assert.Empty(t, scene.Actions)
}

func TestParseShortLinesIgnored(t *testing.T) {
	scenes := Parse("INT. OFFICE\nok\nyes indeed\nAB\n")

	require.Len(t, scenes, 1)
	scene := scenes[0]
	assert.Empty(t, scene.Actions)
	assert.Empty(t, scene.Dialogues)
}

func TestParseCharactersMatchDialogueSpeakers(t *testing.T) {
	text := "INT. DINER\n" +
		"JOHN\nPass the sugar, please.\n" +
		"MARY\nGet it yourself.\n" +
		"JOHN\nFair enough, I suppose.\n"

	scenes := Parse(text)

	require.Len(t, scenes, 1)
	scene := scenes[0]
	assert.Equal(t, []string{"JOHN", "MARY"}, scene.Characters)

	speakers := make(map[string]bool)
	for _, d := range scene.Dialogues {
		speakers[d.Character] = true
	}
	assert.Len(t, speakers, len(scene.Characters))
	for _, name := range scene.Characters {
		assert.True(t, speakers[name])
	}
}

func TestParseMissingLocation(t *testing.T) {
	scenes := Parse("INT.\nSomeone shuffles around in the dark.\n")

	require.Len(t, scenes, 1)
	assert.Equal(t, "Unknown", scenes[0].Location)
}

func TestParseMarkerIsCaseSensitive(t *testing.T) {
	assert.Empty(t, Parse("int. kitchen\nnothing to see here at all\n"))
}

func TestParseTextBeforeFirstMarkerDiscarded(t *testing.T) {
	text := "FADE IN:\nA title card rolls over black.\nINT. CELLAR\nDust hangs in the stale air.\n"

	scenes := Parse(text)

	require.Len(t, scenes, 1)
	assert.Equal(t, "CELLAR", scenes[0].Location)
	assert.Equal(t, []string{"Dust hangs in the stale air."}, scenes[0].Actions)
}
