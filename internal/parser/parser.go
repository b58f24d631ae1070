package parser

import (
	"log"
	"sort"
	"strings"
	"unicode"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// Scene heading markers. Matching is case-sensitive and the token must
// be followed by whitespace, so "INTERIOR" or "int." never open a scene.
const (
	markerInterior = "INT."
	markerExterior = "EXT."
)

// Directive prefixes, matched case-insensitively at the start of a line.
// Each marker has a German alias alongside the English one.
var (
	cameraPrefixes   = []string{"CAMERA:", "KAMERA:"}
	lightingPrefixes = []string{"LIGHT:", "LICHT:"}
	soundPrefixes    = []string{"SOUND:", "TON:"}
)

// Parse converts screenplay text into an ordered list of scenes. It is
// a pure function and never fails: malformed input degrades to fewer
// scenes, and text with no heading markers yields an empty list.
func Parse(text string) []types.Scene {
	var scenes []types.Scene

	for _, seg := range splitScenes(text) {
		scene := parseScene(seg.setting, seg.body)
		scene.Number = len(scenes) + 1
		scenes = append(scenes, scene)
	}

	log.Printf("Parsed %d scenes from screenplay", len(scenes))
	return scenes
}

type segment struct {
	setting string
	body    string
}

// splitScenes cuts the text at every heading marker. Anything before
// the first marker is discarded.
func splitScenes(text string) []segment {
	var segments []segment

	pos, setting := nextMarker(text)
	if pos < 0 {
		return nil
	}
	rest := text[pos:]

	for {
		// Skip past the marker token to the scene body.
		body := rest[len(markerInterior):]
		next, nextSetting := nextMarker(body)
		if next < 0 {
			segments = append(segments, segment{setting: setting, body: body})
			return segments
		}
		segments = append(segments, segment{setting: setting, body: body[:next]})
		rest = body[next:]
		setting = nextSetting
	}
}

// nextMarker finds the earliest heading marker in text, returning its
// byte offset and the setting it denotes, or -1 when none remains.
func nextMarker(text string) (int, string) {
	pos := -1
	setting := ""
	if i := findToken(text, markerInterior); i >= 0 {
		pos, setting = i, types.SettingInterior
	}
	if i := findToken(text, markerExterior); i >= 0 && (pos < 0 || i < pos) {
		pos, setting = i, types.SettingExterior
	}
	return pos, setting
}

// findToken locates token in text where it is immediately followed by
// whitespace.
func findToken(text, token string) int {
	offset := 0
	for {
		i := strings.Index(text[offset:], token)
		if i < 0 {
			return -1
		}
		abs := offset + i
		rest := text[abs+len(token):]
		if len(rest) > 0 && isSpace(rest[0]) {
			return abs
		}
		offset = abs + len(token)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// parseScene classifies the body of a single scene. Classification
// priority is fixed: camera > lighting > sound > dialogue cue > action.
func parseScene(setting, body string) types.Scene {
	scene := types.Scene{
		Setting:            setting,
		Dialogues:          []types.Dialogue{},
		Actions:            []string{},
		CameraDirections:   []string{},
		LightingDirections: []string{},
		SoundDirections:    []string{},
		Characters:         []string{},
	}

	lines := strings.Split(body, "\n")

	scene.Location = strings.TrimSpace(lines[0])
	if scene.Location == "" {
		scene.Location = "Unknown"
	}

	seen := make(map[string]bool)

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if text, ok := matchDirective(line, cameraPrefixes); ok {
			scene.CameraDirections = append(scene.CameraDirections, text)
			continue
		}
		if text, ok := matchDirective(line, lightingPrefixes); ok {
			scene.LightingDirections = append(scene.LightingDirections, text)
			continue
		}
		if text, ok := matchDirective(line, soundPrefixes); ok {
			scene.SoundDirections = append(scene.SoundDirections, text)
			continue
		}

		// A speaker cue takes the immediate next line as its dialogue
		// text, even a blank one. A cue at the end of the scene
		// produces no dialogue entry.
		if isSpeakerCue(line) {
			if i+1 >= len(lines) {
				continue
			}
			scene.Dialogues = append(scene.Dialogues, types.Dialogue{
				Character: line,
				Text:      strings.TrimSpace(lines[i+1]),
			})
			seen[line] = true
			i++
			continue
		}

		if len(line) > 10 {
			scene.Actions = append(scene.Actions, line)
		}
	}

	for name := range seen {
		scene.Characters = append(scene.Characters, name)
	}
	sort.Strings(scene.Characters)

	return scene
}

// matchDirective checks line against a set of directive prefixes and
// returns the trimmed text after the prefix.
func matchDirective(line string, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		if len(line) >= len(prefix) && strings.EqualFold(line[:len(prefix)], prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", false
}

// isSpeakerCue reports whether line looks like a character name: fully
// upper-case with at least one letter, and longer than two characters.
func isSpeakerCue(line string) bool {
	if len(line) <= 2 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
