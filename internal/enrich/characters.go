package enrich

import (
	"log"
	"sort"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// Profile tracks one character across the whole film
type Profile struct {
	Name          string `json:"name"`
	Scenes        []int  `json:"scenes"`
	DialogueCount int    `json:"dialogue_count"`
}

// ExtractCharacters collects every character appearing in the scenes
// into a profile list sorted by name.
func ExtractCharacters(scenes []types.Scene) []Profile {
	profiles := make(map[string]*Profile)

	for _, scene := range scenes {
		for _, name := range scene.Characters {
			p, ok := profiles[name]
			if !ok {
				p = &Profile{Name: name}
				profiles[name] = p
			}
			p.Scenes = append(p.Scenes, scene.Number)
			for _, d := range scene.Dialogues {
				if d.Character == name {
					p.DialogueCount++
				}
			}
		}
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Profile, 0, len(profiles))
	for _, name := range names {
		out = append(out, *profiles[name])
	}

	log.Printf("Extracted %d characters", len(out))
	return out
}
