package enrich

import "log"

// availableVoices are the TTS voices dialogue can be synthesized with.
var availableVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

// DefaultVoice is used for characters without an assignment
const DefaultVoice = "alloy"

// AssignVoices maps each character to a voice, round-robin over the
// available voices in profile order so the mapping is stable across
// runs of the same screenplay.
func AssignVoices(profiles []Profile) map[string]string {
	mapping := make(map[string]string, len(profiles))
	for i, p := range profiles {
		mapping[p.Name] = availableVoices[i%len(availableVoices)]
	}
	log.Printf("Assigned voices to %d characters", len(mapping))
	return mapping
}
