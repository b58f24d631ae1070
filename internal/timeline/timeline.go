package timeline

import (
	"log"
	"strings"

	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// Rough per-line duration estimates in seconds
const (
	secondsPerDialogue = 3
	secondsPerAction   = 2
	minSceneDuration   = 5
)

// Build lays the scenes out on a contiguous timeline. Scene durations
// are estimated from dialogue and action counts with a floor of five
// seconds.
func Build(scenes []types.Scene) []types.TimelineEntry {
	entries := make([]types.TimelineEntry, 0, len(scenes))
	current := 0.0

	for _, scene := range scenes {
		duration := float64(len(scene.Dialogues)*secondsPerDialogue + len(scene.Actions)*secondsPerAction)
		if duration < minSceneDuration {
			duration = minSceneDuration
		}

		entries = append(entries, types.TimelineEntry{
			SceneNumber: scene.Number,
			StartTime:   current,
			Duration:    duration,
			EndTime:     current + duration,
			VideoURL:    scene.VideoURL,
			Transition:  "fade",
		})
		current += duration
	}

	log.Printf("Created timeline with %d scenes, total duration: %.0fs", len(entries), current)
	return entries
}

// Export builds the final film summary from rendered scenes and the
// timeline. Scenes without a usable artifact are left out of the
// download list but still counted.
func Export(scenes []types.Scene, entries []types.TimelineEntry, resolution string) (*types.ExportInfo, error) {
	durations := make(map[int]float64, len(entries))
	total := 0.0
	for _, entry := range entries {
		durations[entry.SceneNumber] = entry.Duration
		total += entry.Duration
	}

	videos := make([]types.SceneVideo, 0, len(scenes))
	urls := make([]string, 0, len(scenes))
	var totalSize int64

	for _, scene := range scenes {
		totalSize += scene.FileSize
		if scene.VideoURL == "" || strings.HasPrefix(scene.VideoURL, "placeholder") {
			continue
		}
		videos = append(videos, types.SceneVideo{
			SceneNumber: scene.Number,
			VideoURL:    scene.VideoURL,
			Duration:    durations[scene.Number],
		})
		urls = append(urls, scene.VideoURL)
	}

	info := &types.ExportInfo{
		Status:        "completed",
		StorageType:   "remote_urls",
		SceneVideos:   videos,
		TotalScenes:   len(scenes),
		TotalDuration: total,
		Format:        "MP4",
		Resolution:    resolution,
		DownloadURLs:  urls,
		TotalFileSize: totalSize,
	}

	log.Printf("Film export completed: %d scenes available", len(videos))
	return info, nil
}
