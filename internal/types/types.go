package types

import "time"

// Job status constants
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Scene setting constants
const (
	SettingInterior = "INTERIOR"
	SettingExterior = "EXTERIOR"
)

// Per-scene render status constants
const (
	RenderCompleted = "completed"
	RenderFailed    = "failed"
)

// Quality constants for video rendering
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
	QualityUltra  = "ultra"
)

// Qualities lists the supported render qualities
var Qualities = []string{QualityLow, QualityMedium, QualityHigh, QualityUltra}

// Styles lists the supported film styles
var Styles = []string{
	"cinematic", "realistic", "animated", "noir", "scifi",
	"horror", "fantasy", "documentary", "anime",
}

// Dialogue is a single character line in a scene
type Dialogue struct {
	Character string `json:"character"`
	Text      string `json:"text"`
}

// CameraSetup describes the camera work determined for a scene
type CameraSetup struct {
	Shots     []string `json:"shots"`
	Movements []string `json:"movements"`
	Angles    []string `json:"angles"`
}

// LightingSetup describes the lighting determined for a scene
type LightingSetup struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Mood        string `json:"mood,omitempty"`
}

// SoundDesign describes effects, music and ambience for a scene
type SoundDesign struct {
	Effects []string `json:"effects"`
	Music   string   `json:"music"`
	Ambient []string `json:"ambient"`
}

// AudioClip is one synthesized dialogue line
type AudioClip struct {
	Character string `json:"character"`
	Text      string `json:"text"`
	Voice     string `json:"voice"`
	SizeBytes int    `json:"size_bytes,omitempty"`
}

// Scene is one parsed screenplay unit plus the fields added by
// enrichment stages. The parser only fills the structural fields;
// everything from VisualDescription down is stage-owned.
type Scene struct {
	Number             int        `json:"scene_number"`
	Setting            string     `json:"type"`
	Location           string     `json:"location"`
	Dialogues          []Dialogue `json:"dialogs"`
	Actions            []string   `json:"actions"`
	CameraDirections   []string   `json:"camera"`
	LightingDirections []string   `json:"lighting"`
	SoundDirections    []string   `json:"sound"`
	Characters         []string   `json:"characters"`

	VisualDescription string         `json:"visual_description,omitempty"`
	CameraSetup       *CameraSetup   `json:"camera_setup,omitempty"`
	LightingSetup     *LightingSetup `json:"lighting_setup,omitempty"`
	SoundDesign       *SoundDesign   `json:"sound_design,omitempty"`
	AudioClips        []AudioClip    `json:"audio_clips,omitempty"`
	VideoURL          string         `json:"video_url,omitempty"`
	GenerationTime    float64        `json:"generation_time,omitempty"`
	FileSize          int64          `json:"file_size,omitempty"`
	Quality           string         `json:"quality,omitempty"`
	IsDemo            bool           `json:"is_demo,omitempty"`
	RenderStatus      string         `json:"render_status,omitempty"`
	RenderError       string         `json:"render_error,omitempty"`
}

// TimelineEntry places one scene on the film timeline
type TimelineEntry struct {
	SceneNumber int     `json:"scene_number"`
	StartTime   float64 `json:"start_time"`
	Duration    float64 `json:"duration"`
	EndTime     float64 `json:"end_time"`
	VideoURL    string  `json:"video_url"`
	Transition  string  `json:"transition"`
}

// SceneVideo is one downloadable scene artifact in the export summary
type SceneVideo struct {
	SceneNumber int     `json:"scene_number"`
	VideoURL    string  `json:"video_url"`
	Duration    float64 `json:"duration"`
}

// ExportInfo summarizes the finished film
type ExportInfo struct {
	Status        string       `json:"status"`
	StorageType   string       `json:"storage_type"`
	SceneVideos   []SceneVideo `json:"scene_videos"`
	TotalScenes   int          `json:"total_scenes"`
	TotalDuration float64      `json:"total_duration"`
	Format        string       `json:"format"`
	Resolution    string       `json:"resolution"`
	DownloadURLs  []string     `json:"download_urls"`
	TotalFileSize int64        `json:"total_file_size,omitempty"`
}

// Job is one film generation run. The pipeline owns the document and
// replaces it in the store after every stage; readers get snapshots.
type Job struct {
	ID                 string          `json:"id"`
	Screenplay         string          `json:"screenplay"`
	Style              string          `json:"style"`
	Quality            string          `json:"quality"`
	Status             string          `json:"status"`
	Progress           int             `json:"progress"`
	Scenes             []Scene         `json:"scenes"`
	Timeline           []TimelineEntry `json:"timeline,omitempty"`
	ExportInfo         *ExportInfo     `json:"export_info,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	StartedAt          *time.Time      `json:"started_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	GenerationDuration float64         `json:"generation_duration,omitempty"`
	TotalFileSize      int64           `json:"total_file_size,omitempty"`
	Error              string          `json:"error,omitempty"`
}

// Terminal reports whether the job reached a final status
func (j *Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// ValidQuality reports whether q is a supported render quality
func ValidQuality(q string) bool {
	for _, known := range Qualities {
		if q == known {
			return true
		}
	}
	return false
}
