package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/codebuildervaibhav/film-generator/internal/enrich"
	"github.com/codebuildervaibhav/film-generator/internal/parser"
	"github.com/codebuildervaibhav/film-generator/internal/render"
	"github.com/codebuildervaibhav/film-generator/internal/storage"
	"github.com/codebuildervaibhav/film-generator/internal/timeline"
	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// Progress milestones per stage. Progress only moves forward and
// reaches 100 exclusively on successful completion.
const (
	progressParse      = 10
	progressDescribe   = 20
	progressCharacters = 30
	progressCamera     = 40
	progressLighting   = 50
	progressSound      = 60
	progressVoices     = 70
	progressRender     = 80
	progressTimeline   = 90
	progressExport     = 95
	progressDone       = 100
)

// Synthesizer generates audio clips for a scene's dialogue. Per-line
// failures are handled inside and never surface as errors.
type Synthesizer interface {
	SynthesizeScene(ctx context.Context, scene types.Scene, voices map[string]string) []types.AudioClip
}

// Renderer generates the video artifact for one scene. An error means
// the scene has no artifact at all, including a fallback.
type Renderer interface {
	RenderScene(ctx context.Context, scene types.Scene, style, quality string) (render.Result, error)
}

// Pipeline drives one job through every enrichment stage in order,
// persisting the job document after each stage. Collaborators are
// injected at construction; the pure stages default to the enrich and
// timeline packages and are swappable in tests.
type Pipeline struct {
	store storage.Store
	synth Synthesizer
	video Renderer

	parse             func(string) []types.Scene
	describe          func([]types.Scene, string) []types.Scene
	extractCharacters func([]types.Scene) []enrich.Profile
	assignVoices      func([]enrich.Profile) map[string]string
	applyCamera       func([]types.Scene) []types.Scene
	applyLighting     func([]types.Scene) []types.Scene
	applySound        func([]types.Scene) []types.Scene
	buildTimeline     func([]types.Scene) []types.TimelineEntry
	export            func([]types.Scene, []types.TimelineEntry, string) (*types.ExportInfo, error)
}

// New creates a pipeline with the default stage implementations
func New(store storage.Store, synth Synthesizer, video Renderer) *Pipeline {
	return &Pipeline{
		store:             store,
		synth:             synth,
		video:             video,
		parse:             parser.Parse,
		describe:          enrich.DescribeScenes,
		extractCharacters: enrich.ExtractCharacters,
		assignVoices:      enrich.AssignVoices,
		applyCamera:       enrich.ApplyCamera,
		applyLighting:     enrich.ApplyLighting,
		applySound:        enrich.ApplySound,
		buildTimeline:     timeline.Build,
		export:            timeline.Export,
	}
}

// Run processes the job with the given id to a terminal status. It
// never panics out and never returns an error to the caller; failures
// are recorded on the job document.
func (p *Pipeline) Run(ctx context.Context, jobID string) {
	job, err := p.store.Get(jobID)
	if err != nil {
		log.Printf("Job %s: cannot start pipeline: %v", jobID, err)
		return
	}

	if err := p.process(ctx, job); err != nil {
		p.fail(job, err)
	}
}

// process runs every stage in the fixed order. Any returned error is
// job-fatal; scene-local failures are absorbed inside their stage.
func (p *Pipeline) process(ctx context.Context, job *types.Job) error {
	log.Printf("Starting film generation for job %s", job.ID)

	if job.StartedAt == nil {
		now := time.Now().UTC()
		job.StartedAt = &now
	}

	// Stage 1: parse screenplay into scenes.
	job.Scenes = p.parse(job.Screenplay)
	if err := p.advance(job, progressParse, "Parsing screenplay"); err != nil {
		return err
	}

	// Stage 2: build visual descriptions.
	job.Scenes = p.describe(job.Scenes, job.Style)
	if err := p.advance(job, progressDescribe, "Building scene descriptions"); err != nil {
		return err
	}

	// Stage 3: extract characters and assign voices.
	profiles := p.extractCharacters(job.Scenes)
	voices := p.assignVoices(profiles)
	if err := p.advance(job, progressCharacters, "Analyzing characters"); err != nil {
		return err
	}

	// Stage 4: camera setup.
	job.Scenes = p.applyCamera(job.Scenes)
	if err := p.advance(job, progressCamera, "Setting up cameras"); err != nil {
		return err
	}

	// Stage 5: lighting.
	job.Scenes = p.applyLighting(job.Scenes)
	if err := p.advance(job, progressLighting, "Configuring lighting"); err != nil {
		return err
	}

	// Stage 6: sound design.
	job.Scenes = p.applySound(job.Scenes)
	if err := p.advance(job, progressSound, "Designing sound"); err != nil {
		return err
	}

	// Stage 7: synthesize dialogue audio. Per-line failures are
	// scene-local and already absorbed by the synthesizer.
	job.Scenes = p.synthesizeScenes(ctx, job.Scenes, voices)
	if err := p.advance(job, progressVoices, "Generating voices"); err != nil {
		return err
	}

	// Stage 8: render scene videos. A failed scene keeps its failure
	// marker and the pipeline continues.
	job.Scenes = p.renderScenes(ctx, job.Scenes, job.Style, job.Quality)
	job.TotalFileSize = totalFileSize(job.Scenes)
	if err := p.advance(job, progressRender, "Rendering scene videos"); err != nil {
		return err
	}

	// Stage 9: timeline.
	job.Timeline = p.buildTimeline(job.Scenes)
	if err := p.advance(job, progressTimeline, "Creating timeline"); err != nil {
		return err
	}

	// Stage 10: export. Export errors are job-fatal.
	info, err := p.export(job.Scenes, job.Timeline, render.ResolutionLabel(job.Quality))
	if err != nil {
		return fmt.Errorf("export failed: %v", err)
	}
	info.TotalFileSize = job.TotalFileSize
	job.ExportInfo = info
	if err := p.advance(job, progressExport, "Exporting film"); err != nil {
		return err
	}

	p.complete(job)
	return nil
}

// synthesizeScenes attaches audio clips to every scene in order.
func (p *Pipeline) synthesizeScenes(ctx context.Context, scenes []types.Scene, voices map[string]string) []types.Scene {
	out := make([]types.Scene, len(scenes))
	for i, scene := range scenes {
		scene.AudioClips = p.synth.SynthesizeScene(ctx, scene, voices)
		out[i] = scene
	}
	return out
}

// renderScenes renders every scene in order. Rendering failures are
// scene-local: the scene is marked failed and its siblings keep their
// results.
func (p *Pipeline) renderScenes(ctx context.Context, scenes []types.Scene, style, quality string) []types.Scene {
	out := make([]types.Scene, len(scenes))
	for i, scene := range scenes {
		result, err := p.video.RenderScene(ctx, scene, style, quality)
		if err != nil {
			log.Printf("Failed to render scene %d: %v", scene.Number, err)
			scene.RenderStatus = types.RenderFailed
			scene.RenderError = err.Error()
			out[i] = scene
			continue
		}
		scene.VideoURL = result.VideoURL
		scene.GenerationTime = result.GenerationTime
		scene.FileSize = result.FileSize
		scene.Quality = result.Quality
		scene.IsDemo = result.IsDemo
		scene.RenderStatus = types.RenderCompleted
		out[i] = scene
	}
	return out
}

// advance moves progress to the stage milestone (never backwards) and
// persists the job. A failed persist is job-fatal: the stage output
// would otherwise be lost silently.
func (p *Pipeline) advance(job *types.Job, progress int, stage string) error {
	if progress > job.Progress {
		job.Progress = progress
	}
	job.UpdatedAt = time.Now().UTC()
	if err := p.store.Put(job); err != nil {
		return fmt.Errorf("failed to persist job after stage %q: %v", stage, err)
	}
	log.Printf("Job %s: %d%% - %s", job.ID, job.Progress, stage)
	return nil
}

// complete marks the job successful. CompletedAt is set exactly once.
func (p *Pipeline) complete(job *types.Job) {
	now := time.Now().UTC()
	job.Status = types.StatusCompleted
	job.Progress = progressDone
	job.CompletedAt = &now
	job.UpdatedAt = now
	if job.StartedAt != nil {
		job.GenerationDuration = now.Sub(*job.StartedAt).Seconds()
	}

	if err := p.store.Put(job); err != nil {
		log.Printf("Job %s: failed to persist completion: %v", job.ID, err)
		return
	}
	log.Printf("Film generation completed for job %s in %.2fs", job.ID, job.GenerationDuration)
}

// fail marks the job failed, freezing progress at the last milestone.
// The persist here is best-effort; there is nothing left to do if the
// store is down.
func (p *Pipeline) fail(job *types.Job, cause error) {
	log.Printf("Job %s: film generation failed: %v", job.ID, cause)

	now := time.Now().UTC()
	job.Status = types.StatusFailed
	job.Error = cause.Error()
	if job.CompletedAt == nil {
		job.CompletedAt = &now
	}
	job.UpdatedAt = now

	if err := p.store.Put(job); err != nil {
		log.Printf("Job %s: failed to persist failure: %v", job.ID, err)
	}
}

func totalFileSize(scenes []types.Scene) int64 {
	var total int64
	for _, scene := range scenes {
		total += scene.FileSize
	}
	return total
}
