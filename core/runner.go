package core

import (
	"sync/atomic"
	"time"

	"context"

	apperrors "github.com/labimaging/imagebatch/errors"
	"github.com/labimaging/imagebatch/utils"
)

// Runner is the batch orchestrator.  One user-triggered run processes
// the whole batch sequentially; each run is independent and stateless.
type Runner struct {
	registry Registry
	hooks    []Hook
	logger   Logger

	// Atomic counters for lightweight internal stats.
	processedCount int64
	skippedCount   int64
}

// NewRunner creates a Runner bound to the given registry.
func NewRunner(reg Registry) *Runner {
	return &Runner{registry: reg}
}

// SetLogger attaches a structured logger.
func (r *Runner) SetLogger(l Logger) { r.logger = l }

// AddHook registers a pipeline hook.
func (r *Runner) AddHook(h Hook) { r.hooks = append(r.hooks, h) }

// Registry returns the underlying registry so callers can register
// codecs and exporters after construction.
func (r *Runner) Registry() Registry { return r.registry }

// ProcessOne reads one source, runs the steps, and returns the final
// ImageData with per-step timings.
func (r *Runner) ProcessOne(ctx context.Context, src Source, steps ...Step) (*ImageData, map[string]time.Duration, error) {
	if len(steps) == 0 {
		return nil, nil, apperrors.New(apperrors.CategoryPipeline, "run", apperrors.ErrEmptyInput)
	}

	buf, err := utils.DrainReader(ctx, src.Reader, 0)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CategoryDecode, "run.drain", err)
	}
	rawBytes := utils.CloneBytes(buf.Bytes())
	utils.ReleaseBuffer(buf)

	img := &ImageData{
		Name:   src.Name,
		Data:   rawBytes,
		Format: Format(utils.DetectFormat(rawBytes)),
	}

	timings := make(map[string]time.Duration, len(steps))
	current := img
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, timings, apperrors.Wrap(apperrors.CategoryPipeline, step.Name(), err)
		}
		r.notifyBefore(ctx, step.Name(), current)
		t := time.Now()
		next, stepErr := step.Execute(ctx, current)
		elapsed := time.Since(t)
		timings[step.Name()] += elapsed
		r.notifyAfter(ctx, step.Name(), next, elapsed, stepErr)
		if stepErr != nil {
			return nil, timings, stepErr
		}
		current = next
	}
	return current, timings, nil
}

// RunBatch processes every source in order through the given steps.
// A source that fails to decode or process is skipped with a warning;
// the batch never aborts on a per-file error.
func (r *Runner) RunBatch(ctx context.Context, sources []Source, steps ...Step) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{
		StepTimings: make(map[string]time.Duration, len(steps)),
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, apperrors.Wrap(apperrors.CategoryPipeline, "batch", err)
		}

		out, timings, err := r.ProcessOne(ctx, src, steps...)
		for name, d := range timings {
			result.StepTimings[name] += d
		}
		if err != nil {
			atomic.AddInt64(&r.skippedCount, 1)
			result.AddWarning(WarnDecodeSkipped, src.Name, err.Error())
			if r.logger != nil {
				r.logger.Warn("batch.skip", "file", src.Name, "error", err.Error())
			}
			continue
		}

		atomic.AddInt64(&r.processedCount, 1)
		b := out.Image.Bounds()
		result.Images = append(result.Images, ProcessedImage{
			Name:       out.Name,
			OrigWidth:  out.OrigWidth,
			OrigHeight: out.OrigHeight,
			Image:      out.Image,
			OutWidth:   b.Dx(),
			OutHeight:  b.Dy(),
			Scale:      ScaleFactor(out.OrigWidth, out.OrigHeight, b.Dx(), b.Dy()),
		})
	}

	result.ProcessingTime = time.Since(start)
	if r.logger != nil {
		r.logger.Info("batch.done",
			"processed", len(result.Images),
			"skipped", len(sources)-len(result.Images),
			"duration_ms", result.ProcessingTime.Milliseconds(),
		)
	}
	return result, nil
}

func (r *Runner) notifyBefore(ctx context.Context, name string, img *ImageData) {
	for _, h := range r.hooks {
		h.BeforeStep(ctx, name, img)
	}
}

func (r *Runner) notifyAfter(ctx context.Context, name string, img *ImageData, d time.Duration, err error) {
	for _, h := range r.hooks {
		h.AfterStep(ctx, name, img, d, err)
	}
}

// ProcessedCount returns the total number of successfully processed images.
func (r *Runner) ProcessedCount() int64 { return atomic.LoadInt64(&r.processedCount) }

// SkippedCount returns the total number of skipped sources.
func (r *Runner) SkippedCount() int64 { return atomic.LoadInt64(&r.skippedCount) }
