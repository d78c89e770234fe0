package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/labimaging/imagebatch"
	"github.com/labimaging/imagebatch/config"
	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
)

// Artifact filenames, matching what the form-based tool offered for
// download.
var artifactFiles = map[string]string{
	"archive":  "processed_images.zip",
	"metadata": "image_metadata.csv",
	"sheet":    "contact_sheet.png",
	"slides":   "images.pptx",
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".tif": true, ".tiff": true, ".bmp": true,
}

type batchOptions struct {
	inputDir     string
	outputDir    string
	canvasSize   string
	targetPixels int
	columns      int
	slides       bool
	verbose      bool
}

// charmLogger adapts charmbracelet/log to core.Logger.
type charmLogger struct {
	log *charmlog.Logger
}

func (c charmLogger) Debug(msg string, fields ...interface{}) { c.log.Debug(msg, fields...) }
func (c charmLogger) Info(msg string, fields ...interface{})  { c.log.Info(msg, fields...) }
func (c charmLogger) Warn(msg string, fields ...interface{})  { c.log.Warn(msg, fields...) }
func (c charmLogger) Error(msg string, fields ...interface{}) { c.log.Error(msg, fields...) }

func runBatch(ctx context.Context, cfg config.Config, opts batchOptions) error {
	level := charmlog.InfoLevel
	if opts.verbose {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Level: level, ReportTimestamp: true})

	cfg = applyOverrides(cfg, opts, logger)

	batcher, err := imagebatch.New(cfg)
	if err != nil {
		return err
	}
	batcher.SetLogger(charmLogger{log: logger})

	sources, closeAll, err := collectSources(opts.inputDir)
	if err != nil {
		return err
	}
	defer closeAll()
	if len(sources) == 0 {
		return fmt.Errorf("no images found in %s", opts.inputDir)
	}
	logger.Info("starting batch", "images", len(sources), "input", opts.inputDir)

	run, err := batcher.Run(ctx, sources)
	if err != nil {
		return err
	}
	for _, w := range run.Warnings {
		logger.Warn(string(w.Code), "subject", w.Subject, "detail", w.Message)
	}
	logger.Info("batch processed", "images", len(run.Images), "duration", run.ProcessingTime)

	if len(run.Images) == 0 {
		logger.Warn("no images were processed; skipping exports")
		return nil
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return err
	}
	for _, name := range batcher.EnabledArtifacts() {
		if err := writeArtifact(ctx, batcher, run, name, opts.outputDir, logger); err != nil {
			return err
		}
	}
	return nil
}

// applyOverrides folds the command-line flag overrides into the config.
// A malformed --canvas value falls back to the configured sizing with a
// warning rather than aborting.
func applyOverrides(cfg config.Config, opts batchOptions, logger *charmlog.Logger) config.Config {
	if opts.canvasSize != "" {
		if _, _, err := config.ParseSize(opts.canvasSize); err != nil {
			logger.Warn("invalid --canvas value, keeping configured sizing",
				"value", opts.canvasSize, "error", err)
		} else {
			cfg.Sizing.Mode = "canvas"
			cfg.Sizing.Canvas = opts.canvasSize
		}
	}
	if opts.targetPixels > 0 {
		cfg.Sizing.TargetPixels = opts.targetPixels
	}
	if opts.columns > 0 {
		cfg.Grid.Columns = opts.columns
	}
	if opts.slides {
		cfg.Export.Slides = true
	}
	return cfg
}

// collectSources opens every recognised image file in dir, sorted by name.
func collectSources(dir string) ([]core.Source, func(), error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var files []*os.File
	sources := make([]core.Source, 0, len(names))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		sources = append(sources, imagebatch.FromReader(f, name))
	}
	return sources, closeAll, nil
}

func writeArtifact(ctx context.Context, b *imagebatch.Batcher, run *core.RunResult, name, outDir string, logger *charmlog.Logger) error {
	path := filepath.Join(outDir, artifactFiles[name])
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := b.Export(ctx, name, run, f); err != nil {
		// A missing exporter disables that artifact with a notice; every
		// other export failure is reported.
		if errors.Is(err, apperrors.ErrNoExporter) {
			logger.Warn("export unavailable, skipping", "artifact", name)
			os.Remove(path)
			return nil
		}
		return err
	}
	logger.Info("wrote artifact", "artifact", name, "path", path)
	return nil
}
