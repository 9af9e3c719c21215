package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/contactsheet/pkg/archive"
	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/fonts"
	"github.com/matzehuels/contactsheet/pkg/fsutil"
	"github.com/matzehuels/contactsheet/pkg/observability"
	"github.com/matzehuels/contactsheet/pkg/render/nodegraph"
	"github.com/matzehuels/contactsheet/pkg/render/sheet"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// Runner executes pipeline runs. It holds no per-run state, so one Runner
// can serve several runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete scan → archive → composite → export pipeline.
//
// The unlabeled sheet is written before the labeled one is rendered; a
// failure in the second step leaves the first in place.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])
	opts.Logger = logger
	result := &Result{RunID: runID}

	// Stage 1: Scan
	shots := opts.Shots
	if shots == nil {
		scanStart := time.Now()
		var err error
		shots, err = r.scan(ctx, runID, opts)
		result.Stats.ScanTime = time.Since(scanStart)
		if err != nil {
			return nil, err
		}
	}
	if len(shots) == 0 {
		return nil, errors.New(errors.ErrCodeNoImages, "no renders found under %s", opts.SequenceDir)
	}
	logger.Info("resolved shots", "count", len(shots), "duration", result.Stats.ScanTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Archive
	outDir := opts.OutputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output folder")
	}
	version, err := archive.NextVersion(outDir, opts.FolderName)
	if err != nil {
		return nil, err
	}
	result.Version = version

	moved, err := archive.New(opts.Config.ArchiveSubdir, logger).
		Archive(outDir, opts.FolderName, version, opts.archiveKinds()...)
	if err != nil {
		return nil, err
	}
	result.Archived = moved
	observability.Output().OnArchive(ctx, runID, version, len(moved))
	if len(moved) > 0 {
		logger.Info("archived previous outputs", "count", len(moved), "dir", opts.Config.ArchiveSubdir)
	}

	// Stage 3: Composite
	loadStart := time.Now()
	loaded, err := sheet.LoadThumbnails(shots, opts.Config.FixedThumbnailHeight, opts.Policy(), logger)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, runID, len(loaded.Thumbnails), len(loaded.Skipped), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Skipped = loaded.Skipped
	for _, t := range loaded.Thumbnails {
		result.Shots = append(result.Shots, t.Shot)
	}
	result.Stats.ShotCount = len(result.Shots)

	renderStart := time.Now()
	if err := r.writeSheets(ctx, runID, opts, loaded.Thumbnails, result); err != nil {
		return result, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("wrote contact sheets",
		"version", fmt.Sprintf("%03d", version),
		"shots", result.Stats.ShotCount,
		"size", fmt.Sprintf("%dx%d", result.Stats.Width, result.Stats.Height),
		"duration", result.Stats.RenderTime)

	// Stage 4: Export. The node graph reads every resolved render, including
	// ones the compositor skipped.
	if opts.Script || opts.Preview {
		if err := r.writeGraph(ctx, runID, opts, shots, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Scan resolves the latest renders under opts.SequenceDir.
func (r *Runner) Scan(ctx context.Context, opts Options) ([]renders.ShotImage, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.scan(ctx, "", opts)
}

func (r *Runner) scan(ctx context.Context, runID string, opts Options) ([]renders.ShotImage, error) {
	hooks := observability.Pipeline()
	hooks.OnScanStart(ctx, runID, opts.SequenceDir)
	start := time.Now()

	wc := opts.Config.WalkerConfig()
	wc.Logger = opts.Logger
	w, err := renders.NewWalker(wc)
	if err != nil {
		hooks.OnScanComplete(ctx, runID, opts.SequenceDir, 0, time.Since(start), err)
		return nil, err
	}
	shots, err := w.Walk(opts.SequenceDir)
	hooks.OnScanComplete(ctx, runID, opts.SequenceDir, len(shots), time.Since(start), err)
	return shots, err
}

type variant struct {
	name    string
	labeled bool
	file    func(folder string, version int) string
}

var variants = []variant{
	{"sheet", false, archive.SheetName},
	{"labeled", true, archive.LabeledSheetName},
}

func (r *Runner) writeSheets(ctx context.Context, runID string, opts Options, thumbs []sheet.Thumbnail, result *Result) error {
	cfg := opts.Config
	bg, err := sheet.ParseColor(cfg.Background)
	if err != nil {
		return err
	}
	resolver := fonts.NewResolver(opts.Logger, fonts.DefaultStrategies(cfg.FontPaths, cfg.FontNames)...)
	hooks := observability.Pipeline()

	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return err
		}
		hooks.OnRenderStart(ctx, runID, v.name, len(thumbs))
		start := time.Now()

		img, plan, err := sheet.Render(thumbs, sheet.Options{
			Layout:        cfg.LayoutOptions(),
			Title:         opts.Title(),
			Labeled:       v.labeled,
			Background:    bg,
			TitleFontSize: cfg.TitleFontSize,
			LabelFontSize: cfg.LabelFontSize,
			Fonts:         resolver,
			Logger:        opts.Logger,
		})
		if err == nil {
			result.Stats.Columns, result.Stats.Rows = plan.Columns, plan.Rows
			result.Stats.Width, result.Stats.Height = plan.Width, plan.Height
			var data []byte
			data, err = sheet.EncodeJPEG(img, cfg.JPEGQuality)
			if err == nil {
				err = r.write(ctx, runID, opts, v.file(opts.FolderName, result.Version), data, result)
			}
		}
		hooks.OnRenderComplete(ctx, runID, v.name, time.Since(start), err)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) writeGraph(ctx context.Context, runID string, opts Options, shots []renders.ShotImage, result *Result) error {
	g, err := nodegraph.Build(shots)
	if err != nil {
		return err
	}
	if opts.Script {
		name := archive.ScriptName(opts.FolderName, result.Version)
		if err := r.write(ctx, runID, opts, name, []byte(g.Script()), result); err != nil {
			return err
		}
	}
	if opts.Preview {
		svg, err := nodegraph.RenderSVG(ctx, nodegraph.ToDOT(g))
		if err != nil {
			return err
		}
		name := archive.PreviewName(opts.FolderName, result.Version)
		if err := r.write(ctx, runID, opts, name, svg, result); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) write(ctx context.Context, runID string, opts Options, name string, data []byte, result *Result) error {
	dir := opts.OutputDir()
	if err := fsutil.WriteFileAtomic(dir, name, data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", name)
	}
	path := filepath.Join(dir, name)
	result.Outputs = append(result.Outputs, path)
	observability.Output().OnWrite(ctx, runID, path, len(data))
	opts.Logger.Debug("wrote output", "file", name, "bytes", len(data))
	return nil
}

func (o *Options) archiveKinds() []archive.Kind {
	kinds := []archive.Kind{archive.KindSheet}
	if o.Script {
		kinds = append(kinds, archive.KindScript)
	}
	if o.Preview {
		kinds = append(kinds, archive.KindPreview)
	}
	return kinds
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
