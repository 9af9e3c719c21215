// Package pipeline runs a complete contact-sheet generation for one sequence.
//
// This package implements the scan → archive → composite → export flow used
// by the CLI. Keeping it out of the command layer means the same run can be
// driven from a farm job or a test without a terminal.
//
// # Stages
//
//  1. Scan: walk the sequence folder and resolve the latest render per shot
//  2. Archive: pick the next output version and move older outputs aside
//  3. Composite: load thumbnails once, then render the unlabeled and labeled
//     sheets from them
//  4. Export (optional): write the node-graph script and its SVG preview
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SequenceDir: "/mnt/projects/25_show/sequences/SEQ010",
//	    Config:      cfg,
//	    Script:      true,
//	})
//	fmt.Println(result.Outputs)
//
// Scan can also be run on its own:
//
//	shots, err := runner.Scan(ctx, opts)
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contactsheet/pkg/config"
	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/render/sheet"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// TitlePrefix precedes the folder name in the sheet title.
const TitlePrefix = "Contact Sheet for "

// Options configures one pipeline run.
type Options struct {
	// SequenceDir is the folder to scan. Outputs go to its output subfolder.
	SequenceDir string
	// FolderName names the outputs. Defaults to the base name of SequenceDir.
	FolderName string
	// Shots, when set, are used instead of scanning SequenceDir.
	Shots []renders.ShotImage

	Config config.Config

	// Script writes the node-graph script next to the sheets.
	Script bool
	// Preview writes an SVG drawing of the node graph.
	Preview bool

	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and hooks.
	RunID string

	// Version is the output version written by this run.
	Version int

	// Shots are the renders that went into the sheets.
	Shots []renders.ShotImage

	// Skipped are renders dropped because they could not be decoded.
	Skipped []renders.ShotImage

	// Outputs are the files written, in write order.
	Outputs []string

	// Archived are the superseded files moved aside.
	Archived []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ShotCount  int
	Columns    int
	Rows       int
	Width      int
	Height     int
	ScanTime   time.Duration
	LoadTime   time.Duration
	RenderTime time.Duration
}

// ValidateAndSetDefaults checks the options and fills defaults. All errors
// are configuration errors and are reported before any work starts.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Shots == nil {
		if err := errors.ValidateDir(o.SequenceDir); err != nil {
			return err
		}
	} else if o.SequenceDir == "" {
		return errors.New(errors.ErrCodeInvalidPath, "sequence folder is required")
	}

	if o.FolderName == "" {
		o.FolderName = filepath.Base(filepath.Clean(o.SequenceDir))
	}
	if err := errors.ValidateFolderName(o.FolderName); err != nil {
		return err
	}

	// A zero Config means the caller did not load one.
	if o.Config.FixedThumbnailHeight == 0 && o.Config.OutputSubdir == "" {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// OutputDir returns the folder the run writes to.
func (o *Options) OutputDir() string {
	return filepath.Join(o.SequenceDir, o.Config.OutputSubdir)
}

// Title returns the sheet title.
func (o *Options) Title() string {
	return TitlePrefix + o.FolderName
}

// Policy returns the parsed bad-image policy. Config validation guarantees
// it parses.
func (o *Options) Policy() sheet.Policy {
	p, _ := sheet.ParsePolicy(o.Config.OnBadImage)
	return p
}
