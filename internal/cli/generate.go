package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contactsheet/pkg/config"
	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/observability"
	pkgio "github.com/matzehuels/contactsheet/pkg/io"
	"github.com/matzehuels/contactsheet/pkg/pipeline"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	name       string // output folder name override
	from       string // shot list JSON to use instead of scanning
	script     bool   // write the node-graph script
	preview    bool   // write the node-graph SVG preview
	open       bool   // reveal the output folder afterwards
	height     int    // thumbnail height override
	onBadImage string // bad-image policy override
}

// apply overrides cfg with the flags the user set explicitly.
func (o *generateOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("height") {
		cfg.FixedThumbnailHeight = o.height
	}
	if cmd.Flags().Changed("on-bad-image") {
		cfg.OnBadImage = o.onBadImage
	}
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [sequence-dir]",
		Short: "Build the contact sheets for a sequence",
		Long: `Build the contact sheets for a sequence folder.

Every shot contributes its newest composite render; shots without one fall
back to their newest lighting render. The renders are scaled to a common
height, packed into a near-square grid under a title bar, and written as
Contact-Sheet_<sequence>.NNN.jpg plus a _labeled twin in the sequence's
Contact-Sheets folder. Previous versions are moved into Contact-Sheets/old.

Without a sequence folder, an interactive chooser lists the projects under
root_path and then their sequences.

Examples:
  contactsheet generate /mnt/projects/25_show/sequences/SEQ010
  contactsheet generate SEQ010 --nuke --preview
  contactsheet generate SEQ010 --from shots.json --name SEQ010_review`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "name used in output files and title (default: folder name)")
	cmd.Flags().StringVar(&opts.from, "from", "", "render from a shot list written by 'scan --json' instead of scanning")
	cmd.Flags().BoolVar(&opts.script, "nuke", false, "also write a node-graph script reading every render")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "also write an SVG drawing of the node graph")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the output folder when done (default on when chosen interactively)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "thumbnail height in pixels (overrides config)")
	cmd.Flags().StringVar(&opts.onBadImage, "on-bad-image", "", "what to do with unreadable renders: skip, fail")

	return cmd
}

// runGenerate resolves the sequence folder, runs the pipeline and reports.
func (c *CLI) runGenerate(cmd *cobra.Command, args []string, opts generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.apply(cmd, &cfg)

	dir, interactive, err := sequenceDir(args, cfg)
	if err != nil || dir == "" {
		return err
	}
	reveal := opts.open
	if interactive && !cmd.Flags().Changed("open") {
		reveal = true
	}

	popts := pipeline.Options{
		SequenceDir: dir,
		FolderName:  opts.name,
		Config:      cfg,
		Script:      opts.script,
		Preview:     opts.preview,
		Logger:      logger,
	}
	if opts.from != "" {
		shots, sequence, err := loadShotList(opts.from)
		if err != nil {
			return err
		}
		popts.Shots = shots
		printInfo("Using %d shots from %s", len(shots), opts.from)
		if popts.FolderName == "" {
			popts.FolderName = sequence
		}
	}

	result, err := c.execute(ctx, popts)
	if err != nil {
		return err
	}

	fmt.Println(formatStats(result.Stats))
	for _, path := range result.Outputs {
		printFile(path)
	}
	if n := len(result.Archived); n > 0 {
		printDetail("%d previous file(s) moved to %s", n, cfg.ArchiveSubdir)
	}
	for _, s := range result.Skipped {
		printWarning("Skipped unreadable render %s", filepath.Base(s.Path))
	}

	if reveal {
		outDir := filepath.Join(dir, cfg.OutputSubdir)
		if err := revealFolder(outDir); err != nil {
			printWarning("Could not open %s: %s", StyleLink.Render(outDir), errors.UserMessage(err))
		}
	}
	return nil
}

// execute runs the pipeline behind a spinner that follows the run's stages.
func (c *CLI) execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	name := folderName(opts)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Compositing %s...", name))

	prev := observability.Pipeline()
	observability.SetPipelineHooks(spinnerHooks{PipelineHooks: prev, spinner: spinner, folder: name})
	defer observability.SetPipelineHooks(prev)

	spinner.Start()
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Contact sheet failed")
		return nil, err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Contact sheet %s for %s",
		StyleNumber.Render(fmt.Sprintf("v%03d", result.Version)), StyleValue.Render(name)))
	return result, nil
}

// sequenceDir returns the folder named on the command line, or runs the
// chooser. An empty dir with a nil error means the user quit the chooser.
func sequenceDir(args []string, cfg config.Config) (dir string, interactive bool, err error) {
	if len(args) == 1 {
		return args[0], false, nil
	}
	dir, err = chooseSequence(cfg)
	if err == nil && dir == "" {
		printDetail("No selection made")
	}
	return dir, true, err
}

// loadShotList reads a shot list file. An empty list is kept non-nil so the
// run reports that no images were given instead of scanning.
func loadShotList(path string) ([]renders.ShotImage, string, error) {
	list, err := pkgio.ImportJSON(path)
	if err != nil {
		return nil, "", err
	}
	if list.Shots == nil {
		list.Shots = []renders.ShotImage{}
	}
	return list.Shots, list.Sequence, nil
}

func folderName(opts pipeline.Options) string {
	if opts.FolderName != "" {
		return opts.FolderName
	}
	return filepath.Base(filepath.Clean(opts.SequenceDir))
}
