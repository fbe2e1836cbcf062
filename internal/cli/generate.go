package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bspgen/pkg/config"
	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/pipeline"
)

// generateOpts holds the output flags of the generate and tree commands.
type generateOpts struct {
	output     string   // output file (single format) or base path (multiple)
	formats    []string // pipeline formats
	noCache    bool
	refresh    bool
	detailed   bool     // tree labels with region details
	siblings   bool     // tree sibling links
	saveConfig string   // write the effective config, seed included
	command    string   // subcommand name for the reproduce hint
	flagArgs   []string // changed generation flags for the reproduce hint
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := newConfigFlags()
	var opts generateOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dungeon and write it as SVG, JSON, DOT or ASCII",
		Long: `Generate splits the map into a BSP tree, places rooms in the leaves and
connects them with corridors.

With a single format and no --output the result goes to stdout. With several
formats, --output is a base path and each format gets its own extension.`,
		Example: `  bspgen generate --seed 42 -o level.svg
  bspgen generate -c dungeon.toml -f svg,json,txt -o out/level
  bspgen generate -f txt --width 60 --height 30 --depth 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, pipeline.FormatSVG)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := errors.ValidateOutputPath(opts.output); err != nil {
				return err
			}
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			opts.command = cmd.Name()
			opts.flagArgs = changedArgs(cmd)
			return c.runGenerate(cmd.Context(), cfg, opts)
		},
	}

	flags.register(cmd.Flags(), true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, txt, dot, tree (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().StringVar(&opts.saveConfig, "save-config", "", "write the effective config, including the seed used, as TOML")

	return cmd
}

// runGenerate executes the pipeline and writes one file per format.
func (c *CLI) runGenerate(ctx context.Context, cfg config.Config, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	multiple := len(opts.formats) > 1
	toStdout := !multiple && opts.output == ""

	var spinner *Spinner
	if !toStdout && slices.Contains(opts.formats, pipeline.FormatTree) {
		spinner = newSpinnerWithContext(ctx, "Rendering tree with Graphviz...")
		spinner.Start()
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Config:   cfg,
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Siblings: opts.siblings,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Tree rendering failed")
		} else {
			spinner.StopWithSuccess("Tree rendered")
		}
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d rooms in %d regions", result.Stats.Rooms, result.Stats.Leaves))

	var written []string
	for _, format := range opts.formats {
		path := outputPath(opts.output, format, multiple)
		if err := c.writeOutput(path, result.Artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		if path != "" {
			written = append(written, path)
			logger.Debugf("Wrote %s (%d bytes)", path, len(result.Artifacts[format]))
		}
	}

	if opts.saveConfig != "" {
		saved := cfg
		saved.Split.Seed = result.Dungeon.Seed
		data, err := saved.Encode()
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		if err := c.writeOutput(opts.saveConfig, data); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		written = append(written, opts.saveConfig)
	}

	if toStdout {
		return nil
	}
	printSuccess("Dungeon generated")
	printKeyValue("Seed", fmt.Sprintf("%d", result.Dungeon.Seed))
	printKeyValue("Policy", result.Dungeon.Policy)
	printDungeonStats(result.Stats.Stats, result.CacheHit)
	for _, p := range written {
		printFile(p)
	}
	if cfg.Split.Seed == 0 {
		printNextStep("Reproduce with", reproduceCommand(opts, result.Dungeon.Seed))
	}
	return nil
}

// reproduceCommand returns the command line that rebuilds a level.
func reproduceCommand(opts generateOpts, seed int64) string {
	command := opts.command
	if command == "" {
		command = "generate"
	}
	parts := append([]string{appName, command}, opts.flagArgs...)
	parts = append(parts, fmt.Sprintf("--seed=%d", seed))
	return strings.Join(parts, " ")
}
