package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bspgen/pkg/buildinfo"
	"github.com/matzehuels/bspgen/pkg/cache"
	"github.com/matzehuels/bspgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bspgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // primary output (ASCII maps, stdout artifacts)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "bspgen partitions maps with BSP trees and builds dungeons from them",
		Long:         `bspgen splits a rectangle into a binary space partitioning tree, places a room in every leaf and connects sibling rooms with corridors. Levels can be written as SVG, JSON, DOT or ASCII, browsed in the terminal, or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bspgen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Empty input yields the default.
func parseFormats(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath strips a known format extension from output so that several
// formats can be written next to each other (level.svg, level.json, ...).
func basePath(output string) string {
	// tree first: ".tree.svg" also ends in ".svg"
	formats := append([]string{pipeline.FormatTree}, pipeline.Formats...)
	for _, f := range formats {
		if ext := "." + pipeline.Extension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPath returns where format is written. With a single format the
// output is used as given; an empty output means stdout.
func outputPath(output, format string, multiple bool) string {
	if !multiple {
		return output
	}
	if output == "" {
		output = appName
	}
	return basePath(output) + "." + pipeline.Extension(format)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout when path is empty, otherwise creates the file.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{c.Out}, nil
	}
	return os.Create(path)
}

// writeOutput writes data to path (or stdout).
func (c *CLI) writeOutput(path string, data []byte) error {
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
