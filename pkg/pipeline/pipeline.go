// Package pipeline runs the generate → render flow shared by the CLI and the
// HTTP server.
//
// A [Runner] builds a dungeon from a [config.Config] and renders it to the
// requested formats, serving artifacts from a [cache.Cache] when the same
// request was rendered before:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Requests without a fixed seed get a fresh one and are never cached.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bspgen/pkg/config"
	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"  // level map, see render/sink
	FormatJSON = "json" // tree and level export, see io
	FormatTXT  = "txt"  // ASCII map
	FormatDOT  = "dot"  // tree diagram source
	FormatTree = "tree" // tree diagram rendered to SVG by Graphviz
)

// Formats lists every supported format.
var Formats = []string{FormatSVG, FormatJSON, FormatTXT, FormatDOT, FormatTree}

// Extension returns the file extension used when writing format.
func Extension(format string) string {
	if format == FormatTree {
		return "tree.svg"
	}
	return format
}

// ContentType returns the HTTP content type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatTree:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	return errors.ValidateFormats(formats, Formats...)
}

// Options describes one pipeline run.
type Options struct {
	Config  config.Config `json:"config"`
	Formats []string      `json:"formats"`

	// Tree diagram options (dot and tree formats)
	Detailed bool `json:"detailed,omitempty"`
	Siblings bool `json:"siblings,omitempty"`

	// Refresh skips cache lookups; fresh artifacts are still stored.
	Refresh bool `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Validate checks the config and formats and defaults Formats to svg.
func (o *Options) Validate() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.Config.Validate()
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dungeon   *dungeon.Dungeon
	Artifacts map[string][]byte
	Stats     Stats
	CacheHit  bool // every artifact came from the cache
}

// Stats contains run timings alongside the dungeon summary.
type Stats struct {
	dungeon.Stats
	GenerateTime time.Duration
	RenderTime   time.Duration
}
