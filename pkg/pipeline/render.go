package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/io"
	"github.com/matzehuels/bspgen/pkg/render/nodelink"
	"github.com/matzehuels/bspgen/pkg/render/sink"
)

// Render produces a single artifact for d.
func Render(ctx context.Context, d *dungeon.Dungeon, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(d, svgOptions(opts)...), nil
	case FormatJSON:
		return io.MarshalJSON(d)
	case FormatTXT:
		return []byte(d.String()), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(d.Tree, treeOptions(opts))), nil
	case FormatTree:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(d.Tree, treeOptions(opts)))
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	r := opts.Config.Render
	result := []sink.SVGOption{sink.WithScale(r.Scale)}
	if r.ShowRegions {
		result = append(result, sink.WithRegions())
	}
	if r.ShowIDs {
		result = append(result, sink.WithIDs())
	}
	return result
}

func treeOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, Siblings: opts.Siblings}
}
