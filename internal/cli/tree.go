package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/pipeline"
)

// treeCommand creates the tree command, a shortcut for generating the
// node-link diagram of the split tree.
func (c *CLI) treeCommand() *cobra.Command {
	flags := newConfigFlags()
	var opts generateOpts
	var format string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the BSP tree as a node-link diagram",
		Example: `  bspgen tree --seed 7 -o tree.svg
  bspgen tree --depth 3 --format dot --detailed | dot -Tpng > tree.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "svg":
				opts.formats = []string{pipeline.FormatTree}
			case "dot":
				opts.formats = []string{pipeline.FormatDOT}
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be svg or dot)", format)
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

	flags.register(cmd.Flags(), false)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include regions and rooms in node labels")
	cmd.Flags().BoolVar(&opts.siblings, "siblings", false, "link sibling nodes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
