package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/bspgen/pkg/config"
	"github.com/matzehuels/bspgen/pkg/split"
)

// configFlags binds generation flags onto a config. Values given on the
// command line win over values from --config.
type configFlags struct {
	path string
	cfg  config.Config
}

// configFlagSetters copies one flag's value from the flag-bound config to
// the loaded one.
var configFlagSetters = map[string]func(dst *config.Config, src config.Config){
	"width":     func(d *config.Config, s config.Config) { d.Map.Width = s.Map.Width },
	"height":    func(d *config.Config, s config.Config) { d.Map.Height = s.Map.Height },
	"depth":     func(d *config.Config, s config.Config) { d.Split.Depth = s.Split.Depth },
	"policy":    func(d *config.Config, s config.Config) { d.Split.Policy = s.Split.Policy },
	"seed":      func(d *config.Config, s config.Config) { d.Split.Seed = s.Split.Seed },
	"min-ratio": func(d *config.Config, s config.Config) { d.Split.MinRatio = s.Split.MinRatio },
	"max-ratio": func(d *config.Config, s config.Config) { d.Split.MaxRatio = s.Split.MaxRatio },
	"padding":   func(d *config.Config, s config.Config) { d.Rooms.Padding = s.Rooms.Padding },
	"min-room":  func(d *config.Config, s config.Config) { d.Rooms.MinSize = s.Rooms.MinSize },
	"corridor":  func(d *config.Config, s config.Config) { d.Rooms.CorridorWidth = s.Rooms.CorridorWidth },
	"scale":     func(d *config.Config, s config.Config) { d.Render.Scale = s.Render.Scale },
	"regions":   func(d *config.Config, s config.Config) { d.Render.ShowRegions = s.Render.ShowRegions },
	"ids":       func(d *config.Config, s config.Config) { d.Render.ShowIDs = s.Render.ShowIDs },
}

func newConfigFlags() *configFlags {
	return &configFlags{cfg: config.Default()}
}

// register adds the generation flags to fs.
func (f *configFlags) register(fs *pflag.FlagSet, withRender bool) {
	c := &f.cfg
	fs.StringVarP(&f.path, "config", "c", "", "TOML config file")
	fs.Float64Var(&c.Map.Width, "width", c.Map.Width, "map width")
	fs.Float64Var(&c.Map.Height, "height", c.Map.Height, "map height")
	fs.IntVarP(&c.Split.Depth, "depth", "d", c.Split.Depth, "split depth")
	fs.StringVarP(&c.Split.Policy, "policy", "p", c.Split.Policy, "split policy: "+strings.Join(split.Names(), ", "))
	fs.Int64VarP(&c.Split.Seed, "seed", "s", c.Split.Seed, "random seed (0 picks one)")
	fs.Float64Var(&c.Split.MinRatio, "min-ratio", c.Split.MinRatio, "smallest cut ratio (random policy)")
	fs.Float64Var(&c.Split.MaxRatio, "max-ratio", c.Split.MaxRatio, "largest cut ratio (random policy)")
	fs.Float64Var(&c.Rooms.Padding, "padding", c.Rooms.Padding, "gap between a room and its region edge")
	fs.Float64Var(&c.Rooms.MinSize, "min-room", c.Rooms.MinSize, "smallest room side")
	fs.Float64Var(&c.Rooms.CorridorWidth, "corridor", c.Rooms.CorridorWidth, "corridor width")
	if withRender {
		fs.Float64Var(&c.Render.Scale, "scale", c.Render.Scale, "SVG pixels per map unit")
		fs.BoolVar(&c.Render.ShowRegions, "regions", c.Render.ShowRegions, "outline leaf regions in SVG output")
		fs.BoolVar(&c.Render.ShowIDs, "ids", c.Render.ShowIDs, "label rooms with their leaf id in SVG output")
	}
}

// resolve returns the effective config: the --config file (or defaults)
// with every explicitly set flag applied on top.
func (f *configFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	if f.path == "" {
		if err := f.cfg.Validate(); err != nil {
			return config.Config{}, err
		}
		return f.cfg, nil
	}

	cfg, err := config.Load(f.path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if set, ok := configFlagSetters[fl.Name]; ok {
			set(&cfg, f.cfg)
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// changedArgs returns the generation flags set on cmd, except --seed, as
// command-line arguments. Together with the seed they rebuild the same level.
func changedArgs(cmd *cobra.Command) []string {
	var args []string
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if fl.Name == "seed" {
			return
		}
		if _, ok := configFlagSetters[fl.Name]; ok || fl.Name == "config" {
			args = append(args, "--"+fl.Name+"="+shellQuote(fl.Value.String()))
		}
	})
	return args
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'$`\\") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
