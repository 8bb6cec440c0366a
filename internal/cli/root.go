// Package cli implements the crowdflow command-line interface.
//
// Every command builds its own simulation from the same configuration
// (embedded data/population.yaml unless --config is given) and drives it
// with a different front end: an ebiten window, a tcell terminal, or a
// headless benchmark loop.
//
// # Commands
//
//   - window: open the animated crowd in a desktop window
//   - term: render the crowd inside the terminal
//   - bench: run N frames headlessly and print timing statistics
//   - layouts: list the available layouts and their step numbers
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/crowdflow/pkg/components"
	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/game"
	"github.com/decker502/crowdflow/pkg/types"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	configPath string
	seed       uint64
	layout     string
}

// Execute runs the crowdflow CLI and returns an error if any command fails.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "crowdflow",
		Short:        "crowdflow animates a population between scatter, grouped, stacked and bar layouts",
		Long:         `crowdflow renders a few hundred colored person glyphs and morphs them between four layouts (a floating scatter, grouped spirals, per-group stacks and a 100% bar) as you step through them.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			charmlog.SetDefault(newLogger(os.Stderr, opts.logLevel()))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("crowdflow %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "population config file (.yaml/.yml/.toml), defaults to the embedded "+config.DefaultConfigPath)
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "random seed override (0 keeps the config value)")
	root.PersistentFlags().StringVar(&opts.layout, "layout", types.LayoutScatter.String(), "initial layout: scatter, grouped, stacked or bar")

	root.AddCommand(newWindowCmd(opts))
	root.AddCommand(newTermCmd(opts))
	root.AddCommand(newBenchCmd(opts))
	root.AddCommand(newLayoutsCmd(opts))

	return root
}

// logLevel maps --verbose to a log level.
func (g *globalOptions) logLevel() charmlog.Level {
	if g.verbose {
		return charmlog.DebugLevel
	}
	return charmlog.InfoLevel
}

// loadConfig resolves the simulation config for a command.
func (o *globalOptions) loadConfig() (*config.SimulationConfig, error) {
	var (
		cfg *config.SimulationConfig
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadSimulationConfig(o.configPath)
	} else {
		cfg, err = config.LoadEmbeddedSimulationConfig()
	}
	if err != nil {
		return nil, err
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	charmlog.Default().Debug("config loaded", "path", o.configPath, "groups", len(cfg.Groups), "population", cfg.Population())
	return cfg, nil
}

// startLayout parses --layout.
func (o *globalOptions) startLayout() (types.LayoutID, error) {
	if o.layout == "" {
		return types.LayoutScatter, nil
	}
	l, ok := types.ParseLayout(o.layout)
	if !ok {
		return 0, fmt.Errorf("unknown layout %q (want scatter, grouped, stacked or bar)", o.layout)
	}
	return l, nil
}

// newDriver builds a simulation for cfg at the given viewport and applies --layout.
func (o *globalOptions) newDriver(cfg *config.SimulationConfig, width, height float64) (*game.FrameDriver, error) {
	layout, err := o.startLayout()
	if err != nil {
		return nil, err
	}
	state, err := game.NewSimulationState(cfg, components.NewViewport(width, height, 1))
	if err != nil {
		return nil, err
	}
	fd := game.NewFrameDriver(state, 0)
	if layout != types.LayoutScatter {
		fd.SetLayout(layout, 0)
	}
	return fd, nil
}
