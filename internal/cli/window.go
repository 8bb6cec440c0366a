package cli

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/crowdflow/pkg/app"
	"github.com/decker502/crowdflow/pkg/config"
)

type windowOptions struct {
	width      int
	height     int
	fullscreen bool
}

func newWindowCmd(g *globalOptions) *cobra.Command {
	opts := windowOptions{}

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the crowd animation in a desktop window",
		Long: `Open the crowd animation in a resizable desktop window.

Keys 1-4 jump to a layout, arrow keys / PageUp / PageDown / mouse wheel step
through them, F3 toggles frame statistics, F11 toggles fullscreen, Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			layout, err := g.startLayout()
			if err != nil {
				return err
			}

			a, err := app.NewApp(app.Config{Simulation: cfg, Width: opts.width, Height: opts.height, Layout: layout})
			if err != nil {
				return err
			}

			w, h := a.Size()
			ebiten.SetWindowSize(w, h)
			ebiten.SetWindowTitle(config.WindowTitle)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetFullscreen(opts.fullscreen)

			if err := ebiten.RunGame(a); err != nil {
				return fmt.Errorf("window: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", config.WindowWidth, "initial window width")
	cmd.Flags().IntVar(&opts.height, "height", config.WindowHeight, "initial window height")
	cmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "start in fullscreen")
	return cmd
}
