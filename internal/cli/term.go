package cli

import (
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/crowdflow/internal/terminal"
)

func newTermCmd(g *globalOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Render the crowd inside the terminal",
		Long: `Render the crowd inside the terminal, one colored dot per person.

Keys 1-4 jump to a layout, arrows / j / k / space / mouse wheel step through
them, q or Esc quits. While the screen is active logs are discarded unless
--log-file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			w, closeLog, err := screenLogWriter(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			// Loggers copy the default at construction, so swap it before the driver exists.
			stderr := charmlog.Default()
			charmlog.SetDefault(newLogger(w, g.logLevel()))
			defer charmlog.SetDefault(stderr)

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("terminal init: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()
			screen.HideCursor()

			vw, vh := terminal.ViewportFor(screen.Size())
			fd, err := g.newDriver(cfg, vw, vh)
			if err != nil {
				return err
			}
			return terminal.New(screen, fd).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the screen is active")
	return cmd
}
