package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/types"
)

func newLayoutsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List layouts, their step numbers and the configured groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLayouts(cfg))
			return nil
		},
	}
}

func renderLayouts(cfg *config.SimulationConfig) string {
	var rows []string
	for _, l := range types.AllLayouts() {
		rows = append(rows, keyValue(fmt.Sprintf("step %d  %s", int(l), l), l.Label()))
	}

	rows = append(rows, "", StyleTitle.Render("groups"))
	for _, gc := range cfg.Groups {
		swatch := styleSwatch.Foreground(lipgloss.Color(strings.ToLower(gc.Color))).Render("■")
		rows = append(rows, keyValue(gc.Key, fmt.Sprintf("%s %s %s", swatch, StyleNumber.Render(fmt.Sprint(gc.Count)), StyleDim.Render(gc.Color))))
	}
	rows = append(rows, keyValue("total", StyleNumber.Render(fmt.Sprint(cfg.Population()))))
	return box("crowdflow layouts", rows...)
}
