package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/decker502/crowdflow/pkg/config"
	"github.com/decker502/crowdflow/pkg/game"
	"github.com/decker502/crowdflow/pkg/types"
)

type benchOptions struct {
	frames      int
	width       int
	height      int
	switchEvery int
	profile     string
	profileDir  string
}

// benchResult aggregates the statistics of a headless run.
type benchResult struct {
	Frames     int
	Entities   int
	Elapsed    time.Duration
	Switches   int
	Pairs      int
	Corrected  int
	Coincident int
	Layouts    map[types.LayoutID]int
}

// FrameTime returns the mean wall time per frame.
func (r benchResult) FrameTime() time.Duration {
	if r.Frames == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Frames)
}

func newBenchCmd(g *globalOptions) *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the simulation headlessly and report per-frame cost",
		Long: `Run the simulation headlessly with synthetic 60 Hz timestamps, cycling
through the layouts every --switch-every frames, and print timing and
collision statistics. --profile cpu|mem|alloc writes a pprof profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			if stop := startProfile(opts.profile, opts.profileDir); stop != nil {
				defer stop()
			}

			p := newProgress(log.Default())
			fd, err := g.newDriver(cfg, float64(opts.width), float64(opts.height))
			if err != nil {
				return err
			}
			res, err := runBench(fd, opts)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Simulated %d frames", res.Frames))

			fmt.Fprintln(cmd.OutOrStdout(), renderBenchReport(res))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 3600, "number of frames to simulate")
	cmd.Flags().IntVar(&opts.width, "width", config.WindowWidth, "viewport width")
	cmd.Flags().IntVar(&opts.height, "height", config.WindowHeight, "viewport height")
	cmd.Flags().IntVar(&opts.switchEvery, "switch-every", 120, "frames between layout switches (0 disables)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "write a profile: cpu, mem or alloc")
	cmd.Flags().StringVar(&opts.profileDir, "profile-dir", ".", "directory for profile output")
	return cmd
}

// startProfile starts pkg/profile for the requested mode.
// It returns nil when profiling is disabled.
func startProfile(mode, dir string) func() {
	var m func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		m = profile.CPUProfile
	case "mem":
		m = profile.MemProfile
	case "alloc":
		m = profile.MemProfileAllocs
	default:
		log.Default().Warn("unknown profile mode, profiling disabled", "mode", mode)
		return nil
	}
	p := profile.Start(m, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}

// runBench drives fd for opts.frames frames with synthetic 60 Hz timestamps.
func runBench(fd *game.FrameDriver, opts benchOptions) (benchResult, error) {
	if opts.frames < 0 {
		return benchResult{}, fmt.Errorf("frames should be >= 0, got %d", opts.frames)
	}

	const frameMs = 1000.0 / 60
	layouts := types.AllLayouts()
	res := benchResult{
		Frames:   opts.frames,
		Entities: fd.State().Entities.Len(),
		Layouts:  make(map[types.LayoutID]int, len(layouts)),
	}

	start := time.Now()
	for i := 1; i <= opts.frames; i++ {
		if opts.switchEvery > 0 && i%opts.switchEvery == 0 {
			res.Switches++
			next := (int(fd.Layout()) + 1) % len(layouts)
			fd.Events().PushStep(float64(layouts[next]))
		}
		st := fd.Step(float64(i) * frameMs)
		res.Pairs += st.Collision.PairsChecked
		res.Corrected += st.Collision.PairsCorrected
		res.Coincident += st.Collision.DegenerateSkips
		res.Layouts[st.Layout]++
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// renderBenchReport formats a benchResult as a lipgloss box.
func renderBenchReport(r benchResult) string {
	perFrame := func(n int) string {
		if r.Frames == 0 {
			return "0"
		}
		return fmt.Sprintf("%.1f", float64(n)/float64(r.Frames))
	}

	rows := []string{
		keyValue("frames", StyleNumber.Render(fmt.Sprint(r.Frames))),
		keyValue("entities", StyleNumber.Render(fmt.Sprint(r.Entities))),
		keyValue("elapsed", r.Elapsed.Round(time.Microsecond).String()),
		keyValue("per frame", StyleSuccess.Render(r.FrameTime().String())),
		keyValue("layout switches", fmt.Sprint(r.Switches)),
		keyValue("pairs / frame", perFrame(r.Pairs)),
		keyValue("fixes / frame", perFrame(r.Corrected)),
		keyValue("coincident", fmt.Sprint(r.Coincident)),
		"",
	}
	for _, l := range types.AllLayouts() {
		rows = append(rows, keyValue(l.Label(), StyleDim.Render(fmt.Sprintf("%d frames", r.Layouts[l]))))
	}
	return box("crowdflow bench", rows...)
}
