package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stride/animation"
	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/game"
	"github.com/pthm-cable/stride/input"
	"github.com/pthm-cable/stride/logging"
	"github.com/pthm-cable/stride/platform"
	"github.com/pthm-cable/stride/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	scriptPath := flag.String("script", "", "YAML input script (headless only)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		return 1
	}
	defer logCloser.Close()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		return 1
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if *headless {
		return runHeadless(cfg, output, *scriptPath, *maxTicks, *logStats)
	}
	return runWindow(cfg, output, *maxTicks, *logStats)
}

// runHeadless drives the game from a script with no window. The script
// advances every tick, frozen or not, so scripted restarts can fire while
// the death overlay is up.
func runHeadless(cfg *config.Config, output *telemetry.OutputManager, scriptPath string, maxTicks int, logStats bool) int {
	var script *input.Script
	if scriptPath != "" {
		s, err := input.LoadScript(scriptPath)
		if err != nil {
			slog.Error("failed to load script", "error", err)
			return 1
		}
		script = s
	} else if maxTicks == 0 {
		slog.Warn("headless run without script or max ticks never ends")
	}

	latch := &input.Latch{}
	quitter := &platform.Quitter{}
	g, err := game.New(cfg, game.Options{
		Input:    latch,
		Quitter:  quitter,
		Animator: animation.NewRecorder(),
		Output:   output,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	g.SetLogStats(logStats)

	total := 0
	if script != nil {
		total = script.TotalTicks()
	}
	slog.Info("starting headless run",
		"script", scriptPath,
		"script_ticks", total,
		"max_ticks", maxTicks,
	)

	for {
		if script != nil {
			if script.Done() {
				slog.Info("script finished", "tick", g.Tick())
				break
			}
			if err := g.ApplyEvent(script.PendingEvent()); err != nil {
				slog.Error("script event rejected", "tick", g.Tick(), "error", err)
				return 1
			}
			latch.Set(script.Snapshot())
		}
		if quitter.Requested() {
			slog.Info("exit requested", "tick", g.Tick())
			break
		}

		g.Step(cfg.Physics.DT)

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}

	f := g.LastFrame()
	slog.Info("headless run complete",
		"tick", g.Tick(),
		"session", f.Session,
		"speed", f.State.CurrentSpeed,
		"dead", g.Flags().Dead(),
	)
	return 0
}

func runWindow(cfg *config.Config, output *telemetry.OutputManager, maxTicks int, logStats bool) int {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Stride")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape opens the pause overlay instead of closing the window
	rl.SetExitKey(0)

	animator := animation.NewRecorder()
	quitter := &platform.Quitter{}
	g, err := game.New(cfg, game.Options{
		Input:    platform.Input{},
		Cursor:   &platform.Cursor{},
		Quitter:  quitter,
		Animator: animator,
		Output:   output,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	g.SetLogStats(logStats)

	view := platform.NewView(cfg.Camera.Distance)
	overlays := platform.NewOverlays(animator)

	for !rl.WindowShouldClose() && !quitter.Requested() {
		overlays.HandleKeys(g)
		g.Step(cfg.Physics.DT)
		g.Perf().RecordFrame()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 120, G: 160, B: 200, A: 255})
		view.Draw(g)
		overlays.Draw(g)
		rl.EndDrawing()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return 0
}
