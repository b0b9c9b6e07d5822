// Command tune fits locomotion parameters so the controller matches a
// target feel: how fast sprint builds up, how fast the character turns
// around and how high it jumps.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/logging"
)

// evalRow is one line of the evaluation log.
type evalRow struct {
	Eval               int     `csv:"eval"`
	Fitness            float64 `csv:"fitness"`
	SpeedChangeRate    float64 `csv:"speed_change_rate"`
	RotationSmoothTime float64 `csv:"rotation_smooth_time"`
	JumpHeight         float64 `csv:"jump_height"`
	SprintLag          float64 `csv:"sprint_lag"`
	TurnLag            float64 `csv:"turn_lag"`
	Apex               float64 `csv:"apex"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	referencePath := flag.String("reference", "", "Config whose measured feel becomes the target")
	sprintLag := flag.Float64("sprint-lag", 0, "Target sprint lag in seconds (0 = from reference or base)")
	turnLag := flag.Float64("turn-lag", 0, "Target turn lag in seconds (0 = from reference or base)")
	apex := flag.Float64("apex", 0, "Target jump apex in metres (0 = from reference or base)")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	base, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Trial games log every session start; keep the output readable
	base.Logging.Level = "warn"
	if _, err := logging.Setup(base.Logging); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	refCfg := base
	if *referencePath != "" {
		if refCfg, err = config.Load(*referencePath); err != nil {
			log.Fatalf("failed to load reference config: %v", err)
		}
	}
	targets, err := Measure(refCfg)
	if err != nil {
		log.Fatalf("failed to measure reference: %v", err)
	}
	if *sprintLag > 0 {
		targets.SprintLag = *sprintLag
	}
	if *turnLag > 0 {
		targets.TurnLag = *turnLag
	}
	if *apex > 0 {
		targets.Apex = *apex
	}

	params := NewParamVector(base)
	evaluator := NewEvaluator(params, base, targets)

	var rows []evalRow
	startTime := time.Now()
	record := func(eval int, x []float64, fitness float64) {
		m := evaluator.LastMeasurement()
		rows = append(rows, evalRow{
			Eval:               eval,
			Fitness:            fitness,
			SpeedChangeRate:    x[0],
			RotationSmoothTime: x[1],
			JumpHeight:         x[2],
			SprintLag:          m.SprintLag,
			TurnLag:            m.TurnLag,
			Apex:               m.Apex,
		})
		fmt.Printf("Eval %d/%d: fitness=%.6f sprint_lag=%.3f turn_lag=%.3f apex=%.3f | elapsed: %s\n",
			eval, *maxEvals, fitness, m.SprintLag, m.TurnLag, m.Apex, time.Since(startTime).Round(time.Millisecond))
	}

	fmt.Printf("Targets: sprint_lag=%.3f turn_lag=%.3f apex=%.3f\n", targets.SprintLag, targets.TurnLag, targets.Apex)
	fmt.Printf("Starting Nelder-Mead with %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)

	if _, err := Fit(evaluator, params, *maxEvals, record); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	bestFitness, bestParams := evaluator.Best()
	if bestParams == nil {
		log.Fatal("no successful evaluation")
	}

	fmt.Printf("\nOptimization complete after %d evaluations\n", len(rows))
	fmt.Printf("Best fitness: %.6f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	if err := writeLog(logPath, rows); err != nil {
		log.Printf("failed to write log: %v", err)
	}

	bestCfg := *base
	if err := params.ApplyToConfig(&bestCfg, bestParams); err != nil {
		log.Fatalf("best parameters rejected: %v", err)
	}
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		slog.Warn("best config saved", "path", configOutPath)
	}
}

// Fit minimizes evaluator fitness over normalized parameters, starting
// from the parameter defaults. record, when non-nil, sees every evaluation
// with clamped raw values.
func Fit(evaluator *Evaluator, params *ParamVector, maxEvals int, record func(eval int, x []float64, fitness float64)) (*optimize.Result, error) {
	evals := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evals++
			if record != nil {
				record(evals, raw, fitness)
			}
			return fitness
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.NelderMead{SimplexSize: 0.1}

	initX := params.Normalize(params.DefaultVector())
	return optimize.Minimize(problem, initX, settings, method)
}

func writeLog(path string, rows []evalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating log: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}
	return nil
}
