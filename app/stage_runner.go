package app

import (
	"context"
	"fmt"
	"time"

	"trackplume/internal"
)

// Stage is one named step of a pipeline
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// StageResult records how a stage went
type StageResult struct {
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
	Err        error  `json:"-"`
}

// StageRunner executes stages in order, stopping at the first failure
type StageRunner struct {
	logger *internal.Logger
}

// NewStageRunner creates a new stage runner
func NewStageRunner(logger *internal.Logger) *StageRunner {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StageRunner{logger: logger.With("stages")}
}

// ExecutePipeline runs each stage and returns the results of every stage attempted.
// A cancelled context stops the pipeline before the next stage starts.
func (r *StageRunner) ExecutePipeline(ctx context.Context, stages []Stage) ([]StageResult, error) {
	results := make([]StageResult, 0, len(stages))
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		start := time.Now()
		r.logger.Debug("Stage %s started", stage.Name)
		err := stage.Run(ctx)
		result := StageResult{Name: stage.Name, DurationMs: time.Since(start).Milliseconds(), Err: err}
		results = append(results, result)

		if err != nil {
			r.logger.Error("Stage %s failed after %dms: %v", stage.Name, result.DurationMs, err)
			return results, fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		r.logger.Debug("Stage %s finished in %dms", stage.Name, result.DurationMs)
	}
	return results, nil
}
