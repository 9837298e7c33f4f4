package formclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

// ErrNoForms is returned when Run is given no form files.
var ErrNoForms = errors.New("no form files given")

// Run evaluates every configured form file and prints a summary for each, in
// the order given. It returns an error if any form failed.
func Run(ctx context.Context, cfg *Config, out io.Writer) (*Stats, error) {
	if len(cfg.FormFiles) == 0 {
		return nil, ErrNoForms
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	runID := uuid.NewString()
	log := logger.Named("assess")
	log.Info(ctx, "starting assessment run",
		logger.String("runID", runID),
		logger.Int("forms", len(cfg.FormFiles)),
		logger.String("server", cfg.ServerURL),
		logger.Int("workers", cfg.Workers),
	)

	eval, err := newEvaluator(ctx, cfg, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator: %w", err)
	}

	stats := &Stats{Forms: len(cfg.FormFiles), StartTime: time.Now()}
	results := evaluateAll(ctx, cfg, eval)
	stats.Duration = time.Since(stats.StartTime)

	var errs []error
	for _, r := range results {
		switch {
		case r.Err != nil:
			stats.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", r.File, r.Err))
		case r.Assessment.Outcome == nil:
			stats.Succeeded++
			stats.Disabled++
		default:
			stats.Succeeded++
			if r.Assessment.Outcome.Label == predict.Diabetic {
				stats.Diabetic++
			}
		}
		if err := PrintSummary(out, r); err != nil {
			return stats, fmt.Errorf("failed to print summary: %w", err)
		}
	}

	log.Info(ctx, "assessment run finished",
		logger.String("runID", runID),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.Int("diabetic", stats.Diabetic),
		logger.Duration("duration", stats.Duration),
	)
	return stats, errors.Join(errs...)
}

func newEvaluator(ctx context.Context, cfg *Config, runID string) (Evaluator, error) {
	if cfg.ServerURL != "" {
		return NewRemote(cfg, runID), nil
	}
	return NewLocal(ctx, cfg)
}

// evaluateAll fans the form files out to cfg.Workers goroutines.
func evaluateAll(ctx context.Context, cfg *Config, eval Evaluator) []Result {
	results := make([]Result, len(cfg.FormFiles))
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = evaluateOne(ctx, cfg, eval, cfg.FormFiles[idx])
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range cfg.FormFiles {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	for i := range results {
		if results[i].File == "" {
			results[i] = Result{File: cfg.FormFiles[i], Err: ctx.Err()}
		}
	}
	return results
}

func evaluateOne(ctx context.Context, cfg *Config, eval Evaluator, path string) Result {
	form, err := LoadForm(path)
	if err != nil {
		return Result{File: path, Err: err}
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	a, err := eval.Evaluate(ctx, form)
	if err != nil {
		logger.Get().Debug(ctx, "form failed", logger.String("file", path), logger.Error(err))
		return Result{File: path, Err: err}
	}
	return Result{File: path, Assessment: a}
}
