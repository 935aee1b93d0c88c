// Package driver races N independent LevelGenerator workers against each
// other and returns the first solvable level. Grounded on the teacher's
// pkg/validator/validator.go concurrent harness (sync.WaitGroup plus a
// buffered semaphore channel plus a results channel), generalized from a
// fixed set of files to validate into a worker count racing to a single
// success.
package driver

import (
	"context"
	"time"

	"github.com/sokoban/levelbuilder/pkg/generator"
	"github.com/sokoban/levelbuilder/pkg/model"
)

// defaultOuterDeadline bounds the whole race, per spec.md §4.C10.
const defaultOuterDeadline = 65 * time.Second

// WorkerMetrics is returned for every worker that ran to completion,
// whether it won the race, lost it, or was cancelled.
type WorkerMetrics struct {
	ThreadIndex    int
	Seed           int64
	Succeeded      bool
	Attempts       int
	StatesExplored int
	Elapsed        time.Duration
}

// workerResult is what each worker goroutine reports back.
type workerResult struct {
	metrics WorkerMetrics
	result  *generator.Result
}

// Options configures GenerateLevelAsync, mirroring spec.md §4.C10's
// parameter list.
type Options struct {
	MinSize, MaxSize       int
	TargetCount, HoleCount int
	UseEntranceExit        bool
	BaseSeed               int64
	SeedOffset             int64
	ThreadCount            int
	WaitForFullCompletion  bool
}

// GenerateLevelAsync spawns ThreadCount workers, each deriving its seed
// as BaseSeed + threadIndex*SeedOffset (SeedOffset == 0 deliberately runs
// N identical copies, used for reproducibility testing rather than being
// a bug). It returns the first winning State/Solution along with a
// WorkerMetrics entry per worker, or a nil State if every worker
// exhausted its attempts without success.
func GenerateLevelAsync(ctx context.Context, opts Options) (*model.State, *model.Solution, []WorkerMetrics) {
	ctx, cancel := context.WithTimeout(ctx, defaultOuterDeadline)
	defer cancel()

	threadCount := opts.ThreadCount
	if threadCount < 1 {
		threadCount = 1
	}

	resultCh := make(chan workerResult, threadCount)
	for i := 0; i < threadCount; i++ {
		i := i
		go func() {
			seed := opts.BaseSeed + int64(i)*opts.SeedOffset
			start := time.Now()
			cfg := generator.Config{
				MinSize:         opts.MinSize,
				MaxSize:         opts.MaxSize,
				TargetCount:     opts.TargetCount,
				HoleCount:       opts.HoleCount,
				UseEntranceExit: opts.UseEntranceExit,
			}
			res, err := generator.GenerateLevel(ctx, cfg, seed)
			elapsed := time.Since(start)

			m := WorkerMetrics{ThreadIndex: i, Seed: seed, Elapsed: elapsed}
			if err != nil {
				resultCh <- workerResult{metrics: m, result: nil}
				return
			}
			m.Succeeded = true
			m.Attempts = res.Attempts
			m.StatesExplored = res.StatesExplored
			resultCh <- workerResult{metrics: m, result: res}
		}()
	}

	metrics := make([]WorkerMetrics, 0, threadCount)
	var winner *generator.Result

	for received := 0; received < threadCount; received++ {
		wr := <-resultCh
		metrics = append(metrics, wr.metrics)

		if wr.result == nil {
			continue
		}
		if winner == nil {
			winner = wr.result
			if !opts.WaitForFullCompletion {
				cancel()
			}
		}
	}

	if winner == nil {
		return nil, nil, metrics
	}
	return winner.State, winner.Solution, metrics
}

// MetricsSummary reduces the per-worker metrics returned by
// GenerateLevelAsync into the aggregate totals a caller typically wants
// to report.
type MetricsSummary struct {
	TotalAttempts       int
	TotalStatesExplored int
	WinningThreadIndex  int
	AnySucceeded        bool
}

// Summarize folds per-worker metrics into MetricsSummary.
func Summarize(metrics []WorkerMetrics) MetricsSummary {
	var s MetricsSummary
	s.WinningThreadIndex = -1
	for _, m := range metrics {
		s.TotalAttempts += m.Attempts
		s.TotalStatesExplored += m.StatesExplored
		if m.Succeeded && !s.AnySucceeded {
			s.AnySucceeded = true
			s.WinningThreadIndex = m.ThreadIndex
		}
	}
	return s
}
