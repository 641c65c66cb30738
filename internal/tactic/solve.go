package tactic

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

type Engine interface {
	Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error)
}

// SolveTactic searches every test and counts the ones where a best move was chosen.
func SolveTactic(ctx context.Context, tests []EpdItem, eng Engine, limits common.LimitsType) (int, error) {
	var solved = 0
	for i := range tests {
		var test = &tests[i]
		var si, err = eng.Search(ctx, common.SearchParams{
			Position: test.position,
			Limits:   limits,
		})
		if err != nil {
			return solved, err
		}
		var passed = common.FindMove(test.bestMoves, si.BestMove()) >= 0
		if passed {
			solved++
		}
		log.Info().
			Int("test", i+1).
			Bool("passed", passed).
			Str("move", si.BestMove().String()).
			Stringer("score", si.Score).
			Int("depth", si.Depth).
			Str("content", test.content).
			Send()
	}
	log.Info().Int("solved", solved).Int("total", len(tests)).Msg("solve tactic finished")
	return solved, nil
}

type BenchmarkResult struct {
	Nodes   int64
	Elapsed time.Duration
}

func (r BenchmarkResult) KNPS() int64 {
	return r.Nodes / (r.Elapsed.Milliseconds() + 1)
}

func Benchmark(ctx context.Context, tests []EpdItem, eng Engine, depth int) (BenchmarkResult, error) {
	var start = time.Now()
	var nodes int64
	for i := range tests {
		var test = &tests[i]
		var si, err = eng.Search(ctx, common.SearchParams{
			Position: test.position,
			Limits:   common.LimitsType{Depth: depth},
		})
		if err != nil {
			return BenchmarkResult{}, err
		}
		nodes += si.Nodes
	}
	return BenchmarkResult{Nodes: nodes, Elapsed: time.Since(start)}, nil
}
