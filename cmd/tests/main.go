package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/CounterDots/internal/tactic"
	"github.com/ChizhovVadim/CounterDots/pkg/common"
	"github.com/ChizhovVadim/CounterDots/pkg/engine"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	var err = run()
	if err != nil {
		log.Error().Err(err).Send()
		os.Exit(1)
	}
}

func run() error {
	var c = newCli()
	c.add("benchmark", func(fs *flag.FlagSet) func() error {
		var path = fs.String("testpath", "", "test positions file, default: built-in suite")
		var depth = fs.Int("depth", 8, "search depth per position")
		return func() error { return runBenchmark(*path, *depth) }
	})
	c.add("tactic", func(fs *flag.FlagSet) func() error {
		var path = fs.String("testpath", "", "test positions file, default: built-in suite")
		var moveTime = fs.Int("movetime", 1000, "milliseconds per position")
		return func() error { return runSolveTactic(*path, *moveTime) }
	})
	return c.execute(os.Args[1:])
}

func loadTests(path string) ([]tactic.EpdItem, error) {
	if path == "" {
		return tactic.DefaultTests(), nil
	}
	return tactic.LoadEpd(mapPath(path))
}

func runBenchmark(path string, depth int) error {
	log.Info().Str("path", path).Int("depth", depth).Msg("benchmark started")
	defer log.Info().Msg("benchmark finished")

	var tests, err = loadTests(path)
	if err != nil {
		return err
	}
	var eng = newEngine()
	result, err := tactic.Benchmark(context.Background(), tests, eng, depth)
	if err != nil {
		return err
	}
	log.Info().
		Dur("time", result.Elapsed).
		Int64("nodes", result.Nodes).
		Int64("kNPS", result.KNPS()).
		Send()
	return nil
}

func runSolveTactic(path string, moveTime int) error {
	log.Info().Str("path", path).Int("movetime", moveTime).Msg("solveTactic started")
	defer log.Info().Msg("solveTactic finished")

	var tests, err = loadTests(path)
	if err != nil {
		return err
	}
	var eng = newEngine()
	_, err = tactic.SolveTactic(context.Background(), tests, eng,
		common.LimitsType{MoveTime: moveTime})
	return err
}

func newEngine() *engine.Engine {
	var options = engine.NewOptions()
	options.Hash = 128
	var eng = engine.NewEngine(options)
	eng.Prepare()
	return eng
}

// mapPath expands a leading ~/ to the home directory.
func mapPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	var home, err = os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/"))
}
