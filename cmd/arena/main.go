package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/CounterDots/internal/arena"
	"github.com/ChizhovVadim/CounterDots/internal/baseline"
	"github.com/ChizhovVadim/CounterDots/pkg/engine"
)

type engineConfig struct {
	Depth    int
	MoveTime time.Duration
	Nodes    int
}

var (
	config       arena.Config
	engineA      engineConfig
	engineB      engineConfig
	hash         int
	openingsPath string
	opponent     string
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	var err = run()
	if err != nil {
		log.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}
}

func run() error {
	flag.IntVar(&config.Concurrency, "concurrency", 4, "number of games played at once")
	flag.IntVar(&config.Games, "games", 50, "number of openings, each one is played twice")
	flag.IntVar(&config.MaxOpeningPlies, "openingplies", 7, "maximum length of random openings")
	flag.StringVar(&openingsPath, "openings", "", "file with opening lines, default: built-in lines")
	flag.IntVar(&engineA.Depth, "depthA", 6, "engine A depth limit")
	flag.DurationVar(&engineA.MoveTime, "movetimeA", time.Second, "engine A time per move")
	flag.IntVar(&engineA.Nodes, "nodesA", 0, "engine A nodes per move")
	flag.IntVar(&engineB.Depth, "depthB", 4, "engine B depth limit")
	flag.DurationVar(&engineB.MoveTime, "movetimeB", time.Second, "engine B time per move")
	flag.IntVar(&engineB.Nodes, "nodesB", 0, "engine B nodes per move")
	flag.IntVar(&hash, "hash", 16, "transposition table size in megabytes per engine")
	flag.StringVar(&opponent, "opponent", "engine", "engine B: engine, greedy or random")
	flag.Parse()

	var err error
	if openingsPath != "" {
		config.Openings, err = loadOpenings(openingsPath)
	} else {
		config.Openings = arena.DefaultOpenings()
	}
	if err != nil {
		return err
	}
	config.TimeControlA = arena.TimeControl{FixedDepth: engineA.Depth, FixedTime: engineA.MoveTime, FixedNodes: engineA.Nodes}
	config.TimeControlB = arena.TimeControl{FixedDepth: engineB.Depth, FixedTime: engineB.MoveTime, FixedNodes: engineB.Nodes}

	newEngineB, err := opponentFactory(opponent, engineB.Depth)
	if err != nil {
		return err
	}

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stat, err := arena.Run(ctx, config, newEngine, newEngineB)
	if err != nil {
		return err
	}
	log.Info().
		Int("wins", stat.Wins).
		Int("losses", stat.Losses).
		Int("draws", stat.Draws).
		Msg("engine A result")
	return nil
}

func newEngine() arena.Engine {
	var options = engine.NewOptions()
	options.Hash = hash
	var eng = engine.NewEngine(options)
	eng.Prepare()
	return eng
}

func opponentFactory(name string, depth int) (func() arena.Engine, error) {
	switch name {
	case "engine":
		return newEngine, nil
	case "greedy":
		return func() arena.Engine { return baseline.NewGreedy(depth) }, nil
	case "random":
		return func() arena.Engine { return baseline.Random{} }, nil
	}
	return nil, errors.Errorf("unknown opponent %v", name)
}

func loadOpenings(path string) ([]string, error) {
	var file, err = os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "openings")
	}
	defer file.Close()
	var result []string
	var scanner = bufio.NewScanner(file)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if !(line == "" || strings.HasPrefix(line, "//")) {
			result = append(result, line)
		}
	}
	return result, scanner.Err()
}
