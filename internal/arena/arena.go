package arena

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Run plays engine A against engine B. Every worker owns one engine of each kind.
func Run(
	ctx context.Context,
	config Config,
	newEngineA, newEngineB func() Engine,
) (Stat, error) {
	log.Info().Msg("arena started")
	defer log.Info().Msg("arena finished")

	log.Info().
		Int("NumCPU", runtime.NumCPU()).
		Int("GOMAXPROCS", runtime.GOMAXPROCS(0)).
		Int("gameConcurrency", config.Concurrency).
		Interface("config", config).
		Send()

	if _, err := config.TimeControlA.limits(); err != nil {
		return Stat{}, err
	}
	if _, err := config.TimeControlB.limits(); err != nil {
		return Stat{}, err
	}
	var openings, err = buildOpenings(config.Openings, config.Games, maxInt(0, config.MaxOpeningPlies))
	if err != nil {
		return Stat{}, err
	}

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var stat Stat

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, openings, gameInfos)
	})

	g.Go(func() error {
		return showResults(ctx, 2*len(openings), gameResults, &stat)
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < maxInt(1, config.Concurrency); i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, config, newEngineA(), newEngineB(), gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	err = g.Wait()
	return stat, err
}

func playGames(
	ctx context.Context,
	config Config,
	engineA, engineB Engine,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, engineA, engineB,
			config.TimeControlA, config.TimeControlB, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

func maxInt(l, r int) int {
	if l > r {
		return l
	}
	return r
}
