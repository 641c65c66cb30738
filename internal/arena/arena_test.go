package arena

import (
	"context"
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDots/internal/baseline"
	"github.com/ChizhovVadim/CounterDots/pkg/common"
	"github.com/ChizhovVadim/CounterDots/pkg/engine"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	m.Run()
}

// firstMoveEngine always draws the first undrawn edge.
type firstMoveEngine struct {
	searches int
}

func (e *firstMoveEngine) Clear() {}

func (e *firstMoveEngine) Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error) {
	e.searches++
	var ml = searchParams.Position.LegalMoves()
	return common.SearchInfo{MainLine: ml[:1]}, nil
}

func TestComputeStat(t *testing.T) {
	is := is.New(t)
	var gs = computeStat(10, 10, 0)
	is.Equal(gs.winningFraction, 0.5)
	is.Equal(gs.eloDifference, 0.0)
	is.Equal(gs.los, 0.5)

	gs = computeStat(30, 10, 0)
	is.Equal(gs.winningFraction, 0.75)
	is.True(math.Abs(gs.eloDifference-190.8) < 0.1)
	is.True(gs.los > 0.99)
}

func TestOpenings(t *testing.T) {
	is := is.New(t)
	var records = DefaultOpenings()
	is.True(len(records) >= 10)

	var openings, err = buildOpenings(records, len(records)+20, 7)
	is.NoErr(err)
	is.Equal(len(openings), len(records)+20)
	for _, opening := range openings[len(records):] {
		is.True(len(opening) <= 7)
		var p, err = common.NewPositionFromMoves(opening)
		is.NoErr(err)
		for cell := 0; cell < common.CellCount; cell++ {
			is.True(!p.IsReach(cell)) // random openings stay quiet
		}
	}

	_, err = buildOpenings([]string{"a1h a1h"}, 1, 0)
	is.True(err != nil)
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	var engineA, engineB = &firstMoveEngine{}, &firstMoveEngine{}
	var opening, _ = common.ParseMoves([]string{"c3h"})
	var res, err = playGame(context.Background(), engineA, engineB,
		TimeControl{FixedDepth: 1}, TimeControl{FixedDepth: 1},
		gameInfo{opening: opening, engineAIsBlack: true, gameNumber: 1})
	is.NoErr(err)
	is.Equal(len(res.moves), common.MaxPly)
	is.Equal(res.moves[0], opening[0])
	is.Equal(res.area[0]+res.area[1], common.Boxes)
	is.True(res.result != gameResultDraw)
	is.Equal(engineA.searches+engineB.searches, common.MaxPly-1)
	is.True(engineA.searches > 0 && engineB.searches > 0)

	_, err = playGame(context.Background(), engineA, engineB,
		TimeControl{}, TimeControl{FixedDepth: 1}, gameInfo{})
	is.True(err != nil)
}

func TestRun(t *testing.T) {
	is := is.New(t)
	var newEngine = func(depth int) func() Engine {
		return func() Engine {
			var options = engine.NewOptions()
			options.Hash = 1
			options.MaxDepth = depth
			return engine.NewEngine(options)
		}
	}
	var stat, err = Run(context.Background(), Config{
		Concurrency:     2,
		Games:           3,
		MaxOpeningPlies: 7,
		Openings:        DefaultOpenings()[:1],
		TimeControlA:    TimeControl{FixedDepth: 2},
		TimeControlB:    TimeControl{FixedDepth: 1},
	}, newEngine(2), newEngine(1))
	is.NoErr(err)
	is.Equal(stat.Games(), 6)
	is.Equal(stat.Draws, 0)
}

func TestRunAgainstBaselines(t *testing.T) {
	is := is.New(t)
	var newEngine = func() Engine {
		var options = engine.NewOptions()
		options.Hash = 1
		return engine.NewEngine(options)
	}
	for _, newBaseline := range []func() Engine{
		func() Engine { return baseline.NewGreedy(1) },
		func() Engine { return baseline.Random{} },
	} {
		var stat, err = Run(context.Background(), Config{
			Concurrency:     2,
			Games:           1,
			MaxOpeningPlies: 4,
			TimeControlA:    TimeControl{FixedDepth: 2},
			TimeControlB:    TimeControl{FixedDepth: 1},
		}, newEngine, newBaseline)
		is.NoErr(err)
		is.Equal(stat.Games(), 2)
		is.Equal(stat.Draws, 0)
	}
}
