package engine

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	m.Run()
}

func newTestEngine() *Engine {
	var options = NewOptions()
	options.Hash = 1
	options.SelfCheck = true
	var e = NewEngine(options)
	e.shuffle = func(n int, swap func(i, j int)) {}
	return e
}

func searchRecord(is *is.I, e *Engine, limits LimitsType, record ...string) SearchInfo {
	var p, err = NewPositionFromRecord(record)
	is.NoErr(err)
	si, err := e.Search(context.Background(), SearchParams{
		Position: p,
		Limits:   limits,
	})
	is.NoErr(err)
	return si
}

func TestSearchEmptyBoard(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var si = searchRecord(is, e, LimitsType{Depth: 1})
	is.Equal(si.Depth, 1)
	is.Equal(si.Score, Score{})
	is.True(si.BestMove().IsEdge())
	is.True(si.Nodes >= MaxMoves)
}

func TestSearchTakesFreeBox(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	for depth := 1; depth <= 3; depth++ {
		var si = searchRecord(is, e, LimitsType{Depth: depth}, "a1h", "a2h", "a1v")
		is.Equal(si.BestMove().String(), "b1v")
		is.True(si.Score.Boxes >= 1)
		is.Equal(si.Depth, depth)
	}
}

func TestSearchDecidedPosition(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var found = false
	for game := 0; game < 200 && !found; game++ {
		var b = newEmptyState(is)
		for !b.IsFilled() {
			if b.IsDecided() && b.ReachCount() != 0 && MaxPly-b.Ply() >= 2 {
				found = true
				break
			}
			var _, err = b.MakeMove(randomMove(b))
			is.NoErr(err)
		}
		if !found {
			continue
		}
		var si, err = e.Search(context.Background(), SearchParams{
			Position: b.Snapshot(),
			Limits:   LimitsType{Depth: 1},
		})
		is.NoErr(err)
		is.Equal(si.Score.Decided, 1)
		is.True(si.Score.Boxes >= 1)
		is.True(b.IsValid(si.BestMove()))
	}
	is.True(found)
}

func TestSearchMoves(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var only, _ = ParseMove("c3h")
	var si = searchRecord(is, e, LimitsType{Depth: 2, SearchMoves: []Move{only}})
	is.Equal(si.BestMove(), only)

	var drawn, _ = ParseMove("a1h")
	var p, err = NewPositionFromRecord([]string{"a1h"})
	is.NoErr(err)
	_, err = e.Search(context.Background(), SearchParams{
		Position: p,
		Limits:   LimitsType{Depth: 2, SearchMoves: []Move{drawn}},
	})
	is.True(err != nil)
}

func TestSearchFilledAndSingleMove(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()

	var p, err = NewPositionFromMoves(AllMoves[:MaxMoves-1])
	is.NoErr(err)
	si, err := e.Search(context.Background(), SearchParams{Position: p})
	is.NoErr(err)
	is.Equal(si.BestMove(), AllMoves[MaxMoves-1])
	is.Equal(si.Depth, 0)

	p, err = NewPositionFromMoves(AllMoves[:])
	is.NoErr(err)
	si, err = e.Search(context.Background(), SearchParams{Position: p})
	is.NoErr(err)
	is.Equal(si.BestMove(), MoveEmpty)
}

func TestSearchCancelled(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var si, err = e.Search(ctx, SearchParams{})
	is.NoErr(err)
	is.Equal(si.Depth, 0)
	is.True(si.BestMove().IsEdge())
}

func TestSearchMoveTime(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	e.SelfCheck = false
	var si = searchRecord(is, e, LimitsType{MoveTime: 50})
	is.True(si.Depth >= 1)
	is.True(si.BestMove().IsEdge())
	is.True(si.Time < 2*time.Second)
}

func TestSearchNodes(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var si = searchRecord(is, e, LimitsType{Nodes: 1000, Infinite: true})
	is.True(si.Depth >= 1)
	is.True(si.Nodes < 2000)
}

func TestSearchProgress(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var depths []int
	var p, err = NewPositionFromRecord([]string{"c3h", "c3v"})
	is.NoErr(err)
	si, err := e.Search(context.Background(), SearchParams{
		Position: p,
		Limits:   LimitsType{Depth: 3},
		Progress: func(si SearchInfo) {
			depths = append(depths, si.Depth)
		},
	})
	is.NoErr(err)
	is.Equal(depths, []int{1, 2, 3})

	// the main line is playable from the root
	is.True(len(si.MainLine) >= 1)
	for _, m := range si.MainLine {
		_, err = p.MakeMove(m)
		is.NoErr(err)
	}
}

func TestSearchMidgame(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	for i := 0; i < 5; i++ {
		var b = randomState(is, 30+i*5)
		var si, err = e.Search(context.Background(), SearchParams{
			Position: b.Snapshot(),
			Limits:   LimitsType{Depth: 3},
		})
		is.NoErr(err)
		is.True(b.IsValid(si.BestMove()))
		is.True(si.Depth >= 1)
	}
}

func TestSearchRejectsBrokenPosition(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var p Position
	p.Ply = 3
	var _, err = e.Search(context.Background(), SearchParams{Position: p})
	is.True(err != nil)
}

func TestPrepareResizesHash(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	e.Prepare()
	is.Equal(e.transTable.Size(), 1)
	e.Hash = 2
	e.Prepare()
	is.Equal(e.transTable.Size(), 2)
	e.transTable.Update(1, MoveEmpty, 0, 1)
	e.Clear()
	var _, _, _, ok = e.transTable.Read(1)
	is.True(!ok)
}

func TestSearchReturnsLastCompletedIteration(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	e.SelfCheck = false
	var p = randomState(is, 10).Snapshot()
	for moveTime := 10; moveTime <= 80; moveTime += 10 {
		var last SearchInfo
		var completed = 0
		var si, err = e.Search(context.Background(), SearchParams{
			Position: p,
			Limits:   LimitsType{MoveTime: moveTime},
			Progress: func(si SearchInfo) {
				last = si
				completed++
			},
		})
		is.NoErr(err)
		if completed == 0 {
			is.Equal(si.Depth, 0)
			continue
		}
		is.Equal(si.Depth, last.Depth)
		is.Equal(si.BestMove(), last.BestMove())
		is.Equal(si.MainLine, last.MainLine)
		is.Equal(si.Score, last.Score)
	}
}

// exactValue is the final box differential for the side to move under best play.
func exactValue(p *Position) int {
	if p.IsFilled() {
		return p.AreaDiff(p.SideToMove())
	}
	var best = -valueInfinity
	for _, m := range p.LegalMoves() {
		best = Max(best, exactMoveValue(p, m))
	}
	return best
}

// exactMoveValue is exactValue after m, for the side playing m.
func exactMoveValue(p *Position, m Move) int {
	var child = *p
	var captured, _ = child.MakeMove(m)
	if captured != 0 {
		return exactValue(&child)
	}
	return -exactValue(&child)
}

// staticBestMove maximizes the area differential right after the move.
func staticBestMove(p *Position) Move {
	var side = p.SideToMove()
	var bestMove, best = MoveEmpty, -valueInfinity
	for _, m := range p.LegalMoves() {
		var child = *p
		child.MakeMove(m)
		if v := child.AreaDiff(side); v > best {
			bestMove, best = m, v
		}
	}
	return bestMove
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func TestSearchNotWorseThanStaticBaseline(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	e.SelfCheck = false
	for game := 0; game < 10; game++ {
		var p = randomState(is, MaxPly-7).Snapshot()
		var baseline = sign(exactMoveValue(&p, staticBestMove(&p)))
		for i := 0; i < 3; i++ {
			var si, err = e.Search(context.Background(), SearchParams{
				Position: p,
				Limits:   LimitsType{MoveTime: 1000},
			})
			is.NoErr(err)
			is.True(!p.HasEdge(si.BestMove()))
			is.True(sign(exactMoveValue(&p, si.BestMove())) >= baseline)
		}
	}
}
