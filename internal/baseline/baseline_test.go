package baseline

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

func search(is *is.I, eng interface {
	Search(context.Context, common.SearchParams) (common.SearchInfo, error)
}, depth int, record ...string) common.SearchInfo {
	var p, err = common.NewPositionFromRecord(record)
	is.NoErr(err)
	si, err := eng.Search(context.Background(), common.SearchParams{
		Position: p,
		Limits:   common.LimitsType{Depth: depth},
	})
	is.NoErr(err)
	return si
}

func TestRandomPlaysWholeGame(t *testing.T) {
	is := is.New(t)
	var p common.Position
	for !p.IsFilled() {
		var si, err = Random{}.Search(context.Background(), common.SearchParams{Position: p})
		is.NoErr(err)
		_, err = p.MakeMove(si.BestMove())
		is.NoErr(err)
	}
	is.Equal(p.Area[common.Black]+p.Area[common.White], common.Boxes)

	var si, err = Random{}.Search(context.Background(), common.SearchParams{Position: p})
	is.NoErr(err)
	is.Equal(si.BestMove(), common.MoveEmpty)
}

func TestGreedyTakesFreeBox(t *testing.T) {
	is := is.New(t)
	var g = NewGreedy(1)
	var si = search(is, g, 0, "a1h", "a2h", "a1v")
	is.Equal(si.BestMove().String(), "b1v")
	is.Equal(si.Score.Boxes, 1)
	is.True(si.Nodes > 0)
}

func TestGreedyDoesNotOfferBox(t *testing.T) {
	is := is.New(t)
	var g = NewGreedy(1)
	for i := 0; i < 10; i++ {
		var si = search(is, g, 2, "a1h", "a2h")
		var move = si.BestMove().String()
		is.True(move != "a1v" && move != "b1v")
		is.Equal(si.Score.Boxes, 0)
		is.Equal(si.Depth, 2)
	}
}

func TestGreedyFilledBoard(t *testing.T) {
	is := is.New(t)
	var p, err = common.NewPositionFromMoves(common.AllMoves[:])
	is.NoErr(err)
	si, err := NewGreedy(2).Search(context.Background(), common.SearchParams{Position: p})
	is.NoErr(err)
	is.Equal(si.BestMove(), common.MoveEmpty)
}
