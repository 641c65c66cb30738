package common

import (
	"testing"

	"github.com/matryer/is"
	"github.com/pkg/errors"
	"lukechampine.com/frand"
)

func TestPositionCapture(t *testing.T) {
	is := is.New(t)
	var p, err = NewPositionFromRecord([]string{"a1h", "a2h", "a1v"})
	is.NoErr(err)
	is.Equal(p.Ply, 3)
	is.Equal(p.SideToMove(), White)
	is.True(p.IsReach(MakeCell(0, 0)))

	var m, _ = ParseMove("b1v")
	captured, err := p.MakeMove(m)
	is.NoErr(err)
	is.Equal(captured, 1)
	is.Equal(p.SideToMove(), White)
	is.Equal(p.Area, [2]int{0, 1})
	is.True(p.IsFull(MakeCell(0, 0)))
	is.True(p.Line(MakeCell(1, 0), DirLeft))

	_, err = p.MakeMove(m)
	is.True(errors.Is(err, ErrIllegalMove))
	is.Equal(p.Ply, 4)
}

func TestPositionRandomGames(t *testing.T) {
	is := is.New(t)
	for game := 0; game < 20; game++ {
		var p Position
		for !p.IsFilled() {
			var ml = p.LegalMoves()
			is.Equal(len(ml), MaxPly-p.Ply)
			var _, err = p.MakeMove(ml[frand.Intn(len(ml))])
			is.NoErr(err)
		}
		is.Equal(len(p.LegalMoves()), 0)
		is.Equal(p.Area[Black]+p.Area[White], Boxes)
		var side, ok = p.Winner()
		is.True(ok) // odd number of boxes
		is.True(p.Area[side] > p.Area[side^1])
	}
}

func TestPositionFromBadRecord(t *testing.T) {
	is := is.New(t)
	var _, err = NewPositionFromRecord([]string{"a1h", "a1h"})
	is.True(errors.Is(err, ErrIllegalMove))
	_, err = NewPositionFromRecord([]string{"a1q"})
	is.True(errors.Is(err, ErrBadMove))
}

func TestScoreString(t *testing.T) {
	is := is.New(t)
	is.Equal(Score{Boxes: 3}.String(), "boxes 3")
	is.Equal(Score{Boxes: 5, Decided: 1}.String(), "win 5")
	is.Equal(Score{Boxes: -2, Decided: -1}.String(), "loss -2")
}
