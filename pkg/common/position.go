package common

import (
	"math/bits"

	"github.com/pkg/errors"
)

const (
	Black = iota
	White
)

var ErrIllegalMove = errors.New("illegal move")

// Position is a light snapshot of a game: drawn-edge masks per cell plus counters.
// It is cheap to copy and is what a search is started from.
type Position struct {
	Ply      int
	Turn     int
	Area     [2]int
	Occupied [CellCount]uint8
}

func (p *Position) SideToMove() int {
	return p.Turn & 1
}

func (p *Position) Line(cell, dir int) bool {
	return (p.Occupied[cell]>>uint(dir))&1 != 0
}

func (p *Position) HasEdge(m Move) bool {
	return p.Line(m.Cell(), m.Dir())
}

func (p *Position) IsFull(cell int) bool {
	return p.Occupied[cell] == 15
}

func (p *Position) IsReach(cell int) bool {
	return bits.OnesCount8(p.Occupied[cell]) == 3
}

func (p *Position) IsFilled() bool {
	return p.Ply >= MaxPly
}

func (p *Position) AreaDiff(side int) int {
	return p.Area[side] - p.Area[side^1]
}

// Winner is valid for filled positions. ok is false on a tie.
func (p *Position) Winner() (side int, ok bool) {
	if p.Area[Black] == p.Area[White] {
		return Black, false
	}
	if p.Area[Black] > p.Area[White] {
		return Black, true
	}
	return White, true
}

func (p *Position) LegalMoves() []Move {
	var result []Move
	for _, m := range AllMoves {
		if !p.HasEdge(m) {
			result = append(result, m)
		}
	}
	return result
}

// MakeMove draws edge m and returns the number of boxes it completed.
// The side to move keeps the turn when it completes a box.
func (p *Position) MakeMove(m Move) (int, error) {
	if !m.IsEdge() || p.HasEdge(m) {
		return 0, errors.Wrap(ErrIllegalMove, m.String())
	}
	var first, second = m.Cells()
	var dir = m.Dir()
	p.Occupied[first] |= 1 << uint(dir)
	p.Occupied[second] |= 1 << uint(Opposite(dir))
	var captured = 0
	if p.IsFull(first) {
		captured++
	}
	if p.IsFull(second) {
		captured++
	}
	p.Ply++
	if captured == 0 {
		p.Turn++
	} else {
		p.Area[p.SideToMove()] += captured
	}
	return captured, nil
}

func NewPositionFromMoves(moves []Move) (Position, error) {
	var p Position
	for _, m := range moves {
		if _, err := p.MakeMove(m); err != nil {
			return Position{}, errors.Wrapf(err, "ply %v", p.Ply+1)
		}
	}
	return p, nil
}

func NewPositionFromRecord(record []string) (Position, error) {
	var moves, err = ParseMoves(record)
	if err != nil {
		return Position{}, err
	}
	return NewPositionFromMoves(moves)
}
