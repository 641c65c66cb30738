package common

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	Vertical = iota
	Horizontal
)

// Move is an edge of the grid: orientation in bit 0, anchor cell above it.
// The anchor is the lower-indexed of the two cells bordering the edge.
type Move int32

const MoveEmpty = Move(0)

var ErrBadMove = errors.New("bad move")

// AllMoves lists every edge: vertical edges row by row, then horizontal edges row by row.
var AllMoves [MaxMoves]Move

var edgeDir = [2]int{Vertical: DirRight, Horizontal: DirUp}

func MakeMove(orientation, cell int) Move {
	return Move(cell<<1 | orientation)
}

// MakeMoveAt builds the edge starting at dot (file, rank) and running up (vertical) or right (horizontal).
func MakeMoveAt(orientation, file, rank int) Move {
	if orientation == Vertical {
		return MakeMove(Vertical, file*stride+rank+1)
	}
	return MakeMove(Horizontal, (file+1)*stride+rank)
}

// EdgeMove returns the edge on side dir of cell.
func EdgeMove(cell, dir int) Move {
	switch dir {
	case DirRight:
		return MakeMove(Vertical, cell)
	case DirUp:
		return MakeMove(Horizontal, cell)
	case DirLeft:
		return MakeMove(Vertical, cell-stride)
	default:
		return MakeMove(Horizontal, cell-1)
	}
}

func (m Move) Orientation() int {
	return int(m & 1)
}

func (m Move) Cell() int {
	return int(m >> 1)
}

// Dir is the side of the anchor cell the edge lies on.
func (m Move) Dir() int {
	return edgeDir[m.Orientation()]
}

func (m Move) Cells() (first, second int) {
	first = m.Cell()
	second = Neighbour(first, m.Dir())
	return
}

func (m Move) DotFile() int {
	if m.Orientation() == Vertical {
		return m.Cell() / stride
	}
	return m.Cell()/stride - 1
}

func (m Move) DotRank() int {
	if m.Orientation() == Vertical {
		return m.Cell()%stride - 1
	}
	return m.Cell() % stride
}

// IsEdge reports whether m denotes an edge of the grid.
func (m Move) IsEdge() bool {
	if m < 0 || m.Cell() >= CellCount {
		return false
	}
	var file, rank = m.DotFile(), m.DotRank()
	if m.Orientation() == Vertical {
		return file >= 0 && file <= Width && rank >= 0 && rank < Height
	}
	return file >= 0 && file < Width && rank >= 0 && rank <= Height
}

func (m Move) String() string {
	if m == MoveEmpty || !m.IsEdge() {
		return "none"
	}
	return string(fileNames[m.DotFile()]) + string(rankNames[m.DotRank()]) +
		string("vh"[m.Orientation()])
}

func ParseMove(s string) (Move, error) {
	if len(s) != 3 {
		return MoveEmpty, errors.Wrapf(ErrBadMove, "%q", s)
	}
	s = strings.ToLower(s)
	var file = strings.IndexByte(fileNames[:Width+1], s[0])
	var rank = strings.IndexByte(rankNames[:Height+1], s[1])
	if file < 0 || rank < 0 {
		return MoveEmpty, errors.Wrapf(ErrBadMove, "%q: coordinate out of grid", s)
	}
	var orientation int
	switch s[2] {
	case 'v':
		orientation = Vertical
	case 'h':
		orientation = Horizontal
	default:
		return MoveEmpty, errors.Wrapf(ErrBadMove, "%q: orientation", s)
	}
	var m = MakeMoveAt(orientation, file, rank)
	if !m.IsEdge() {
		return MoveEmpty, errors.Wrapf(ErrBadMove, "%q: edge out of grid", s)
	}
	return m, nil
}

func ParseMoves(ss []string) ([]Move, error) {
	var result = make([]Move, 0, len(ss))
	for _, s := range ss {
		var m, err = ParseMove(s)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func init() {
	var n = 0
	for rank := 0; rank < Height; rank++ {
		for file := 0; file <= Width; file++ {
			AllMoves[n] = MakeMoveAt(Vertical, file, rank)
			n++
		}
	}
	for rank := 0; rank <= Height; rank++ {
		for file := 0; file < Width; file++ {
			AllMoves[n] = MakeMoveAt(Horizontal, file, rank)
			n++
		}
	}
}
