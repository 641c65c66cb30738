package common

// Boxes are addressed as cells of a grid padded by one ring of sentinel cells,
// so both cells bordering any edge always exist.
const (
	Width  = 5
	Height = 5
	Boxes  = Width * Height

	stride    = Height + 2
	CellCount = (Width + 2) * stride

	MaxMoves = (Width+1)*Height + Width*(Height+1)
	MaxPly   = MaxMoves
)

// line sets are single uint64 bitboards indexed by cell
const _ = uint64(64 - CellCount)

// both coordinates of an edge anchor must fit into one character
const _ = uint(8 - Width)
const _ = uint(8 - Height)

const (
	DirLeft = iota
	DirDown
	DirRight
	DirUp
)

var dirDelta = [4]int{-stride, -1, stride, 1}

func Opposite(dir int) int {
	return (dir + 2) & 3
}

func Neighbour(cell, dir int) int {
	return cell + dirDelta[dir]
}

func MakeCell(file, rank int) int {
	return (file+1)*stride + rank + 1
}

func CellFile(cell int) int {
	return cell/stride - 1
}

func CellRank(cell int) int {
	return cell%stride - 1
}

func IsBox(cell int) bool {
	var file, rank = CellFile(cell), CellRank(cell)
	return cell >= 0 && cell < CellCount &&
		file >= 0 && file < Width &&
		rank >= 0 && rank < Height
}

const (
	fileNames = "abcdefghi"
	rankNames = "123456789"
)

func CellName(cell int) string {
	return string(fileNames[CellFile(cell)]) + string(rankNames[CellRank(cell)])
}

func AbsDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}
