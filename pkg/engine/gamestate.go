package engine

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
	"lukechampine.com/frand"

	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

type cellInfo struct {
	occupied uint8
	count    uint8
	// position in the reach list while count == 3.
	// A completed cell keeps its last index so that unmaking can put it back.
	reachIndex int8
}

type reachInfo struct {
	cell   int
	effect int
}

// GameState is the search board. It is updated in place by MakeMove/UnmakeMove pairs.
type GameState struct {
	ply         int
	turn        int
	lines       [2]uint64
	cells       [CellCount]cellInfo
	area        [2]int
	lineKey     uint64
	reaches     [Boxes]reachInfo
	reachCount  int
	reachEffect int
}

var lineKeys [CellCount][2]uint64

func init() {
	for i := range lineKeys {
		lineKeys[i][Vertical] = frand.Uint64n(math.MaxUint64)
		lineKeys[i][Horizontal] = frand.Uint64n(math.MaxUint64)
	}
}

func NewGameState(p *Position) (*GameState, error) {
	var b = &GameState{
		ply:  p.Ply,
		turn: p.Turn,
		area: p.Area,
	}
	for cell := range b.cells {
		var occupied = p.Occupied[cell]
		if occupied > 15 {
			return nil, errors.Errorf("invalid position: cell %v mask %v", cell, occupied)
		}
		b.cells[cell] = cellInfo{
			occupied:   occupied,
			count:      uint8(bits.OnesCount8(occupied)),
			reachIndex: -1,
		}
	}
	for _, m := range AllMoves {
		if p.HasEdge(m) {
			b.lines[m.Orientation()] |= 1 << uint(m.Cell())
			b.lineKey ^= lineKeys[m.Cell()][m.Orientation()]
		}
	}
	for cell := range b.cells {
		if IsBox(cell) && b.cells[cell].count == 3 {
			b.addReach(cell)
		}
	}
	if b.turn < 0 || b.turn > b.ply {
		return nil, errors.Errorf("invalid position: turn %v ply %v", b.turn, b.ply)
	}
	if err := b.SelfCheck(); err != nil {
		return nil, errors.Wrap(err, "invalid position")
	}
	return b, nil
}

func (b *GameState) Ply() int {
	return b.ply
}

func (b *GameState) Turn() int {
	return b.turn
}

func (b *GameState) SideToMove() int {
	return b.turn & 1
}

func (b *GameState) Area(side int) int {
	return b.area[side]
}

// AreaDiff is the box differential from the point of view of side.
func (b *GameState) AreaDiff(side int) int {
	var diff = b.area[Black] - b.area[White]
	if side == Black {
		return diff
	}
	return -diff
}

func (b *GameState) ReachCount() int {
	return b.reachCount
}

// ImmediateReachEffect is a lower bound of what the side to move takes this turn.
func (b *GameState) ImmediateReachEffect() int {
	return b.reachEffect
}

func (b *GameState) IsFilled() bool {
	return b.ply >= MaxPly
}

func (b *GameState) line(cell, dir int) bool {
	return (b.cells[cell].occupied>>uint(dir))&1 != 0
}

func (b *GameState) hasLine(m Move) bool {
	return b.lines[m.Orientation()]&(1<<uint(m.Cell())) != 0
}

func (b *GameState) IsValid(m Move) bool {
	return m.IsEdge() && !b.hasLine(m)
}

// IsDecided reports that the side to move already owns, or takes this turn, more than half of the boxes.
func (b *GameState) IsDecided() bool {
	return 2*(b.area[b.SideToMove()]+b.reachEffect) > Boxes
}

// Key mixes the edge hash with both areas, the side to move first.
func (b *GameState) Key() uint64 {
	var side = b.SideToMove()
	return (b.lineKey & 0x000FFFFFFFFFFFFF) |
		uint64(b.area[side])<<58 |
		uint64(b.area[side^1])<<52
}

// completingMove returns the missing edge of a cell with three edges drawn.
func (b *GameState) completingMove(cell int) Move {
	var dir = bits.TrailingZeros8(^b.cells[cell].occupied & 15)
	return EdgeMove(cell, dir)
}

func (b *GameState) MakeMove(move Move) (int, error) {
	if !b.IsValid(move) {
		return 0, errors.Wrap(ErrIllegalMove, move.String())
	}
	var orientation, anchor = move.Orientation(), move.Cell()
	var first, second = move.Cells()
	var dir = move.Dir()
	b.lines[orientation] |= 1 << uint(anchor)
	var captured = b.addLine(first, dir) + b.addLine(second, Opposite(dir))
	b.lineKey ^= lineKeys[anchor][orientation]
	b.ply++
	if captured == 0 {
		b.turn++
	} else {
		b.area[b.SideToMove()] += captured
	}
	return captured, nil
}

// UnmakeMove reverts MakeMove(move). Cells are restored in reverse order so the reach list comes back unchanged.
func (b *GameState) UnmakeMove(move Move) {
	var orientation, anchor = move.Orientation(), move.Cell()
	var first, second = move.Cells()
	var dir = move.Dir()
	b.lineKey ^= lineKeys[anchor][orientation]
	var restored = b.removeLine(second, Opposite(dir)) + b.removeLine(first, dir)
	b.lines[orientation] &^= 1 << uint(anchor)
	b.ply--
	if restored == 0 {
		b.turn--
	} else {
		b.area[b.SideToMove()] -= restored
	}
}

func (b *GameState) addLine(cell, dir int) int {
	var ci = &b.cells[cell]
	ci.occupied |= 1 << uint(dir)
	ci.count++
	switch ci.count {
	case 3:
		b.addReach(cell)
	case 4:
		b.removeReach(cell)
		return 1
	}
	return 0
}

func (b *GameState) removeLine(cell, dir int) int {
	var ci = &b.cells[cell]
	var full = 0
	switch ci.count {
	case 3:
		b.removeReach(cell)
		ci.reachIndex = -1
	case 4:
		b.restoreReach(cell)
		full = 1
	}
	ci.occupied &^= 1 << uint(dir)
	ci.count--
	return full
}

func (b *GameState) addReach(cell int) {
	var ri = reachInfo{cell: cell, effect: 1}
	b.cells[cell].reachIndex = int8(b.reachCount)
	b.reaches[b.reachCount] = ri
	b.reachCount++
	b.reachEffect += ri.effect
}

// removeReach keeps the list dense by moving the last entry into the freed slot.
func (b *GameState) removeReach(cell int) {
	var index = int(b.cells[cell].reachIndex)
	b.reachEffect -= b.reaches[index].effect
	b.reachCount--
	b.reaches[index] = b.reaches[b.reachCount]
	b.cells[b.reaches[index].cell].reachIndex = int8(index)
	b.cells[cell].reachIndex = int8(index)
}

// restoreReach undoes removeReach: the entry moved into the slot goes back to the end.
func (b *GameState) restoreReach(cell int) {
	var index = int(b.cells[cell].reachIndex)
	var ri = reachInfo{cell: cell, effect: 1}
	if index < b.reachCount {
		var moved = b.reaches[index]
		b.reaches[b.reachCount] = moved
		b.cells[moved.cell].reachIndex = int8(b.reachCount)
	}
	b.reaches[index] = ri
	b.reachCount++
	b.reachEffect += ri.effect
}

func (b *GameState) Snapshot() Position {
	var p = Position{
		Ply:  b.ply,
		Turn: b.turn,
		Area: b.area,
	}
	for cell := range b.cells {
		p.Occupied[cell] = b.cells[cell].occupied
	}
	return p
}

// SelfCheck validates every redundant piece of the state against the others.
func (b *GameState) SelfCheck() error {
	for cell := range b.cells {
		var ci = &b.cells[cell]
		if ci.occupied > 15 || bits.OnesCount8(ci.occupied) != int(ci.count) {
			return errors.Errorf("cell %v: mask %04b count %v", cell, ci.occupied, ci.count)
		}
	}

	var lines = 0
	for orientation := range b.lines {
		lines += bits.OnesCount64(b.lines[orientation])
	}
	for _, m := range AllMoves {
		if b.hasLine(m) != b.line(m.Cell(), m.Dir()) {
			return errors.Errorf("edge %v: line set %v cell %v",
				m, b.hasLine(m), b.line(m.Cell(), m.Dir()))
		}
		if b.hasLine(m) {
			lines--
		}
	}
	if lines != 0 {
		return errors.Errorf("line set holds %v edges outside the grid", lines)
	}
	if b.ply < 0 || b.ply > MaxPly ||
		b.ply != bits.OnesCount64(b.lines[Vertical])+bits.OnesCount64(b.lines[Horizontal]) {
		return errors.Errorf("ply %v does not match drawn edges", b.ply)
	}

	for cell := range b.cells {
		if !IsBox(cell) {
			continue
		}
		for dir := DirLeft; dir <= DirUp; dir++ {
			var other = Neighbour(cell, dir)
			if b.line(cell, dir) != b.line(other, Opposite(dir)) {
				return errors.Errorf("cells %v and %v disagree on shared edge",
					CellName(cell), other)
			}
		}
	}

	var effect = 0
	for i := 0; i < b.reachCount; i++ {
		var ri = b.reaches[i]
		if b.cells[ri.cell].count != 3 {
			return errors.Errorf("reach list holds %v with %v edges",
				CellName(ri.cell), b.cells[ri.cell].count)
		}
		if int(b.cells[ri.cell].reachIndex) != i {
			return errors.Errorf("reach %v: index %v, listed at %v",
				CellName(ri.cell), b.cells[ri.cell].reachIndex, i)
		}
		effect += ri.effect
	}
	if effect != b.reachEffect {
		return errors.Errorf("reach effect %v, sum %v", b.reachEffect, effect)
	}

	var reaches, full = 0, 0
	for cell := range b.cells {
		switch b.cells[cell].count {
		case 3:
			reaches++
		case 4:
			full++
		}
	}
	if reaches != b.reachCount {
		return errors.Errorf("%v cells with three edges, %v reaches", reaches, b.reachCount)
	}
	if b.area[Black]+b.area[White] != full {
		return errors.Errorf("areas %v - %v, full cells %v",
			b.area[Black], b.area[White], full)
	}
	return nil
}
