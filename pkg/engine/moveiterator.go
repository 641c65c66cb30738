package engine

import (
	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

const (
	stageTransMove = iota
	stageReaches
	stageGenerate
	stageRemaining
	stageExhausted
)

// movePicker yields the moves of a position lazily:
// the hash move, then moves completing a box in reach list order, then the rest.
// The board may be changed between calls to Next as long as it is restored.
type movePicker struct {
	board     *GameState
	buffer    []Move
	transMove Move
	moves     []Move
	emitted   [2]uint64
	stage     int
	index     int
}

func (mp *movePicker) Init(board *GameState, buffer []Move, transMove Move) {
	*mp = movePicker{
		board:     board,
		buffer:    buffer,
		transMove: transMove,
	}
}

func (mp *movePicker) markEmitted(m Move) bool {
	var bit = uint64(1) << uint(m.Cell())
	if mp.emitted[m.Orientation()]&bit != 0 {
		return false
	}
	mp.emitted[m.Orientation()] |= bit
	return true
}

func (mp *movePicker) Next() Move {
	for {
		switch mp.stage {
		case stageTransMove:
			mp.stage = stageReaches
			if mp.transMove != MoveEmpty && mp.board.IsValid(mp.transMove) {
				mp.markEmitted(mp.transMove)
				return mp.transMove
			}
		case stageReaches:
			if mp.index >= mp.board.reachCount {
				mp.stage = stageGenerate
				continue
			}
			var cell = mp.board.reaches[mp.index].cell
			mp.index++
			// two reaching cells may miss the same edge
			var m = mp.board.completingMove(cell)
			if mp.markEmitted(m) {
				return m
			}
		case stageGenerate:
			mp.moves = GenerateMoves(mp.board, mp.buffer)
			mp.index = 0
			mp.stage = stageRemaining
		case stageRemaining:
			if mp.index >= len(mp.moves) {
				mp.stage = stageExhausted
				continue
			}
			var m = mp.moves[mp.index]
			mp.index++
			if mp.markEmitted(m) {
				return m
			}
		default:
			return MoveEmpty
		}
	}
}
