package engine

import (
	"github.com/pkg/errors"

	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

type nodeType int

const (
	nodeNonPV nodeType = iota
	nodePV
	nodeRoot
)

// main search method.
// A move completing a box keeps the turn: the child is searched at the same
// depth and window from the same point of view, so its value is not negated.
func (t *thread) alphaBeta(alpha, beta, depth, height int, node nodeType) (Move, int, error) {
	var position = t.board
	var key = position.Key()
	var side = position.SideToMove()

	// transposition table. Values are stored without bounds and trusted as exact.
	var ttMove, ttValue, ttDepth, ttHit = t.engine.transTable.Read(key)
	if node == nodeNonPV && ttHit && ttDepth >= depth {
		t.hashCuts++
		return ttMove, ttValue, nil
	}

	if node != nodeRoot && position.IsDecided() {
		return MoveEmpty, valueMate + position.AreaDiff(side) + position.ImmediateReachEffect(), nil
	}

	if position.IsFilled() ||
		depth <= 0 && position.ReachCount() == 0 {
		return MoveEmpty, position.AreaDiff(side), nil
	}

	// The root is ordered by the previous iteration, not by the table:
	// the best root move so far goes first and the rest follow the picker.
	if node == nodeRoot {
		ttMove = t.rootMoves[0].move
	}
	var mp = &t.stack[height].picker
	mp.Init(position, t.stack[height].moveList[:], ttMove)

	var best = -valueInfinity
	var bestMove = MoveEmpty
	var moveCount = 0

	for {
		var move = mp.Next()
		if move == MoveEmpty {
			break
		}
		var rm *rootMove
		if node == nodeRoot {
			rm = t.rootMoves.find(move)
			if rm == nil {
				continue
			}
		}

		var childNode = nodeNonPV
		if moveCount == 0 && node != nodeNonPV {
			childNode = nodePV
		}

		var nodesBefore = t.nodes
		var captured, err = t.makeMove(move)
		if err != nil {
			return MoveEmpty, 0, err
		}
		var value int
		if captured != 0 {
			_, value, err = t.alphaBeta(alpha, beta, depth, height+1, childNode)
		} else {
			_, value, err = t.alphaBeta(-beta, -alpha, depth-1, height+1, childNode)
			value = -value
		}
		t.unmakeMove(move)

		if err != nil {
			return MoveEmpty, 0, err
		}
		if t.timeManager.IsDone() {
			return MoveEmpty, 0, errSearchTimeout
		}

		if rm != nil {
			rm.nodes += t.nodes - nodesBefore
			rm.depth = depth
			if moveCount == 0 || value > alpha {
				rm.value = value
			} else {
				rm.value = valueRefuted
			}
		}

		if value > best {
			best = value
			bestMove = move
		}
		if node != nodeRoot && value >= beta {
			t.engine.transTable.Update(key, move, value, depth)
			return move, value, nil
		}
		alpha = Max(alpha, value)
		moveCount++
	}

	t.engine.transTable.Update(key, bestMove, best, depth)
	return bestMove, best, nil
}

func (t *thread) makeMove(move Move) (int, error) {
	var captured, err = t.board.MakeMove(move)
	if err != nil {
		return 0, err
	}
	t.incNodes()
	if t.engine.SelfCheck {
		t.checkBoard()
	}
	return captured, nil
}

func (t *thread) unmakeMove(move Move) {
	t.board.UnmakeMove(move)
	if t.engine.SelfCheck {
		t.checkBoard()
	}
}

func (t *thread) incNodes() {
	t.nodes++
	if t.nodes&255 == 0 {
		t.timeManager.OnNodesChanged(int(t.nodes))
	}
}

func (t *thread) checkBoard() {
	if err := t.board.SelfCheck(); err != nil {
		panic(errors.Wrap(err, "self check"))
	}
}

// principalLine follows hash moves from the root for depth turns.
func (t *thread) principalLine(first Move, depth int) []Move {
	var result []Move
	var move = first
	for turns := 0; turns < depth && t.board.IsValid(move); {
		var captured, err = t.board.MakeMove(move)
		if err != nil {
			break
		}
		result = append(result, move)
		if captured == 0 {
			turns++
		}
		var next, _, _, ok = t.engine.transTable.Read(t.board.Key())
		if !ok {
			break
		}
		move = next
	}
	for i := len(result) - 1; i >= 0; i-- {
		t.board.UnmakeMove(result[i])
	}
	return result
}

func (e *Engine) genRootMoves(board *GameState, searchMoves []Move) (rootMoveList, error) {
	var buffer [MaxMoves]Move
	var ml = GenerateMoves(board, buffer[:])
	if len(searchMoves) != 0 {
		var filtered []Move
		for _, m := range ml {
			if FindMove(searchMoves, m) >= 0 {
				filtered = append(filtered, m)
			}
		}
		if len(filtered) == 0 {
			return nil, errors.New("no legal move among search moves")
		}
		ml = filtered
	}
	return newRootMoveList(ml), nil
}
