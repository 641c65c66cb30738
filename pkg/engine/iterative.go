package engine

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

// iterativeDeepening keeps the result of the last completed iteration.
// An iteration cut by the time manager is thrown away.
func iterativeDeepening(t *thread) error {
	var e = t.engine
	var rml = t.rootMoves
	e.mainLine = mainLine{
		depth: 0,
		score: t.board.AreaDiff(t.board.SideToMove()),
		moves: []Move{rml[0].move},
	}
	if len(rml) <= 1 {
		return nil
	}

	for depth := 1; depth <= t.timeManager.MaxDepth(); depth++ {
		if t.timeManager.IsDone() {
			break
		}
		log.Debug().Int("depth", depth).Msg("deepening-iteratively")
		var _, _, err = t.alphaBeta(-valueInfinity, valueInfinity, depth, 0, nodeRoot)
		if err != nil {
			if errors.Is(err, errSearchTimeout) {
				log.Debug().Int("depth", depth).Int64("nodes", t.nodes).Msg("iteration-aborted")
				break
			}
			return err
		}
		rml.sort()
		rml.savePrevious()
		e.onIterationComplete(t, depth)
	}
	return nil
}
