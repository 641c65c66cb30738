package arena

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

func playGame(
	ctx context.Context,
	engineA, engineB Engine,
	tcA, tcB TimeControl,
	info gameInfo,
) (gameResult, error) {

	log.Debug().Int("game", info.gameNumber).Msg("game started")

	engineA.Clear()
	engineB.Clear()

	var limitsA, err = tcA.limits()
	if err != nil {
		return gameResult{}, err
	}
	limitsB, err := tcB.limits()
	if err != nil {
		return gameResult{}, err
	}

	pos, err := common.NewPositionFromMoves(info.opening)
	if err != nil {
		return gameResult{}, err
	}
	var moves = append([]common.Move(nil), info.opening...)

	for !pos.IsFilled() {
		var eng = engineB
		var limits = limitsB
		if (pos.SideToMove() == common.Black) == info.engineAIsBlack {
			eng = engineA
			limits = limitsA
		}
		var searchResult, err = eng.Search(ctx, common.SearchParams{
			Position: pos,
			Limits:   limits,
		})
		if err != nil {
			return gameResult{}, err
		}
		if err = ctx.Err(); err != nil {
			return gameResult{}, err
		}
		var bestMove = searchResult.BestMove()
		if _, err = pos.MakeMove(bestMove); err != nil {
			return gameResult{}, errors.Wrapf(err, "game %v ply %v", info.gameNumber, pos.Ply+1)
		}
		moves = append(moves, bestMove)
	}

	var result = gameResultDraw
	if side, ok := pos.Winner(); ok {
		if side == common.Black {
			result = gameResultBlackWins
		} else {
			result = gameResultWhiteWins
		}
	}
	return gameResult{
		gameInfo: info,
		moves:    moves,
		area:     pos.Area,
		result:   result,
	}, nil
}
