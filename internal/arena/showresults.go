package arena

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

func showResults(
	ctx context.Context,
	totalGames int,
	gameResults <-chan gameResult,
	stat *Stat,
) error {
	for gameResult := range gameResults {
		if gameResult.result == gameResultDraw {
			stat.Draws++
		} else if gameResult.result == gameResultBlackWins && gameResult.gameInfo.engineAIsBlack ||
			gameResult.result == gameResultWhiteWins && !gameResult.gameInfo.engineAIsBlack {
			stat.Wins++
		} else {
			stat.Losses++
		}
		log.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Int("of", totalGames).
			Str("result", gameResultString(gameResult)).
			Int("plies", len(gameResult.moves)).
			Msg("game finished")
		var gs = computeStat(stat.Wins, stat.Losses, stat.Draws)
		log.Info().
			Str("score", fmt.Sprintf("%v - %v - %v", stat.Wins, stat.Losses, stat.Draws)).
			Float64("winningFraction", gs.winningFraction).
			Float64("eloDifference", gs.eloDifference).
			Float64("los", gs.los).
			Int("games", stat.Games()).
			Send()
	}
	return nil
}

type GameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

//https://chessprogramming.wikispaces.com/Match%20Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	var games = wins + losses + draws
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	return GameStatistics{
		winningFraction: winningFraction,
		eloDifference:   eloDifference,
		los:             los,
	}
}

func gameResultString(res gameResult) string {
	var score = fmt.Sprintf("%v-%v", res.area[0], res.area[1])
	switch res.result {
	case gameResultBlackWins:
		return "black wins " + score
	case gameResultWhiteWins:
		return "white wins " + score
	case gameResultDraw:
		return "draw " + score
	}
	return ""
}
