package arena

import (
	"context"
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

//go:embed openings.txt
var openingsTxt string

func loadOpenings(
	ctx context.Context,
	openings [][]common.Move,
	gameInfos chan<- gameInfo,
) error {
	for i, opening := range openings {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsBlack: true, gameNumber: 1 + 2*i}:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsBlack: false, gameNumber: 1 + 2*i + 1}:
		}
	}
	return nil
}

// buildOpenings parses the given records and tops them up with random openings up to games.
func buildOpenings(records []string, games, maxPlies int) ([][]common.Move, error) {
	var result [][]common.Move
	for _, record := range records {
		var opening, err = parseOpening(record)
		if err != nil {
			return nil, err
		}
		result = append(result, opening)
	}
	for len(result) < games {
		result = append(result, randomOpening(frand.Intn(maxPlies+1)))
	}
	return result, nil
}

func parseOpening(record string) ([]common.Move, error) {
	var moves, err = common.ParseMoves(strings.Fields(record))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", record)
	}
	if _, err = common.NewPositionFromMoves(moves); err != nil {
		return nil, errors.Wrapf(err, "opening %q", record)
	}
	return moves, nil
}

// randomOpening plays random quiet moves: no box gets its third edge.
func randomOpening(plies int) []common.Move {
	var p common.Position
	var result []common.Move
	for len(result) < plies {
		var quiet []common.Move
		for _, m := range p.LegalMoves() {
			var first, second = m.Cells()
			if !isNearReach(&p, first) && !isNearReach(&p, second) {
				quiet = append(quiet, m)
			}
		}
		if len(quiet) == 0 {
			break
		}
		var m = quiet[frand.Intn(len(quiet))]
		if _, err := p.MakeMove(m); err != nil {
			panic(err)
		}
		result = append(result, m)
	}
	return result
}

func isNearReach(p *common.Position, cell int) bool {
	if !common.IsBox(cell) {
		return false
	}
	var count = 0
	for dir := common.DirLeft; dir <= common.DirUp; dir++ {
		if p.Line(cell, dir) {
			count++
		}
	}
	return count >= 2
}

func getOpenings() []string {
	var result []string
	var lines = strings.Split(openingsTxt, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !(line == "" || strings.HasPrefix(line, "//")) {
			result = append(result, line)
		}
	}
	return result
}

// DefaultOpenings are the opening lines shipped with the arena.
func DefaultOpenings() []string {
	return getOpenings()
}
