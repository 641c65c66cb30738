package arena

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

const (
	gameResultDraw = iota
	gameResultBlackWins
	gameResultWhiteWins
)

type Engine interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error)
}

type TimeControl struct {
	FixedNodes int
	FixedTime  time.Duration
	FixedDepth int
}

func (tc TimeControl) limits() (common.LimitsType, error) {
	var limits = common.LimitsType{
		Nodes:    tc.FixedNodes,
		MoveTime: int(tc.FixedTime / time.Millisecond),
		Depth:    tc.FixedDepth,
	}
	if limits.Nodes <= 0 && limits.MoveTime <= 0 && limits.Depth <= 0 {
		return common.LimitsType{}, errors.New("bad time control")
	}
	return limits, nil
}

type Config struct {
	Concurrency int
	// random openings, each is played twice with colours swapped
	Games           int
	MaxOpeningPlies int
	// openings in dots notation, used before random ones
	Openings     []string
	TimeControlA TimeControl
	TimeControlB TimeControl
}

type gameInfo struct {
	opening        []common.Move
	engineAIsBlack bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	moves    []common.Move
	area     [2]int
	result   int
}

// Stat is the match score from the point of view of engine A.
type Stat struct {
	Wins   int
	Losses int
	Draws  int
}

func (s Stat) Games() int {
	return s.Wins + s.Losses + s.Draws
}
