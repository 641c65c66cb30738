package common

import (
	"fmt"
	"time"
)

type LimitsType struct {
	Infinite    bool
	MoveTime    int
	Depth       int
	Nodes       int
	SearchMoves []Move
}

type SearchParams struct {
	Position Position
	Limits   LimitsType
	Progress func(si SearchInfo)
}

type SearchInfo struct {
	Score    Score
	Depth    int
	Nodes    int64
	HashCuts int64
	Time     time.Duration
	MainLine []Move
}

func (si *SearchInfo) BestMove() Move {
	if len(si.MainLine) == 0 {
		return MoveEmpty
	}
	return si.MainLine[0]
}

// Score is a box differential for the side to move.
// Decided is +1 when a win is guaranteed, -1 when a loss is, Boxes is then a lower bound.
type Score struct {
	Boxes   int
	Decided int
}

func (s Score) String() string {
	switch {
	case s.Decided > 0:
		return fmt.Sprintf("win %v", s.Boxes)
	case s.Decided < 0:
		return fmt.Sprintf("loss %v", s.Boxes)
	default:
		return fmt.Sprintf("boxes %v", s.Boxes)
	}
}
