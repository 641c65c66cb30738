package engine

import (
	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

type Options struct {
	// transposition table size in megabytes
	Hash int
	// per move budget in milliseconds when the limits give none
	MoveTime  int
	MaxDepth  int
	SelfCheck bool
}

func NewOptions() Options {
	return Options{
		Hash:      16,
		MoveTime:  1000,
		MaxDepth:  MaxMoves,
		SelfCheck: false,
	}
}
