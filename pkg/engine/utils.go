package engine

import (
	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

const (
	stackSize     = MaxMoves + 1
	valueMate     = 30000
	valueInfinity = 31000
	valueWin      = valueMate - Boxes
	valueLoss     = -valueWin
	// root moves that failed to raise alpha
	valueRefuted = -valueInfinity
)

func newScore(v int) Score {
	if v >= valueWin {
		return Score{Boxes: v - valueMate, Decided: 1}
	}
	if v <= valueLoss {
		return Score{Boxes: v + valueMate, Decided: -1}
	}
	return Score{Boxes: v}
}
