package engine

import (
	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

// GenerateMoves appends every undrawn edge to buffer[:0]: vertical edges first, then horizontal ones.
func GenerateMoves(b *GameState, buffer []Move) []Move {
	var count = 0
	for _, m := range AllMoves {
		if !b.hasLine(m) {
			buffer[count] = m
			count++
		}
	}
	return buffer[:count]
}
