package engine

import (
	"sort"

	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

type rootMove struct {
	move          Move
	value         int
	previousValue int
	nodes         int64
	depth         int
}

type rootMoveList []rootMove

func newRootMoveList(moves []Move) rootMoveList {
	var result = make(rootMoveList, len(moves))
	for i, m := range moves {
		result[i] = rootMove{
			move:          m,
			value:         -valueInfinity,
			previousValue: -valueInfinity,
		}
	}
	return result
}

func (rml rootMoveList) find(move Move) *rootMove {
	for i := range rml {
		if rml[i].move == move {
			return &rml[i]
		}
	}
	return nil
}

func (rml rootMoveList) shuffle(shuffle func(n int, swap func(i, j int))) {
	shuffle(len(rml), func(i, j int) {
		rml[i], rml[j] = rml[j], rml[i]
	})
}

// sort orders by value, equal values keep their order from the previous iteration.
func (rml rootMoveList) sort() {
	sort.SliceStable(rml, func(i, j int) bool {
		return rml[i].value > rml[j].value
	})
}

func (rml rootMoveList) savePrevious() {
	for i := range rml {
		rml[i].previousValue = rml[i].value
	}
}
