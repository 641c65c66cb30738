package engine

import (
	"context"
	"time"

	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

type simpleTimeManager struct {
	ctx       context.Context
	start     time.Time
	limits    LimitsType
	maxDepth  int
	hardLimit time.Duration
	cancel    context.CancelFunc
}

func newSimpleTimeManager(ctx context.Context, start time.Time,
	limits LimitsType, options *Options, p *GameState) *simpleTimeManager {

	var tm = &simpleTimeManager{
		start:  start,
		limits: limits,
	}

	if !limits.Infinite {
		var moveTime = limits.MoveTime
		if moveTime <= 0 {
			moveTime = options.MoveTime
		}
		tm.hardLimit = time.Duration(moveTime) * time.Millisecond
	}

	tm.maxDepth = options.MaxDepth
	if limits.Depth > 0 {
		tm.maxDepth = limits.Depth
	}
	// deeper iterations see the whole remaining game
	tm.maxDepth = Max(1, Min(tm.maxDepth, MaxPly-p.Ply()))

	if tm.hardLimit != 0 {
		tm.ctx, tm.cancel = context.WithDeadline(ctx, start.Add(tm.hardLimit))
	} else {
		tm.ctx, tm.cancel = context.WithCancel(ctx)
	}
	return tm
}

func (tm *simpleTimeManager) MaxDepth() int {
	return tm.maxDepth
}

func (tm *simpleTimeManager) IsDone() bool {
	if tm.hardLimit != 0 && time.Since(tm.start) >= tm.hardLimit {
		return true
	}
	return tm.ctx.Err() != nil
}

func (tm *simpleTimeManager) OnNodesChanged(nodes int) {
	if tm.limits.Nodes > 0 && nodes >= tm.limits.Nodes {
		tm.cancel()
	}
}

func (tm *simpleTimeManager) OnIterationComplete(line mainLine) {
	if tm.limits.Infinite {
		return
	}
	if line.depth >= tm.maxDepth {
		tm.cancel()
		return
	}
	if line.score >= valueWin || line.score <= valueLoss {
		tm.cancel()
		return
	}
}

func (tm *simpleTimeManager) Close() {
	tm.cancel()
}
