// Package baseline has the reference opponents used to measure the engine in
// the arena: a random mover and a plain depth-limited alpha-beta.
package baseline

import (
	"context"
	"time"

	"lukechampine.com/frand"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

const valueInfinity = 1 << 20

// Random draws a uniformly random undrawn edge.
type Random struct{}

func (Random) Clear() {}

func (Random) Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error) {
	var moves = searchParams.Position.LegalMoves()
	if len(moves) == 0 {
		return common.SearchInfo{}, nil
	}
	return common.SearchInfo{
		MainLine: []common.Move{moves[frand.Intn(len(moves))]},
	}, nil
}

// Greedy is alpha-beta over the area differential with no table and no move ordering.
// Depth counts turns: completing a box keeps the turn and the depth.
// Only the depth limit is honoured, time and node limits are ignored.
type Greedy struct {
	Depth int
	nodes int64
}

func NewGreedy(depth int) *Greedy {
	return &Greedy{Depth: depth}
}

func (g *Greedy) Clear() {}

func (g *Greedy) Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error) {
	var start = time.Now()
	var p = searchParams.Position
	var moves = p.LegalMoves()
	if len(moves) == 0 {
		return common.SearchInfo{}, nil
	}
	frand.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	var depth = g.Depth
	if searchParams.Limits.Depth > 0 {
		depth = searchParams.Limits.Depth
	}
	depth = common.Max(1, depth)
	g.nodes = 0

	var bestMove = moves[0]
	var best = -valueInfinity
	var alpha = -valueInfinity
	for _, move := range moves {
		if ctx.Err() != nil && best > -valueInfinity {
			break
		}
		var value = g.searchMove(&p, move, depth, alpha, valueInfinity)
		if value > best {
			best = value
			bestMove = move
		}
		alpha = common.Max(alpha, value)
	}

	return common.SearchInfo{
		Score:    common.Score{Boxes: best},
		Depth:    depth,
		Nodes:    g.nodes,
		Time:     time.Since(start),
		MainLine: []common.Move{bestMove},
	}, nil
}

// searchMove returns the value of move for the side playing it.
func (g *Greedy) searchMove(p *common.Position, move common.Move, depth, alpha, beta int) int {
	var child = *p
	var captured, err = child.MakeMove(move)
	if err != nil {
		return -valueInfinity
	}
	g.nodes++
	if captured != 0 {
		return g.alphaBeta(&child, depth, alpha, beta)
	}
	return -g.alphaBeta(&child, depth-1, -beta, -alpha)
}

func (g *Greedy) alphaBeta(p *common.Position, depth, alpha, beta int) int {
	if depth <= 0 || p.IsFilled() {
		return p.AreaDiff(p.SideToMove())
	}
	var best = -valueInfinity
	for _, move := range p.LegalMoves() {
		var value = g.searchMove(p, move, depth, alpha, beta)
		if value > best {
			best = value
			if value >= beta {
				break
			}
		}
		alpha = common.Max(alpha, value)
	}
	return best
}
