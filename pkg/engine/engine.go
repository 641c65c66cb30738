package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

// Engine searches one position at a time. It is not safe for concurrent use:
// concurrent games need one engine each.
type Engine struct {
	Options
	transTable *transTable
	shuffle    func(n int, swap func(i, j int))
	progress   func(SearchInfo)
	start      time.Time
	mainLine   mainLine
	thread     thread
}

// thread holds everything one search invocation owns.
type thread struct {
	engine      *Engine
	board       *GameState
	timeManager *simpleTimeManager
	rootMoves   rootMoveList
	nodes       int64
	hashCuts    int64
	stack       [stackSize]struct {
		moveList [MaxMoves]Move
		picker   movePicker
	}
}

type mainLine struct {
	moves []Move
	score int
	depth int
}

func NewEngine(options Options) *Engine {
	return &Engine{
		Options: options,
		shuffle: frand.Shuffle,
	}
}

func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Hash)
	}
}

// Clear forgets everything learned in the current game.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
}

func (e *Engine) Search(ctx context.Context, searchParams SearchParams) (SearchInfo, error) {
	e.start = time.Now()
	e.Prepare()
	var p = &searchParams.Position
	if p.Ply == 0 {
		e.transTable.Clear()
	}
	var board, err = NewGameState(p)
	if err != nil {
		return SearchInfo{}, err
	}
	var tm = newSimpleTimeManager(ctx, e.start, searchParams.Limits, &e.Options, board)
	defer tm.Close()

	var t = &e.thread
	t.engine = e
	t.board = board
	t.timeManager = tm
	t.nodes = 0
	t.hashCuts = 0
	t.rootMoves, err = e.genRootMoves(board, searchParams.Limits.SearchMoves)
	if err != nil {
		return SearchInfo{}, err
	}
	e.progress = searchParams.Progress
	e.mainLine = mainLine{}
	if len(t.rootMoves) == 0 {
		return e.currentSearchResult(), nil
	}

	t.rootMoves.shuffle(e.shuffle)
	if err = iterativeDeepening(t); err != nil {
		return SearchInfo{}, err
	}
	var result = e.currentSearchResult()
	log.Info().
		Int("ply", p.Ply).
		Str("move", result.BestMove().String()).
		Stringer("score", result.Score).
		Int("depth", result.Depth).
		Int64("nodes", result.Nodes).
		Dur("time", result.Time).
		Msg("search-complete")
	return result, nil
}

func (e *Engine) currentSearchResult() SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newScore(e.mainLine.score),
		Nodes:    e.thread.nodes,
		HashCuts: e.thread.hashCuts,
		Time:     time.Since(e.start),
	}
}

func (e *Engine) onIterationComplete(t *thread, depth int) {
	var best = &t.rootMoves[0]
	e.mainLine = mainLine{
		depth: depth,
		score: best.value,
		moves: t.principalLine(best.move, depth),
	}
	log.Debug().
		Int("depth", depth).
		Str("move", best.move.String()).
		Int("value", best.value).
		Int64("nodes", t.nodes).
		Int64("hashcuts", t.hashCuts).
		Int("hashfull", e.transTable.HashFull()).
		Dur("time", time.Since(e.start)).
		Msg("iteration-complete")
	t.timeManager.OnIterationComplete(e.mainLine)
	if e.progress != nil {
		e.progress(e.currentSearchResult())
	}
}
