package tactic

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
	"github.com/ChizhovVadim/CounterDots/pkg/engine"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	m.Run()
}

func TestReadEpd(t *testing.T) {
	is := is.New(t)
	var tests, err = ReadEpd(strings.NewReader(`
// comment
a1h a2h a1v bm b1v; id "free box"
a1h a1h bm b1v;
a1h bm a1h;
a1h a2h a1v b1v;
bm c3h c3v;
`))
	is.NoErr(err)
	is.Equal(len(tests), 2)
	is.Equal(tests[0].position.Ply, 3)
	is.Equal(tests[0].bestMoves[0].String(), "b1v")
	is.Equal(tests[1].position.Ply, 0)
	is.Equal(len(tests[1].bestMoves), 2)
}

func TestMustReadEpdPanicsOnReadError(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	mustReadEpd(strings.Repeat("a", bufio.MaxScanTokenSize+1))
}

func TestSolveDefaultTests(t *testing.T) {
	is := is.New(t)
	var tests = DefaultTests()
	is.Equal(len(tests), 5)

	var options = engine.NewOptions()
	options.Hash = 1
	var eng = engine.NewEngine(options)
	var solved, err = SolveTactic(context.Background(), tests, eng, common.LimitsType{Depth: 2})
	is.NoErr(err)
	is.Equal(solved, len(tests))

	result, err := Benchmark(context.Background(), tests, eng, 3)
	is.NoErr(err)
	is.True(result.Nodes > 0)
	is.True(result.KNPS() >= 0)
}
