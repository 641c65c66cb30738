package tactic

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

//go:embed tests.epd
var defaultTests string

// EpdItem is a test position: the moves leading to it and the moves that solve it.
type EpdItem struct {
	content   string
	position  common.Position
	bestMoves []common.Move
}

func (item *EpdItem) String() string {
	return item.content
}

// DefaultTests returns the built-in suite.
func DefaultTests() []EpdItem {
	return mustReadEpd(defaultTests)
}

func mustReadEpd(content string) []EpdItem {
	var result, err = ReadEpd(strings.NewReader(content))
	if err != nil {
		panic(errors.Wrap(err, "read built-in tests"))
	}
	return result
}

func LoadEpd(filePath string) ([]EpdItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadEpd(file)
}

// ReadEpd skips lines that fail to parse.
func ReadEpd(r io.Reader) ([]EpdItem, error) {
	var result []EpdItem
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		var test, err = parseEpdTest(line)
		if err != nil {
			log.Warn().Err(err).Msg("skip test")
			continue
		}
		result = append(result, test)
	}
	return result, scanner.Err()
}

func parseEpdTest(s string) (EpdItem, error) {
	var bmBegin = strings.Index(s, "bm ")
	var bmEnd = strings.Index(s, ";")
	if bmBegin < 0 || bmEnd < bmBegin {
		return EpdItem{}, errors.Errorf("no best moves %v", s)
	}
	var record = strings.Fields(s[:bmBegin])
	var sBestMoves = strings.Fields(s[bmBegin:bmEnd])[1:]

	var p, err = common.NewPositionFromRecord(record)
	if err != nil {
		return EpdItem{}, errors.Wrapf(err, "parse test %v", s)
	}

	bestMoves, err := common.ParseMoves(sBestMoves)
	if err != nil {
		return EpdItem{}, errors.Wrapf(err, "parse test %v", s)
	}
	if len(bestMoves) == 0 {
		return EpdItem{}, errors.Errorf("empty best moves %v", s)
	}
	for _, move := range bestMoves {
		if p.HasEdge(move) {
			return EpdItem{}, errors.Errorf("best move %v already drawn %v", move, s)
		}
	}

	return EpdItem{
		content:   s,
		position:  p,
		bestMoves: bestMoves,
	}, nil
}
