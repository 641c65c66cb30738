package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error)
}

// Protocol drives one engine by text commands, one per line:
//
//	dab
//	setoption name <name> value <value>
//	isready
//	newgame
//	position [startpos] [moves <move>...]
//	go [movetime <ms>] [depth <n>] [nodes <n>] [infinite] [searchmoves <move>...]
//	stop
//	quit
//
// Commands are read from input, replies are written to output.
type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	input        io.Reader
	output       io.Writer
	position     common.Position
	thinking     bool
	infinite     bool
	engineOutput chan common.SearchInfo
	cancel       context.CancelFunc
}

func New(name, author, version string, engine Engine, options []Option,
	input io.Reader, output io.Writer) *Protocol {
	return &Protocol{
		name:    name,
		author:  author,
		version: version,
		engine:  engine,
		options: options,
		input:   input,
		output:  output,
	}
}

// Run returns when input is exhausted or quit is received, after the running search, if any, has reported.
func (p *Protocol) Run(ctx context.Context) {
	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(p.input, commands)
	}()

	var searchResult common.SearchInfo
	for commands != nil || p.thinking {
		select {
		case <-ctx.Done():
			if p.thinking {
				p.cancel()
			}
			commands = nil
			ctx = context.Background()
		case si, ok := <-p.engineOutput:
			if ok {
				fmt.Fprintln(p.output, searchInfoString(si))
				searchResult = si
			} else {
				fmt.Fprintf(p.output, "bestmove %v\n", searchResult.BestMove())
				p.thinking = false
				p.cancel = nil
				p.engineOutput = nil
				searchResult = common.SearchInfo{}
			}
		case commandLine, ok := <-commands:
			if !ok {
				commands = nil
				// nobody can stop an infinite search any more
				if p.thinking && p.infinite {
					p.cancel()
				}
				continue
			}
			if commandLine == "quit" {
				if p.thinking {
					p.cancel()
				}
				continue
			}
			var err = p.handle(commandLine)
			if err != nil {
				log.Error().Err(err).Str("command", commandLine).Msg("command failed")
			}
		}
	}
}

func readCommands(input io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(input)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "" {
			continue
		}
		commands <- commandLine
		if commandLine == "quit" {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read commands")
	}
}

func (p *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if p.thinking {
		if commandName == "stop" {
			p.cancel()
			return nil
		}
		return errors.New("search still run")
	}

	var h func(fields []string) error

	switch commandName {
	case "dab":
		h = p.dabCommand
	case "setoption":
		h = p.setOptionCommand
	case "isready":
		h = p.isReadyCommand
	case "position":
		h = p.positionCommand
	case "go":
		h = p.goCommand
	case "newgame":
		h = p.newGameCommand
	case "stop":
		return nil
	}

	if h == nil {
		return errors.New("command not found")
	}

	return h(fields)
}

func (p *Protocol) dabCommand(fields []string) error {
	fmt.Fprintf(p.output, "id name %s %s\n", p.name, p.version)
	fmt.Fprintf(p.output, "id author %s\n", p.author)
	for _, option := range p.options {
		fmt.Fprintln(p.output, option.String())
	}
	fmt.Fprintln(p.output, "dabok")
	return nil
}

func (p *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 || fields[0] != "name" || fields[2] != "value" {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range p.options {
		if strings.EqualFold(option.Name(), name) {
			return option.Set(value)
		}
	}
	return errors.Errorf("unhandled option %v", name)
}

func (p *Protocol) isReadyCommand(fields []string) error {
	p.engine.Prepare()
	fmt.Fprintln(p.output, "readyok")
	return nil
}

func (p *Protocol) newGameCommand(fields []string) error {
	p.engine.Clear()
	p.position = common.Position{}
	return nil
}

func (p *Protocol) positionCommand(fields []string) error {
	if len(fields) != 0 && fields[0] == "startpos" {
		fields = fields[1:]
	}
	var record []string
	if len(fields) != 0 {
		if fields[0] != "moves" {
			return errors.Errorf("unknown position token %v", fields[0])
		}
		record = fields[1:]
	}
	var position, err = common.NewPositionFromRecord(record)
	if err != nil {
		return err
	}
	p.position = position
	return nil
}

func (p *Protocol) goCommand(fields []string) error {
	var limits, err = parseLimits(fields)
	if err != nil {
		return err
	}
	var ctx, cancel = context.WithCancel(context.Background())
	p.cancel = cancel
	p.thinking = true
	p.infinite = limits.Infinite
	var engineOutput = make(chan common.SearchInfo, 3)
	p.engineOutput = engineOutput
	var searchParams = common.SearchParams{
		Position: p.position,
		Limits:   limits,
		Progress: func(si common.SearchInfo) {
			select {
			case engineOutput <- si:
			default:
			}
		},
	}
	go func() {
		defer cancel()
		var searchResult, err = p.engine.Search(ctx, searchParams)
		if err != nil {
			log.Error().Err(err).Msg("search failed")
		}
		engineOutput <- searchResult
		close(engineOutput)
	}()
	return nil
}

func searchInfoString(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, si.Score)
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v hashcuts %v time %v nps %v",
		si.Nodes, si.HashCuts, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType, err error) {
	var intArg = func(i int) (int, error) {
		if i+1 >= len(args) {
			return 0, errors.Errorf("%v: missing value", args[i])
		}
		var v, err = strconv.Atoi(args[i+1])
		if err != nil {
			return 0, errors.Wrap(err, args[i])
		}
		return v, nil
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if result.Depth, err = intArg(i); err != nil {
				return
			}
			i++
		case "nodes":
			if result.Nodes, err = intArg(i); err != nil {
				return
			}
			i++
		case "movetime":
			if result.MoveTime, err = intArg(i); err != nil {
				return
			}
			i++
		case "infinite":
			result.Infinite = true
		case "searchmoves":
			for i+1 < len(args) {
				var move, parseErr = common.ParseMove(args[i+1])
				if parseErr != nil {
					break
				}
				result.SearchMoves = append(result.SearchMoves, move)
				i++
			}
		default:
			return result, errors.Errorf("unknown go token %v", args[i])
		}
	}
	return
}
