package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ChizhovVadim/CounterDots/pkg/common"
	"github.com/ChizhovVadim/CounterDots/pkg/engine"
	"github.com/ChizhovVadim/CounterDots/pkg/protocol"
)

/*
Counter Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "CounterDots"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var options = engine.NewOptions()
	var logLevel string
	flag.IntVar(&options.Hash, "hash", options.Hash, "transposition table size in megabytes")
	flag.IntVar(&options.MoveTime, "movetime", options.MoveTime, "default time per move in milliseconds")
	flag.IntVar(&options.MaxDepth, "depth", options.MaxDepth, "maximum search depth in turns")
	flag.BoolVar(&options.SelfCheck, "selfcheck", options.SelfCheck, "validate the board after every move")
	flag.StringVar(&logLevel, "loglevel", "info", "log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	var level, err = zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("bad log level")
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("name", name).
		Str("VersionName", versionName).
		Str("BuildDate", buildDate).
		Str("GitRevision", gitRevision).
		Str("RuntimeVersion", runtime.Version()).
		Str("GOARCH", runtime.GOARCH).
		Str("GOOS", runtime.GOOS).
		Interface("options", options).
		Send()

	var eng = engine.NewEngine(options)

	var p = protocol.New(name, author, versionName, eng,
		[]protocol.Option{
			&protocol.IntOption{OptionName: "Hash", Min: 1, Max: 1 << 16, Value: &eng.Options.Hash},
			&protocol.IntOption{OptionName: "MoveTime", Min: 1, Max: 1 << 30, Value: &eng.Options.MoveTime},
			&protocol.IntOption{OptionName: "MaxDepth", Min: 1, Max: common.MaxMoves, Value: &eng.Options.MaxDepth},
			&protocol.BoolOption{OptionName: "SelfCheck", Value: &eng.Options.SelfCheck},
		},
		os.Stdin, os.Stdout,
	)
	p.Run(context.Background())
}
