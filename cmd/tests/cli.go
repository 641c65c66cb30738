package main

import (
	"flag"

	"github.com/pkg/errors"
)

type command struct {
	flags *flag.FlagSet
	run   func() error
}

// cli dispatches "tests <command> [flags]" to the command's own flag set.
type cli struct {
	commands map[string]*command
}

func newCli() *cli {
	return &cli{commands: make(map[string]*command)}
}

// add registers a command. setup declares the flags and returns the handler,
// which runs after the flags are parsed.
func (c *cli) add(name string, setup func(fs *flag.FlagSet) func() error) {
	var fs = flag.NewFlagSet(name, flag.ContinueOnError)
	c.commands[name] = &command{
		flags: fs,
		run:   setup(fs),
	}
}

func (c *cli) execute(args []string) error {
	if len(args) == 0 {
		return errors.New("command required")
	}
	var cmd, found = c.commands[args[0]]
	if !found {
		return errors.Errorf("command not found %v", args[0])
	}
	if err := cmd.flags.Parse(args[1:]); err != nil {
		return errors.Wrap(err, args[0])
	}
	return cmd.run()
}
