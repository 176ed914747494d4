// Command cpfr evaluates a CPF-funded SGX portfolio: breakeven prices, net
// P&L after fees and opportunity cost, technical signals and risk reports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cpfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		sub[c.Name()] = &complete.Command{}
	}

	// Shell completion of subcommand names; a no-op outside completion mode.
	completer := &complete.Command{Sub: sub}
	completer.Complete(path.Base(os.Args[0]))

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
