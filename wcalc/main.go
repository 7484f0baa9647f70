// Command wcalc runs the personal finance calculators.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/wealth/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests, and exits, when invoked by the shell.
	cmd.Completion().Complete("wcalc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	cmd.Setup()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered tells whether name is a built-in subcommand.
func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		found = found || sub.Name() == name
	})
	return found
}
