package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/csvpt/portfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and exits; it is a no-op in a
// normal invocation.
func completion() {
	name := predict.Something
	c := &complete.Command{
		Flags: map[string]complete.Predictor{
			"portfolio-dir": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"list": {},
			"new": {Flags: map[string]complete.Predictor{
				"name": name, "n": name, "currency": name, "c": name,
			}},
			"show": {Flags: map[string]complete.Predictor{
				"name": name, "n": name,
			}},
			"report": {Flags: map[string]complete.Predictor{
				"name": name, "n": name,
				"oversell": predict.Set{"error", "negative"},
				"offline":  predict.Nothing,
			}},
			"add-tx": {Flags: map[string]complete.Predictor{
				"name": name, "n": name, "ticker": name, "t": name,
				"side": predict.Set{"buy", "sell"},
				"qty":  name, "q": name, "price": name, "p": name,
				"fee": name, "f": name, "time": name,
			}},
		},
	}
	c.Complete("csvpt")
}
