package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors complete flag values by name. Other flags accept anything.
var flagPredictors = map[string]complete.Predictor{
	"input":     predict.Files("*.json"),
	"settings":  predict.Files("*"),
	"method":    predict.Set{"fifo", "lifo", "average"},
	"regime":    predict.Set{"normal", "stress", "crisis"},
	"log-level": predict.Set{"debug", "info", "warn", "error"},
}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictors(flag.CommandLine),
	}
	for _, sub := range Commands {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		c.Sub[sub.Name()] = &complete.Command{Flags: predictors(fs)}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		c.Sub[name] = &complete.Command{}
	}
	return c
}

func predictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
