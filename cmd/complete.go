package cmd

import (
	"flag"

	"github.com/Sam-oo1/bussinBank/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// isBoolFlag is implemented by boolean flag values.
type isBoolFlag interface{ IsBoolFlag() bool }

// flagPredictors predicts the flags of fs, boolean flags take no value.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(isBoolFlag); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the global flags and of every
// registered subcommand.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	root.Flags["ledger"] = predict.Files("*.json")

	for _, commands := range Commands {
		for _, c := range commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(fs)}
		}
	}

	topics, err := docs.GetAllTopics()
	if err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, docs.Readme))
	}
	root.Sub["import"].Args = predict.Files("*.yaml")
	root.Sub["export-sqlite"].Args = predict.Files("*.db")
	return root
}
