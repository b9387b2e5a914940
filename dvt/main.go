package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/yhlin/divtrack/cmd"
)

func main() {
	// A .env file in the working directory can hold FINMIND_TOKEN and
	// the Gemini credentials; a missing file is fine.
	godotenv.Load()

	// Shell completion: one entry per subcommand, plus the shared
	// history-file flag. Complete exits by itself in completion mode.
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	completion := &complete.Command{
		Sub:   sub,
		Flags: map[string]complete.Predictor{"file": predict.Files("*.csv")},
	}
	completion.Complete("dvt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
