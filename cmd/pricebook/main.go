package main

import (
	"context"
	"flag"
	"os"
	"path"

	"pricebook/internal/cli"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(cli.NewImportProductsCommand(), "import")
	commander.Register(cli.NewImportBillCommand(), "import")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
