package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/fetchlist/internal/cli"
	"github.com/idilsaglam/fetchlist/internal/config"
	"github.com/idilsaglam/fetchlist/internal/ui"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}

	// Root flags (apply to every subcommand) override env and .env.
	flag.StringVar(&cfg.Endpoint, "url", cfg.Endpoint, "list endpoint")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "classic, neon or mono")
	flag.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colors")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{Config: cfg})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
