package config

import (
	"flag"
	"os"

	"github.com/istatata/bayan/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   SQLite DSN of the local database (default from Config)
//	-e string   assistant endpoint URL
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path to the local database file")
	fs.StringVar(&cfg.AssistantEndpoint, "e", cfg.AssistantEndpoint, "assistant endpoint URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
