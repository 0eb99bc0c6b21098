package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the auth API
//	-d string   path of the local SQLite database
//	-l string   log level
//	-t int      request timeout in seconds (0 = none)
//
// Only these flags are looked at; -c/-config is handled by parseJson.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("authdemo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the auth API")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds, 0 disables it")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -t only overrides the timeout when given; earlier layers may carry
	// sub-second values an int flag cannot hold.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
