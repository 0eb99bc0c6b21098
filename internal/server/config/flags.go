package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   address and port to listen on
//	-p string   path prefix of the auth routes
//	-l string   log level
//	-s int      session lifetime, minutes
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-l", "-s"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.Prefix, "p", cfg.Prefix, "path prefix of the auth routes")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	ttl := fs.Int("s", int(cfg.SessionTTL.Minutes()), "session lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.SessionTTL = time.Duration(*ttl) * time.Minute
	return nil
}
