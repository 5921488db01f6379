package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

var serverFlags = flagx.NewSet([]string{"-a", "-d", "-s", "-t", "-b"}, "-m")

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   store DSN
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-b int      bcrypt cost
//	-m          provision the schema at startup
//
// Unknown arguments are filtered out first so other components' flags do
// not collide. Parse errors panic.
func parseFlags(config *Config) {
	args := serverFlags.Filter(os.Args[1:])

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.RunMigrations, "m", config.RunMigrations, "run schema migrations at startup")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
