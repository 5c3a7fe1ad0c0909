package config

import (
	"flag"
	"os"

	"github.com/jumpaku/accountd/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     PostgreSQL DSN
//	-s string     token HMAC secret key
//	-iss string   token issuer claim
//	-aud string   token audience claim
//	-sub string   token subject claim
//	-ttl dur      token lifetime (e.g., "48h")
//	-nbf dur      token not-before offset (e.g., "-10s"; pass as -nbf=-10s)
//
// os.Args is first filtered to only the flags handled here, avoiding
// collisions with flags owned by other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-iss", "-aud", "-sub", "-ttl", "-nbf"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenIssuer, "iss", config.TokenIssuer, "token issuer claim")
	fs.StringVar(&config.TokenAudience, "aud", config.TokenAudience, "token audience claim")
	fs.StringVar(&config.TokenSubject, "sub", config.TokenSubject, "token subject claim")
	fs.DurationVar(&config.TokenTTL, "ttl", config.TokenTTL, "token lifetime")
	fs.DurationVar(&config.TokenNotBefore, "nbf", config.TokenNotBefore, "token not-before offset")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
