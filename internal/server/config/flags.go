package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-d string   PostgreSQL DSN
//	-s string   access token HMAC secret
//	-o string   allowed CORS origin
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-m int      "remember me" refresh token validity, minutes
//	-n int      refresh renewal validity, minutes
//	-i int      expired token cleanup interval, minutes (0 disables)
//	-b int      bcrypt cost
//	-secure-cookies  set Secure on auth cookies
//
// Only these flags are looked at (flagx.FilterArgs); the config file flag and
// test flags pass through untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-o", "-t", "-r", "-m", "-n", "-i", "-b", "-secure-cookies",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "access token secret key")
	fs.StringVar(&config.FrontendOrigin, "o", config.FrontendOrigin, "allowed CORS origin")

	// Durations are given in whole minutes and only override the earlier
	// layers when the flag is actually present, so sub-minute values from
	// the file or defaults survive.
	durations := map[string]*time.Duration{
		"t": &config.AccessTokenValidityDuration,
		"r": &config.RefreshTokenValidityDuration,
		"m": &config.RememberMeValidityDuration,
		"n": &config.RefreshRenewalValidityDuration,
		"i": &config.CleanupInterval,
	}
	usage := map[string]string{
		"t": "access token validity (in minutes)",
		"r": "refresh token validity (in minutes)",
		"m": "remember-me refresh token validity (in minutes)",
		"n": "refresh renewal validity (in minutes)",
		"i": "expired token cleanup interval (in minutes)",
	}
	values := make(map[string]*int, len(durations))
	for name, d := range durations {
		values[name] = fs.Int(name, minutes(*d), usage[name])
	}

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.SecureCookies, "secure-cookies", config.SecureCookies, "mark auth cookies Secure")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if d, ok := durations[f.Name]; ok {
			*d = time.Duration(*values[f.Name]) * time.Minute
		}
	})
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}
