// Package config loads application configuration from environment variables
// into tagged Go structs.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing:
//
//   - Load parses the process environment once per configuration type and
//     caches the result. The first call reads an optional .env file.
//   - MustLoad panics when loading fails, for settings the process cannot
//     start without.
//   - Parse reads an explicit map instead of the process environment and
//     never caches, which keeps tests free of global state.
//   - LoadEnv loads additional dotenv files; ResetCache clears the cache.
//
// # Usage
//
//	type Config struct {
//	    Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    Timeout time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// Failures wrap one of the sentinel errors so callers can use errors.Is:
// ErrParsingConfig, ErrLoadingEnvFile and ErrNilPointer.
package config
