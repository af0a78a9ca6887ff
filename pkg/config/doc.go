// Package config loads configuration structs from the environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct annotated with `env` tags,
//     optionally under a variable prefix.
//   - MustLoad panics on failure, for configuration required at startup.
//
// The default .env file in the working directory is read once, on the first
// Load call; a missing file is not an error.
//
//	var cfg cookiesync.Config
//	if err := config.Load(&cfg, config.WithPrefix("COOKIESYNC_")); err != nil {
//	    log.Fatal(err)
//	}
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be matched with
// errors.Is.
package config
