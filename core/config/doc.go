// Package config loads environment-backed configuration structs.
//
// Structs describe their variables with caarlos0/env tags. A .env file in the
// working directory is read once, on first use, through godotenv; a missing
// file is not an error. Each struct type is parsed once and cached, so
// middleware built per route does not re-read the environment.
//
//	import "github.com/dmitrymomot/input/core/config"
//
//	type InputConfig struct {
//		Sanitize     bool   `env:"INPUT_SANITIZE" envDefault:"true"`
//		RequestOrder string `env:"INPUT_REQUEST_ORDER" envDefault:""`
//	}
//
//	var cfg InputConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure during startup.
//	config.MustLoad(&cfg)
//
// Different types are cached independently. Tests that modify the environment
// between loads call Reset first.
package config
