// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is read once on first use (missing
// files are ignored) and struct fields are populated with caarlos0/env. Each
// configuration type is parsed once and cached, so packages can ask for their
// own Config without re-reading the environment.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/authkit/core/config"
//
//	type DatabaseConfig struct {
//		URL string `env:"PG_CONN_URL,required"`
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&db)
//
// Nested structs are parsed recursively, which lets an application compose
// the package-level configs (credential.Config, cookie.Config, ...) into one
// struct and load it with a single call.
package config
