// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: dotenv
// files are merged into the process environment, then tagged structs are
// parsed from it. Each struct type is parsed once per process and cached.
//
// The command composes its configuration from the per-package structs:
//
//	var app config.App
//	var mail email.Config
//	if err := errors.Join(config.Load(&app), config.Load(&mail)); err != nil {
//		return err
//	}
//
// ResetCache and Reload exist for tests and for callers that change the
// environment after startup.
package config
