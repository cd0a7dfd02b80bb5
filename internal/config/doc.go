// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv) in development, then from process
// environment. Validates required fields and rate-limit overrides.
package config
