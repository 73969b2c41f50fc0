package config

import "os"

// Environment variables understood by the server. They match the names the
// CRM front end deployment already exports.
const (
	EnvHTTPAddr    = "HTTP_ADDR"
	EnvDatabaseURL = "DATABASE_URL"
	EnvJWTSecret   = "JWT_SECRET"
	EnvFrontendURL = "FRONTEND_URL"
)

// parseEnv overlays non-empty environment variables.
func parseEnv(config *Config) {
	setString(&config.EndpointAddrHTTP, os.Getenv(EnvHTTPAddr))
	setString(&config.DatabaseDSN, os.Getenv(EnvDatabaseURL))
	setString(&config.SecretKey, os.Getenv(EnvJWTSecret))
	setString(&config.FrontendOrigin, os.Getenv(EnvFrontendURL))
}
