package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvHTTPAddr, ":8081")
	t.Setenv(EnvDatabaseURL, "postgres://crm@db/crm")
	t.Setenv(EnvJWTSecret, "env-secret")
	t.Setenv(EnvFrontendURL, "https://crm.example.com")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8081", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://crm@db/crm", c.DatabaseDSN)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, "https://crm.example.com", c.FrontendOrigin)
}

func TestParseEnv_EmptyKeepsCurrent(t *testing.T) {
	t.Setenv(EnvJWTSecret, "")
	t.Setenv(EnvFrontendURL, "")

	c := Config{SecretKey: "keep", FrontendOrigin: "http://keep"}
	parseEnv(&c)

	assert.Equal(t, "keep", c.SecretKey)
	assert.Equal(t, "http://keep", c.FrontendOrigin)
}
