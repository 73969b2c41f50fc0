package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/flagx"
	"github.com/dmitrijs2005/crmauth/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config for decoding configuration files. Durations use
// timex.Duration so both "720h" and integer nanoseconds are accepted.
// Zero values leave the current setting untouched.
type FileConfig struct {
	EndpointAddrHTTP               string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                    string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                      string         `json:"secret_key" yaml:"secret_key"`
	FrontendOrigin                 string         `json:"frontend_origin" yaml:"frontend_origin"`
	AccessTokenValidityDuration    timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration   timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	RememberMeValidityDuration     timex.Duration `json:"remember_me_validity_duration" yaml:"remember_me_validity_duration"`
	RefreshRenewalValidityDuration timex.Duration `json:"refresh_renewal_validity_duration" yaml:"refresh_renewal_validity_duration"`
	CleanupInterval                timex.Duration `json:"cleanup_interval" yaml:"cleanup_interval"`
	BcryptCost                     int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	SecureCookies                  *bool          `json:"secure_cookies" yaml:"secure_cookies"`
}

// parseFile overlays values from the file named by -c/-config. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. An unreadable
// or malformed file panics: the server must not start half-configured.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.SecretKey, fc.SecretKey)
	setString(&config.FrontendOrigin, fc.FrontendOrigin)

	setDuration(&config.AccessTokenValidityDuration, fc.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, fc.RefreshTokenValidityDuration)
	setDuration(&config.RememberMeValidityDuration, fc.RememberMeValidityDuration)
	setDuration(&config.RefreshRenewalValidityDuration, fc.RefreshRenewalValidityDuration)
	setDuration(&config.CleanupInterval, fc.CleanupInterval)

	if fc.BcryptCost != 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if fc.SecureCookies != nil {
		config.SecureCookies = *fc.SecureCookies
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
