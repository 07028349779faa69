package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/careerkit/internal/flagx"
	"github.com/dmitrijs2005/careerkit/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration, so "15m" and integer nanoseconds are both accepted.
// Empty or missing fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	EndpointAddrOps              string         `json:"endpoint_addr_ops"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	OAuthProvider                string         `json:"oauth_provider"`
	OAuthSecret                  string         `json:"oauth_secret"`
	OAuthIssuer                  string         `json:"oauth_issuer"`
	OAuthAudience                string         `json:"oauth_audience"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	ResumeURLValidityDuration    timex.Duration `json:"resume_url_validity_duration"`
}

// parseJson overlays config with the file named by -c/-config. Without the
// flag nothing happens; an unreadable or malformed file panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrOps, c.EndpointAddrOps)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.OAuthProvider, c.OAuthProvider)
	setString(&config.OAuthSecret, c.OAuthSecret)
	setString(&config.OAuthIssuer, c.OAuthIssuer)
	setString(&config.OAuthAudience, c.OAuthAudience)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.ResumeURLValidityDuration.Duration > 0 {
		config.ResumeURLValidityDuration = c.ResumeURLValidityDuration.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
