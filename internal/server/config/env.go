package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr       = "CAREERKIT_GRPC_ADDR"
	EnvOpsAddr        = "CAREERKIT_OPS_ADDR"
	EnvDatabaseDSN    = "CAREERKIT_DATABASE_DSN"
	EnvSecretKey      = "CAREERKIT_SECRET_KEY"
	EnvAccessTTL      = "CAREERKIT_ACCESS_TOKEN_TTL"
	EnvRefreshTTL     = "CAREERKIT_REFRESH_TOKEN_TTL"
	EnvOAuthProvider  = "CAREERKIT_OAUTH_PROVIDER"
	EnvOAuthSecret    = "CAREERKIT_OAUTH_SECRET"
	EnvOAuthIssuer    = "CAREERKIT_OAUTH_ISSUER"
	EnvOAuthAudience  = "CAREERKIT_OAUTH_AUDIENCE"
	EnvS3RootUser     = "CAREERKIT_S3_ROOT_USER"
	EnvS3RootPassword = "CAREERKIT_S3_ROOT_PASSWORD"
	EnvS3Bucket       = "CAREERKIT_S3_BUCKET"
	EnvS3Region       = "CAREERKIT_S3_REGION"
	EnvS3BaseEndpoint = "CAREERKIT_S3_BASE_ENDPOINT"
)

// dotenvFiles are loaded (if present) before the environment is read.
// godotenv never overrides variables that are already set.
var dotenvFiles = []string{".env"}

// parseEnv overlays config with CAREERKIT_* variables. Durations use Go
// syntax ("15m"); unparsable durations panic like malformed JSON does.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	setString(&config.EndpointAddrGRPC, os.Getenv(EnvGRPCAddr))
	setString(&config.EndpointAddrOps, os.Getenv(EnvOpsAddr))
	setString(&config.DatabaseDSN, os.Getenv(EnvDatabaseDSN))
	setString(&config.SecretKey, os.Getenv(EnvSecretKey))
	setString(&config.OAuthProvider, os.Getenv(EnvOAuthProvider))
	setString(&config.OAuthSecret, os.Getenv(EnvOAuthSecret))
	setString(&config.OAuthIssuer, os.Getenv(EnvOAuthIssuer))
	setString(&config.OAuthAudience, os.Getenv(EnvOAuthAudience))
	setString(&config.S3RootUser, os.Getenv(EnvS3RootUser))
	setString(&config.S3RootPassword, os.Getenv(EnvS3RootPassword))
	setString(&config.S3Bucket, os.Getenv(EnvS3Bucket))
	setString(&config.S3Region, os.Getenv(EnvS3Region))
	setString(&config.S3BaseEndpoint, os.Getenv(EnvS3BaseEndpoint))

	setDuration(&config.AccessTokenValidityDuration, os.Getenv(EnvAccessTTL))
	setDuration(&config.RefreshTokenValidityDuration, os.Getenv(EnvRefreshTTL))
}

func setDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
