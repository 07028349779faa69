package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDotenv(t *testing.T, files ...string) {
	t.Helper()
	orig := dotenvFiles
	dotenvFiles = files
	t.Cleanup(func() { dotenvFiles = orig })
}

func Test_parseEnv(t *testing.T) {
	withDotenv(t)

	t.Setenv(EnvDatabaseDSN, "postgres://env")
	t.Setenv(EnvAccessTTL, "30s")
	t.Setenv(EnvS3Bucket, "env-bucket")

	cfg := &Config{DatabaseDSN: "default", S3Region: "keep"}
	parseEnv(cfg)

	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Second, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "env-bucket", cfg.S3Bucket)
	assert.Equal(t, "keep", cfg.S3Region)
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CAREERKIT_OAUTH_ISSUER=https://issuer.test\n"), 0o600))
	withDotenv(t, path)

	// registers cleanup so godotenv's value does not leak into other tests
	t.Setenv(EnvOAuthIssuer, "")
	require.NoError(t, os.Unsetenv(EnvOAuthIssuer))

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "https://issuer.test", cfg.OAuthIssuer)
}

func Test_parseEnv_BadDurationPanics(t *testing.T) {
	withDotenv(t)
	t.Setenv(EnvRefreshTTL, "forever")

	require.Panics(t, func() { parseEnv(&Config{}) })
}
