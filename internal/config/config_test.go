package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_CONNECTION", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DATABASE", "grandshipper_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("JWT_PRIVATE_KEY", "testsecret123456789012345678901234")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("PORT", "4000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "grandshipper_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost", cfg.Redis.Host)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.Equal(t, "4000", cfg.Server.Port)
	require.Equal(t, 60*time.Minute, cfg.JWT.AccessTokenTTL)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.Origins)
}

func TestLoadConfig_MongoURIWins(t *testing.T) {
	t.Setenv("DB_CONNECTION", "mongodb://old:27017")
	t.Setenv("MONGODB_URI", "mongodb://new:27017")
	t.Setenv("JWT_PRIVATE_KEY", "k")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://new:27017", cfg.MongoDB.URI)
}

func TestLoadConfig_MissingJWTKey(t *testing.T) {
	t.Setenv("DB_CONNECTION", "mongodb://localhost:27017")
	t.Setenv("JWT_PRIVATE_KEY", "")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestLoadConfig_MissingDB(t *testing.T) {
	t.Setenv("DB_CONNECTION", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_PRIVATE_KEY", "k")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingDB)
}
