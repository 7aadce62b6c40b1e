package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:3001", cfg.Server.Addr)
	require.Equal(t, "data/profilehub.db", cfg.Database.Path)
	require.Equal(t, 10, cfg.Auth.BcryptCost)
	require.Equal(t, "avatars", cfg.Storage.KeyPrefix)
	require.Equal(t, "us-east-1", cfg.Storage.Region)
	require.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PROFILE_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("PROFILE_AUTH_JWTSECRET", "hunter2")
	t.Setenv("PROFILE_AUTH_BCRYPTCOST", "12")
	t.Setenv("PROFILE_STORAGE_BUCKET", "profile-avatars")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Equal(t, "hunter2", cfg.Auth.JWTSecret)
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, "profile-avatars", cfg.Storage.Bucket)
}
