package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing DATABASE_URL is fatal", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_PUBLIC_KEY", "some-key")

		_, err := Load()
		require.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("missing public key is fatal", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/pulsewatch")
		t.Setenv("JWT_PUBLIC_KEY", "")
		t.Setenv("JWT_PUBLIC_KEY_FILE", "")

		_, err := Load()
		require.ErrorContains(t, err, "JWT_PUBLIC_KEY")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/pulsewatch")
		t.Setenv("JWT_PUBLIC_KEY", "some-key")
		t.Setenv("PORT", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "3001", cfg.Port)
		require.Equal(t, []byte("some-key"), cfg.JWTPublicKey)
	})

	t.Run("key from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jwt.pem")
		require.NoError(t, os.WriteFile(path, []byte("file-key"), 0o600))

		t.Setenv("DATABASE_URL", "postgres://localhost/pulsewatch")
		t.Setenv("JWT_PUBLIC_KEY", "")
		t.Setenv("JWT_PUBLIC_KEY_FILE", path)
		t.Setenv("PORT", "8080")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "8080", cfg.Port)
		require.Equal(t, []byte("file-key"), cfg.JWTPublicKey)
	})
}
