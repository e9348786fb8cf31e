package adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/qkart/internal/adapter"
	"github.com/stretchr/testify/require"
)

func TestMakeTLSConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingCA", func(t *testing.T) {
		_, err := adapter.MakeTLSConfig(
			filepath.Join(dir, "ca.pem"),
			filepath.Join(dir, "client.pem"),
			filepath.Join(dir, "client.key"),
		)
		require.Error(t, err)
	})

	t.Run("BadCA", func(t *testing.T) {
		ca := filepath.Join(dir, "bad-ca.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))

		_, err := adapter.MakeTLSConfig(
			ca,
			filepath.Join(dir, "client.pem"),
			filepath.Join(dir, "client.key"),
		)
		require.ErrorContains(t, err, "failed to parse CA certificate")
	})
}
