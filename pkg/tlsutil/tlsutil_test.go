package tlsutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDevCertificates(t *testing.T) {
	dir := t.TempDir()

	certs, err := GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, dir, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "server.pem"), certs.CertFile)

	serverCreds, err := ServerCredentials(certs.CertFile, certs.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", serverCreds.Info().SecurityProtocol)

	clientCreds, err := ClientCredentials(certs.CAFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", clientCreds.Info().SecurityProtocol)
}

func TestLoadErrors(t *testing.T) {
	_, err := ServerCredentials("missing.pem", "missing-key.pem")
	assert.Error(t, err)

	_, err = ClientCredentials(filepath.Join(t.TempDir(), "none.pem"))
	assert.Error(t, err)
}
