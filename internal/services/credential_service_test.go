package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"notebooklm-bridge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_EnvTakesPrecedence(t *testing.T) {
	authFile := writeAuthFile(t, testCredential)
	t.Setenv(config.AuthJSONEnv, `{"cookies":{"A":"1"},"csrf_token":"env-csrf","session_id":"env-session"}`)

	cred, err := NewCredentialService(authFile).Load()
	require.NoError(t, err)

	assert.Equal(t, "env-csrf", cred.CSRFToken)
	assert.Equal(t, map[string]string{"A": "1"}, cred.Cookies)
}

func TestCredentialService_MalformedEnvFallsBackToFile(t *testing.T) {
	authFile := writeAuthFile(t, testCredential)
	t.Setenv(config.AuthJSONEnv, "{not json")

	cred, err := NewCredentialService(authFile).Load()
	require.NoError(t, err)

	assert.Equal(t, testCredential.SessionID, cred.SessionID)
}

func TestCredentialService_NoSources(t *testing.T) {
	t.Setenv(config.AuthJSONEnv, "")
	svc := NewCredentialService(filepath.Join(t.TempDir(), "missing.json"))

	_, err := svc.Load()

	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	assert.True(t, IsAuthError(err))
	assert.Contains(t, err.Error(), "not authenticated")
	assert.False(t, svc.AuthFileExists())
}

func TestCredentialService_MalformedEnvAndNoFile(t *testing.T) {
	t.Setenv(config.AuthJSONEnv, "[]")

	_, err := NewCredentialService(filepath.Join(t.TempDir(), "missing.json")).Load()

	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCredentialService_MalformedFile(t *testing.T) {
	t.Setenv(config.AuthJSONEnv, "")
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	svc := NewCredentialService(path)

	_, err := svc.Load()

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, path, authErr.Source)
	assert.True(t, IsAuthError(err))
	assert.True(t, svc.AuthFileExists())
	assert.Equal(t, path, svc.AuthFilePath())
}

func TestCredentialService_ReadsFreshEveryCall(t *testing.T) {
	t.Setenv(config.AuthJSONEnv, "")
	path := filepath.Join(t.TempDir(), "auth.json")
	svc := NewCredentialService(path)

	_, err := svc.Load()
	require.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, os.WriteFile(path, []byte(`{"session_id":"later"}`), 0o600))
	cred, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "later", cred.SessionID)
}
