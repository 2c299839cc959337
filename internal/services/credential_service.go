package services

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/models"
)

// CredentialService resolves the NotebookLM session on every call.
// Nothing is cached: re-running notebooklm-mcp-auth takes effect on the next request.
type CredentialService struct {
	authFile string
	getenv   func(string) string
}

// NewCredentialService creates a resolver reading NOTEBOOKLM_AUTH_JSON, then authFile
func NewCredentialService(authFile string) *CredentialService {
	return &CredentialService{
		authFile: authFile,
		getenv:   os.Getenv,
	}
}

// Load returns the current credential. The environment variable wins; if it
// does not parse, the auth file is tried instead.
func (s *CredentialService) Load() (*models.AuthCredential, error) {
	if raw := s.getenv(config.AuthJSONEnv); raw != "" {
		var cred models.AuthCredential
		err := json.Unmarshal([]byte(raw), &cred)
		if err == nil {
			return &cred, nil
		}
		slog.Warn("failed to parse credential env, falling back to auth file",
			"env", config.AuthJSONEnv, "error", err)
	}

	data, err := os.ReadFile(s.authFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, &AuthError{Source: s.authFile, Err: err}
	}

	var cred models.AuthCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, &AuthError{Source: s.authFile, Err: err}
	}
	return &cred, nil
}

// AuthFileExists reports whether the auth file is present on disk
func (s *CredentialService) AuthFileExists() bool {
	_, err := os.Stat(s.authFile)
	return err == nil
}

// AuthFilePath returns the path of the auth file
func (s *CredentialService) AuthFilePath() string {
	return s.authFile
}
