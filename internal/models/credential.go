package models

// AuthCredential holds the browser session captured by notebooklm-mcp-auth.
// The bridge only ever reads it; the external login tool owns the file.
type AuthCredential struct {
	Cookies   map[string]string `json:"cookies"`
	CSRFToken string            `json:"csrf_token"`
	SessionID string            `json:"session_id"`
}

// SessionPreview returns the first 10 characters of the session ID followed by "...".
func (a *AuthCredential) SessionPreview() string {
	runes := []rune(a.SessionID)
	if len(runes) > 10 {
		runes = runes[:10]
	}
	return string(runes) + "..."
}
