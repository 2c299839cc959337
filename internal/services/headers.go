package services

import (
	"net/http"
	"sort"
	"strings"

	"notebooklm-bridge/internal/models"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// CookieHeader joins the session cookies as "k=v; k=v", sorted by name
func CookieHeader(cred *models.AuthCredential) string {
	if cred == nil || len(cred.Cookies) == 0 {
		return ""
	}

	names := make([]string, 0, len(cred.Cookies))
	for name := range cred.Cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+cred.Cookies[name])
	}
	return strings.Join(pairs, "; ")
}

// BuildHeaders returns the headers that make a request look like the
// logged-in browser session. Missing credential fields become empty values.
func BuildHeaders(cred *models.AuthCredential, baseURL string) http.Header {
	csrf := ""
	if cred != nil {
		csrf = cred.CSRFToken
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Cookie", CookieHeader(cred))
	h.Set("X-Goog-Csrf-Token", csrf)
	h.Set("Origin", baseURL)
	h.Set("Referer", baseURL+"/")
	h.Set("User-Agent", browserUserAgent)
	return h
}
