package services

import (
	"testing"

	"notebooklm-bridge/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildHeaders(t *testing.T) {
	h := BuildHeaders(&testCredential, "https://notebooklm.google.com")

	assert.Equal(t, "HSID=hsid-value; SID=sid-value", h.Get("Cookie"))
	assert.Equal(t, "csrf-123", h.Get("X-Goog-Csrf-Token"))
	assert.Equal(t, "https://notebooklm.google.com", h.Get("Origin"))
	assert.Equal(t, "https://notebooklm.google.com/", h.Get("Referer"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Contains(t, h.Get("User-Agent"), "Mozilla/5.0")
}

func TestBuildHeaders_EmptyCredential(t *testing.T) {
	h := BuildHeaders(&models.AuthCredential{}, "https://example.test")

	assert.Empty(t, h.Get("Cookie"))
	assert.Empty(t, h.Get("X-Goog-Csrf-Token"))
	assert.Contains(t, h, "Cookie")
	assert.Contains(t, h, "X-Goog-Csrf-Token")
}
