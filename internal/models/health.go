package models

import "time"

// RootStatus is returned by GET /
type RootStatus struct {
	Service       string `json:"service"`
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
}

// HealthStatus is returned by GET /health
type HealthStatus struct {
	Status         string         `json:"status"`
	AuthValid      bool           `json:"auth_valid"`
	SessionPreview *string        `json:"session_preview"`
	AuthFile       string         `json:"auth_file"`
	Upstream       UpstreamStatus `json:"upstream"`
}

// UpstreamStatus summarises recent NotebookLM call outcomes
type UpstreamStatus struct {
	Healthy       bool       `json:"healthy"`
	FailureCount  int        `json:"failure_count"`
	LastError     string     `json:"last_error,omitempty"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	CooldownUntil *time.Time `json:"cooldown_until,omitempty"`
}
