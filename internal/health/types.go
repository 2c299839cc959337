package health

import "time"

// Endpoint identifies which NotebookLM call a health entry covers
type Endpoint string

const (
	EndpointList  Endpoint = "list"
	EndpointQuery Endpoint = "query" // both query shapes count as one endpoint
)

// HealthStatus represents the health state of an upstream endpoint
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusCooldown  HealthStatus = "cooldown"
	StatusUnknown   HealthStatus = "unknown"
)

// EndpointHealth tracks the health of a single upstream endpoint
type EndpointHealth struct {
	Endpoint      Endpoint
	Status        HealthStatus
	LastChecked   time.Time
	LastSuccessAt time.Time
	FailureCount  int
	LastError     string
	LastHTTPCode  int
	CooldownUntil time.Time
}
