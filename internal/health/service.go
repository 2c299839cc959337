package health

import (
	"log"
	"sync"
	"time"
)

const defaultFailureThreshold = 3

// Service tracks the outcome of recent NotebookLM calls per endpoint.
// It never blocks requests; it only feeds /health and the logs.
type Service struct {
	mu               sync.RWMutex
	endpoints        map[Endpoint]*EndpointHealth
	failureThreshold int
	now              func() time.Time
}

// NewService creates a new health service
func NewService(failureThreshold int) *Service {
	if failureThreshold <= 0 {
		failureThreshold = defaultFailureThreshold
	}
	return &Service{
		endpoints:        make(map[Endpoint]*EndpointHealth),
		failureThreshold: failureThreshold,
		now:              time.Now,
	}
}

func (s *Service) entry(endpoint Endpoint) *EndpointHealth {
	h, exists := s.endpoints[endpoint]
	if !exists {
		h = &EndpointHealth{Endpoint: endpoint, Status: StatusUnknown}
		s.endpoints[endpoint] = h
	}
	return h
}

// MarkHealthy records a successful call
func (s *Service) MarkHealthy(endpoint Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.entry(endpoint)
	wasUnhealthy := h.Status == StatusUnhealthy || h.Status == StatusCooldown
	now := s.now()

	h.Status = StatusHealthy
	h.FailureCount = 0
	h.LastError = ""
	h.LastHTTPCode = 0
	h.LastSuccessAt = now
	h.LastChecked = now
	h.CooldownUntil = time.Time{}

	if wasUnhealthy {
		log.Printf("[HEALTH] NotebookLM %s endpoint recovered - now healthy", endpoint)
	}
}

// MarkFailure records a failed call. Quota errors put the endpoint into
// cooldown; other failures mark it unhealthy once the threshold is reached.
func (s *Service) MarkFailure(endpoint Endpoint, errMsg string, httpCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.entry(endpoint)
	now := s.now()
	h.FailureCount++
	h.LastError = truncateStr(errMsg, 200)
	h.LastHTTPCode = httpCode
	h.LastChecked = now

	if IsQuotaError(httpCode, errMsg) {
		h.Status = StatusCooldown
		h.CooldownUntil = now.Add(ParseCooldownDuration(httpCode, errMsg))
		log.Printf("[HEALTH] NotebookLM %s endpoint in COOLDOWN until %s (reason: %s)",
			endpoint, h.CooldownUntil.Format(time.RFC3339), truncateStr(errMsg, 100))
		return
	}

	if h.FailureCount >= s.failureThreshold {
		h.Status = StatusUnhealthy
		log.Printf("[HEALTH] NotebookLM %s endpoint marked UNHEALTHY after %d failures: %s",
			endpoint, h.FailureCount, h.LastError)
	} else {
		log.Printf("[HEALTH] NotebookLM %s endpoint failure %d/%d: %s",
			endpoint, h.FailureCount, s.failureThreshold, h.LastError)
	}
}

// IsInCooldown checks if an endpoint is currently in cooldown
func (s *Service) IsInCooldown(endpoint Endpoint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, exists := s.endpoints[endpoint]
	if !exists || h.Status != StatusCooldown {
		return false
	}
	return s.now().Before(h.CooldownUntil)
}

// Summary folds all endpoints into one entry: the worst status wins and the
// most recent error is reported. Unknown when no call has been made yet.
func (s *Service) Summary() EndpointHealth {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := EndpointHealth{Status: StatusUnknown}
	now := s.now()

	for _, h := range s.endpoints {
		status := h.Status
		if status == StatusCooldown && !now.Before(h.CooldownUntil) {
			status = StatusHealthy
		}
		if severity(status) > severity(summary.Status) {
			summary.Status = status
		}
		if h.LastSuccessAt.After(summary.LastSuccessAt) {
			summary.LastSuccessAt = h.LastSuccessAt
		}
		if h.LastError != "" && h.LastChecked.After(summary.LastChecked) {
			summary.LastError = h.LastError
			summary.LastHTTPCode = h.LastHTTPCode
			summary.LastChecked = h.LastChecked
		}
		if h.CooldownUntil.After(summary.CooldownUntil) && now.Before(h.CooldownUntil) {
			summary.CooldownUntil = h.CooldownUntil
		}
		summary.FailureCount += h.FailureCount
	}

	return summary
}

func severity(status HealthStatus) int {
	switch status {
	case StatusUnhealthy:
		return 3
	case StatusCooldown:
		return 2
	case StatusHealthy:
		return 1
	default:
		return 0
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
