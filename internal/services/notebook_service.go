package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/health"
	"notebooklm-bridge/internal/models"
)

const notebookListPath = "/api/notebook/list"

// NotebookService lists NotebookLM notebooks and keeps the notebook cache current
type NotebookService struct {
	credentials *CredentialService
	client      *NotebookLMClient
	cache       *NotebookCache
	aliases     *config.FieldAliases
	health      *health.Service
	timeout     time.Duration
}

// NewNotebookService creates a new notebook service
func NewNotebookService(
	credentials *CredentialService,
	client *NotebookLMClient,
	cache *NotebookCache,
	aliases *config.FieldAliases,
	healthSvc *health.Service,
	timeout time.Duration,
) *NotebookService {
	return &NotebookService{
		credentials: credentials,
		client:      client,
		cache:       cache,
		aliases:     aliases,
		health:      healthSvc,
		timeout:     timeout,
	}
}

// List always asks NotebookLM and refreshes the cache with the result
func (s *NotebookService) List(ctx context.Context) ([]models.Notebook, error) {
	cred, err := s.credentials.Load()
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, cred)
}

// Default returns the first notebook in upstream order, preferring a
// non-empty cached listing. It returns nil when the account has no notebooks.
// fromCache tells the caller the choice may be stale.
func (s *NotebookService) Default(ctx context.Context, cred *models.AuthCredential) (notebook *models.Notebook, fromCache bool, err error) {
	if cached, ok := s.cache.Get(ctx); ok && len(cached) > 0 {
		return &cached[0], true, nil
	}

	notebooks, err := s.fetch(ctx, cred)
	if err != nil {
		return nil, false, err
	}
	if len(notebooks) == 0 {
		return nil, false, nil
	}
	return &notebooks[0], false, nil
}

// Warm refreshes the cache if a credential is available. Used by the background
// job; it backs off while NotebookLM has the list endpoint rate limited.
func (s *NotebookService) Warm(ctx context.Context) error {
	if s.health.IsInCooldown(health.EndpointList) {
		log.Println("⏸️  [NOTEBOOKS] List endpoint cooling down, skipping cache warm")
		return nil
	}

	cred, err := s.credentials.Load()
	if err != nil {
		return err
	}
	notebooks, err := s.fetch(ctx, cred)
	if err != nil {
		return err
	}
	log.Printf("🔄 [NOTEBOOKS] Cache warmed with %d notebooks", len(notebooks))
	return nil
}

// Invalidate drops the cached listing
func (s *NotebookService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func (s *NotebookService) fetch(ctx context.Context, cred *models.AuthCredential) ([]models.Notebook, error) {
	resp, err := s.client.Post(ctx, string(health.EndpointList), notebookListPath, cred, map[string]interface{}{}, s.timeout)
	if err != nil {
		s.health.MarkFailure(health.EndpointList, err.Error(), 0)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		s.health.MarkFailure(health.EndpointList, string(resp.Body), resp.StatusCode)
		if health.IsAuthError(resp.StatusCode) {
			log.Printf("⚠️  [NOTEBOOKS] NotebookLM rejected the session (status %d) - run notebooklm-mcp-auth again", resp.StatusCode)
		}
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Detail:     "NotebookLM API error: " + truncateRunes(string(resp.Body), 200),
		}
	}

	notebooks, err := ParseNotebooks(resp.Body, s.aliases)
	if err != nil {
		s.health.MarkFailure(health.EndpointList, err.Error(), resp.StatusCode)
		return nil, fmt.Errorf("failed to parse notebook list: %w", err)
	}

	s.health.MarkHealthy(health.EndpointList)
	s.cache.Set(ctx, notebooks)
	return notebooks, nil
}

func truncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
