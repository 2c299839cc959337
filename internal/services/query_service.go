package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/health"
	"notebooklm-bridge/internal/models"
)

const noNotebooksMessage = "No notebooks found. Create a notebook on notebooklm.google.com first."

// queryAttempt is one request shape NotebookLM might accept for a question,
// paired with the extractor for its answer.
type queryAttempt struct {
	endpoint string
	path     func(notebookID string) string
	body     func(question, notebookID string) interface{}
	extract  func(body []byte, aliases *config.FieldAliases) (string, []map[string]interface{}, error)
}

// defaultQueryAttempts are tried in order; the next one only runs after a non-200
var defaultQueryAttempts = []queryAttempt{
	{
		endpoint: "query",
		path: func(notebookID string) string {
			return "/api/notebook/" + url.PathEscape(notebookID) + "/query"
		},
		body: func(question, notebookID string) interface{} {
			return map[string]interface{}{
				"query":     question,
				"projectId": notebookID,
			}
		},
		extract: ExtractAnswer,
	},
	{
		endpoint: "chat",
		path:     func(string) string { return "/api/chat" },
		body: func(question, notebookID string) interface{} {
			return map[string]interface{}{
				"message":   question,
				"projectId": notebookID,
				"history":   []interface{}{},
			}
		},
		extract: ExtractAnswer,
	},
}

// QueryService forwards questions to NotebookLM
type QueryService struct {
	credentials *CredentialService
	client      *NotebookLMClient
	notebooks   *NotebookService
	aliases     *config.FieldAliases
	health      *health.Service
	timeout     time.Duration
	attempts    []queryAttempt
}

// NewQueryService creates a new query service
func NewQueryService(
	credentials *CredentialService,
	client *NotebookLMClient,
	notebooks *NotebookService,
	aliases *config.FieldAliases,
	healthSvc *health.Service,
	timeout time.Duration,
) *QueryService {
	return &QueryService{
		credentials: credentials,
		client:      client,
		notebooks:   notebooks,
		aliases:     aliases,
		health:      healthSvc,
		timeout:     timeout,
		attempts:    defaultQueryAttempts,
	}
}

// Query answers a question. Only a missing credential is returned as an
// error; every other failure is reported inside the response.
func (s *QueryService) Query(ctx context.Context, req *models.QueryRequest) (*models.QueryResponse, error) {
	cred, err := s.credentials.Load()
	if err != nil {
		return nil, err
	}

	notebookID := req.NotebookID
	fromCache := false
	if notebookID == "" {
		notebook, cached, err := s.notebooks.Default(ctx, cred)
		if err != nil {
			RecordQueryOutcome("upstream_error")
			return models.NewQueryFailure("", err.Error()), nil
		}
		if notebook == nil {
			RecordQueryOutcome("no_notebooks")
			return models.NewQueryFailure("", noNotebooksMessage), nil
		}
		notebookID = notebook.ID
		fromCache = cached
	}

	var (
		resp    *UpstreamResponse
		attempt queryAttempt
	)
	for _, a := range s.attempts {
		attempt = a
		resp, err = s.client.Post(ctx, a.endpoint, a.path(notebookID), cred, a.body(req.Question, notebookID), s.timeout)
		if err != nil {
			s.health.MarkFailure(health.EndpointQuery, err.Error(), 0)
			RecordQueryOutcome("request_error")
			return models.NewQueryFailure(notebookID, err.Error()), nil
		}
		if resp.StatusCode == http.StatusOK {
			break
		}
	}

	if resp.StatusCode != http.StatusOK {
		s.health.MarkFailure(health.EndpointQuery, string(resp.Body), resp.StatusCode)
		if fromCache {
			// the cached default may point at a deleted notebook
			s.notebooks.Invalidate(ctx)
		}
		RecordQueryOutcome("upstream_error")
		return models.NewQueryFailure(notebookID, fmt.Sprintf("NotebookLM API error: %d", resp.StatusCode)), nil
	}

	answer, sources, err := attempt.extract(resp.Body, s.aliases)
	if err != nil {
		s.health.MarkFailure(health.EndpointQuery, err.Error(), resp.StatusCode)
		RecordQueryOutcome("parse_error")
		return models.NewQueryFailure(notebookID, "Failed to parse NotebookLM response: "+err.Error()), nil
	}

	s.health.MarkHealthy(health.EndpointQuery)
	RecordQueryOutcome("success")
	log.Printf("💬 [QUERY] Answered via %s endpoint for notebook %s (%d sources)", attempt.endpoint, notebookID, len(sources))

	return &models.QueryResponse{
		Answer:     answer,
		Sources:    sources,
		NotebookID: notebookID,
		Success:    true,
	}, nil
}
