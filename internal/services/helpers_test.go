package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/health"
	"notebooklm-bridge/internal/logging"
	"notebooklm-bridge/internal/models"

	"github.com/stretchr/testify/require"
)

var testCredential = models.AuthCredential{
	Cookies:   map[string]string{"SID": "sid-value", "HSID": "hsid-value"},
	CSRFToken: "csrf-123",
	SessionID: "session-abcdefghijkl",
}

// writeAuthFile stores cred as the auth file in a temp dir and returns its path
func writeAuthFile(t *testing.T, cred models.AuthCredential) string {
	t.Helper()
	data, err := json.Marshal(cred)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// upstreamCalls counts requests per path on a fake NotebookLM
type upstreamCalls struct {
	list  atomic.Int32
	query atomic.Int32
	chat  atomic.Int32
}

type testStack struct {
	upstream  *httptest.Server
	calls     *upstreamCalls
	cache     *NotebookCache
	health    *health.Service
	notebooks *NotebookService
	queries   *QueryService
}

// newTestStack wires the services against a fake NotebookLM served by handler.
// The credential env is cleared so only authFile is consulted.
func newTestStack(t *testing.T, authFile string, handler http.HandlerFunc) *testStack {
	t.Helper()
	t.Setenv(config.AuthJSONEnv, "")

	calls := &upstreamCalls{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case notebookListPath:
			calls.list.Add(1)
		case "/api/chat":
			calls.chat.Add(1)
		default:
			calls.query.Add(1)
		}
		handler(w, r)
	}))
	t.Cleanup(upstream.Close)

	creds := NewCredentialService(authFile)
	client := NewNotebookLMClient(upstream.URL, 100, logging.NewDiscardLogger())
	cache := NewNotebookCache(time.Minute, nil)
	healthSvc := health.NewService(3)
	aliases := config.DefaultFieldAliases()
	notebooks := NewNotebookService(creds, client, cache, aliases, healthSvc, 5*time.Second)
	queries := NewQueryService(creds, client, notebooks, aliases, healthSvc, 5*time.Second)

	return &testStack{
		upstream:  upstream,
		calls:     calls,
		cache:     cache,
		health:    healthSvc,
		notebooks: notebooks,
		queries:   queries,
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
