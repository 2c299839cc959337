package models

// QueryRequest is the body of POST /query
type QueryRequest struct {
	Question   string `json:"question"`
	NotebookID string `json:"notebook_id,omitempty"` // empty = first available notebook
}

// QueryResponse is always returned with HTTP 200, failures are reported
// through Success and Error.
type QueryResponse struct {
	Answer     string                   `json:"answer"`
	Sources    []map[string]interface{} `json:"sources"`
	NotebookID string                   `json:"notebook_id"`
	Success    bool                     `json:"success"`
	Error      *string                  `json:"error"`
}

// NewQueryFailure builds an unsuccessful response with an empty answer
func NewQueryFailure(notebookID, errMsg string) *QueryResponse {
	return &QueryResponse{
		Answer:     "",
		Sources:    []map[string]interface{}{},
		NotebookID: notebookID,
		Success:    false,
		Error:      &errMsg,
	}
}
