package models

// Notebook is a NotebookLM project as exposed to the BTC Wheel frontend
type Notebook struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	SourceCount int    `json:"source_count"`
}
