package services

import (
	"encoding/json"
	"errors"
	"log/slog"

	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/models"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("response is not valid JSON")

// firstPresent returns the value of the first alias present in r.
// Aliases are gjson paths, so "result.answer" reaches one level deeper.
func firstPresent(r gjson.Result, aliases []string) (gjson.Result, bool) {
	for _, alias := range aliases {
		if v := r.Get(alias); v.Exists() {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// ParseNotebooks maps a listing body onto notebooks. Non-object entries are
// skipped; a body without any known list key yields an empty slice.
func ParseNotebooks(body []byte, aliases *config.FieldAliases) ([]models.Notebook, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidJSON
	}

	notebooks := []models.Notebook{}
	list, ok := firstPresent(gjson.ParseBytes(body), aliases.NotebookList)
	if !ok || !list.IsArray() {
		return notebooks, nil
	}

	list.ForEach(func(_, nb gjson.Result) bool {
		if !nb.IsObject() {
			return true
		}

		notebook := models.Notebook{Title: "Untitled"}
		if id, ok := firstPresent(nb, aliases.NotebookID); ok {
			notebook.ID = id.String()
		}
		if title, ok := firstPresent(nb, aliases.NotebookTitle); ok {
			notebook.Title = title.String()
		}
		if sources, ok := firstPresent(nb, aliases.NotebookSources); ok {
			notebook.SourceCount = countEntries(sources)
		}

		notebooks = append(notebooks, notebook)
		return true
	})

	return notebooks, nil
}

// ExtractAnswer pulls the answer text and source records out of a query body
func ExtractAnswer(body []byte, aliases *config.FieldAliases) (string, []map[string]interface{}, error) {
	if !gjson.ValidBytes(body) {
		return "", nil, errInvalidJSON
	}
	root := gjson.ParseBytes(body)

	answer := ""
	if v, ok := firstPresent(root, aliases.Answer); ok {
		answer = v.String()
	}

	sources := []map[string]interface{}{}
	if v, ok := firstPresent(root, aliases.Sources); ok && v.IsArray() {
		for i, item := range v.Array() {
			if !item.IsObject() {
				slog.Debug("skipping non-object source entry", "index", i, "type", item.Type.String())
				continue
			}
			var record map[string]interface{}
			if err := json.Unmarshal([]byte(item.Raw), &record); err == nil {
				sources = append(sources, record)
			}
		}
	}

	return answer, sources, nil
}

func countEntries(v gjson.Result) int {
	switch {
	case v.IsArray():
		return len(v.Array())
	case v.IsObject():
		return len(v.Map())
	default:
		return 0
	}
}
