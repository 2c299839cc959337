package services

import (
	"testing"

	"notebooklm-bridge/internal/config"
	"notebooklm-bridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotebooks(t *testing.T) {
	aliases := config.DefaultFieldAliases()

	tests := []struct {
		name string
		body string
		want []models.Notebook
	}{
		{
			name: "notebooks key with sources array",
			body: `{"notebooks":[{"id":"abc","title":"T","sources":[1,2]}]}`,
			want: []models.Notebook{{ID: "abc", Title: "T", SourceCount: 2}},
		},
		{
			name: "result key with alternate field names",
			body: `{"result":[{"projectId":"p1","name":"Named"}]}`,
			want: []models.Notebook{{ID: "p1", Title: "Named", SourceCount: 0}},
		},
		{
			name: "notebooks wins over result even when empty",
			body: `{"notebooks":[],"result":[{"id":"x"}]}`,
			want: []models.Notebook{},
		},
		{
			name: "missing title defaults to Untitled and non-objects are skipped",
			body: `{"notebooks":["junk",42,{"id":"n1"}]}`,
			want: []models.Notebook{{ID: "n1", Title: "Untitled"}},
		},
		{
			name: "no list key",
			body: `{"something":"else"}`,
			want: []models.Notebook{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNotebooks([]byte(tt.body), aliases)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNotebooks_InvalidJSON(t *testing.T) {
	_, err := ParseNotebooks([]byte("<html>"), config.DefaultFieldAliases())
	assert.ErrorIs(t, err, errInvalidJSON)
}

func TestExtractAnswer_Aliases(t *testing.T) {
	aliases := config.DefaultFieldAliases()

	for _, body := range []string{
		`{"answer":"verbatim"}`,
		`{"response":"verbatim"}`,
		`{"text":"verbatim"}`,
		`{"answer":"verbatim","response":"other"}`,
	} {
		answer, sources, err := ExtractAnswer([]byte(body), aliases)
		require.NoError(t, err)
		assert.Equal(t, "verbatim", answer, body)
		assert.Equal(t, []map[string]interface{}{}, sources)
	}
}

func TestExtractAnswer_Sources(t *testing.T) {
	body := `{"answer":"a","citations":[{"title":"doc","page":3},"skip-me"]}`

	_, sources, err := ExtractAnswer([]byte(body), config.DefaultFieldAliases())
	require.NoError(t, err)

	require.Len(t, sources, 1)
	assert.Equal(t, "doc", sources[0]["title"])
	assert.Equal(t, float64(3), sources[0]["page"])
}

func TestExtractAnswer_Defaults(t *testing.T) {
	answer, sources, err := ExtractAnswer([]byte(`{}`), config.DefaultFieldAliases())
	require.NoError(t, err)
	assert.Empty(t, answer)
	assert.Empty(t, sources)
	assert.NotNil(t, sources)
}

func TestExtractAnswer_NestedAliasPath(t *testing.T) {
	aliases := config.DefaultFieldAliases()
	aliases.Answer = []string{"result.answer"}

	answer, _, err := ExtractAnswer([]byte(`{"result":{"answer":"deep"}}`), aliases)
	require.NoError(t, err)
	assert.Equal(t, "deep", answer)
}
