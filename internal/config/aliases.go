package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldAliases lists, in priority order, the JSON keys tried when reading
// NotebookLM responses. The upstream API is undocumented, so every list is
// provisional and can be overridden from a YAML file.
type FieldAliases struct {
	NotebookList    []string `yaml:"notebook_list"`
	NotebookID      []string `yaml:"notebook_id"`
	NotebookTitle   []string `yaml:"notebook_title"`
	NotebookSources []string `yaml:"notebook_sources"`
	Answer          []string `yaml:"answer"`
	Sources         []string `yaml:"sources"`
}

// DefaultFieldAliases returns the aliases observed in NotebookLM responses so far
func DefaultFieldAliases() *FieldAliases {
	return &FieldAliases{
		NotebookList:    []string{"notebooks", "result"},
		NotebookID:      []string{"id", "projectId"},
		NotebookTitle:   []string{"title", "name"},
		NotebookSources: []string{"sources"},
		Answer:          []string{"answer", "response", "text"},
		Sources:         []string{"sources", "citations"},
	}
}

// LoadFieldAliases reads overrides from a YAML file. Lists missing from the
// file keep their defaults. An empty path returns the defaults.
func LoadFieldAliases(filePath string) (*FieldAliases, error) {
	aliases := DefaultFieldAliases()
	if filePath == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases file: %w", err)
	}

	var overrides FieldAliases
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse aliases YAML: %w", err)
	}

	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	merge(&aliases.NotebookList, overrides.NotebookList)
	merge(&aliases.NotebookID, overrides.NotebookID)
	merge(&aliases.NotebookTitle, overrides.NotebookTitle)
	merge(&aliases.NotebookSources, overrides.NotebookSources)
	merge(&aliases.Answer, overrides.Answer)
	merge(&aliases.Sources, overrides.Sources)

	return aliases, nil
}
