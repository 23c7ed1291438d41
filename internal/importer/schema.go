package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import. Stages
// and tasks are named by author-chosen refs; dependencies list refs.
type ImportSchema struct {
	Project  ProjectImport   `json:"project"`
	Defaults *DefaultsImport `json:"defaults,omitempty"`
	Stages   []StageImport   `json:"stages"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	TeamID      string  `json:"team_id,omitempty"`
	Created     *string `json:"created,omitempty"`
	Deadline    string  `json:"deadline"`
}

// DefaultsImport defines values that cascade to stages and tasks which do
// not set their own.
type DefaultsImport struct {
	Duration     *int     `json:"duration,omitempty"`
	Responsibles []string `json:"responsibles,omitempty"`
}

type StageImport struct {
	Ref          string       `json:"ref"`
	Name         string       `json:"name"`
	Duration     *int         `json:"duration,omitempty"`
	Completed    *bool        `json:"completed,omitempty"`
	Responsibles []string     `json:"responsibles,omitempty"`
	Feedback     string       `json:"feedback,omitempty"`
	After        []string     `json:"after,omitempty"`
	Tasks        []TaskImport `json:"tasks,omitempty"`
}

// TaskImport is a task; its After refs name sibling tasks.
type TaskImport struct {
	Ref          string   `json:"ref"`
	Name         string   `json:"name"`
	Duration     *int     `json:"duration,omitempty"`
	Completed    *bool    `json:"completed,omitempty"`
	Responsibles []string `json:"responsibles,omitempty"`
	Feedback     string   `json:"feedback,omitempty"`
	After        []string `json:"after,omitempty"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
