// interview.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InterviewItem describes one question of the structured interview as shown
// to the clinician. The item ids match the JSON field names of
// SuicideAssessment so the frontend can map answers directly.
type InterviewItem struct {
	ID             string `yaml:"id"`
	Label          string `yaml:"label"`
	Help           string `yaml:"help,omitempty"`
	HasDescription bool   `yaml:"has_description"`
	HasCount       bool   `yaml:"has_count,omitempty"`
}

// InterviewSection groups items the way the paper form does.
type InterviewSection struct {
	ID    string          `yaml:"id"`
	Title string          `yaml:"title"`
	Items []InterviewItem `yaml:"items"`
}

// FrequencyOption is one entry of the ideation frequency scale.
type FrequencyOption struct {
	Value int    `yaml:"value"`
	Label string `yaml:"label"`
}

// Interview holds the full question catalog served to the submission UI.
type Interview struct {
	Sections       []InterviewSection `yaml:"sections"`
	FrequencyScale []FrequencyOption  `yaml:"frequency_scale"`
}

// LoadInterview reads and parses the interview catalog YAML.
func LoadInterview(path string) (*Interview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interview file: %w", err)
	}

	var interview Interview
	if err := yaml.Unmarshal(data, &interview); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interview YAML: %w", err)
	}

	return &interview, nil
}
