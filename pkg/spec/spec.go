// Package spec defines the YAML mission specification consumed by the
// planning pipeline.
package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a mission spec from a YAML file.
func Load(path string) (*Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mission file: %w", err)
	}

	var m Mission
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing mission YAML: %w", err)
	}

	return &m, nil
}

// LoadProject loads a mission spec from a project directory.
// It looks for mission.yaml in the given directory.
func LoadProject(projectDir string) (*Mission, error) {
	missionPath := filepath.Join(projectDir, "mission.yaml")
	return Load(missionPath)
}
