package change

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetaFile records per-change metadata inside the change directory.
const MetaFile = "meta.yaml"

// Meta is the per-change metadata written when a change is created.
type Meta struct {
	Schema string `yaml:"schema"`
}

// LoadMeta reads the change metadata. A missing file or directory returns an
// empty Meta, not an error; older changes predate meta.yaml.
func LoadMeta(changeDir string) (Meta, error) {
	data, err := os.ReadFile(filepath.Join(changeDir, MetaFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Meta{}, nil
		}
		return Meta{}, fmt.Errorf("change: read meta: %w", err)
	}
	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("change: parse meta: %w", err)
	}
	meta.Schema = strings.TrimSpace(meta.Schema)
	return meta, nil
}

// SaveMeta writes the change metadata, creating the change directory when
// needed.
func SaveMeta(changeDir string, meta Meta) error {
	if err := os.MkdirAll(changeDir, 0o755); err != nil {
		return fmt.Errorf("change: ensure change dir: %w", err)
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("change: encode meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(changeDir, MetaFile), data, 0o644); err != nil {
		return fmt.Errorf("change: write meta: %w", err)
	}
	return nil
}

// SchemaName picks the schema for a change. Priority: explicit override,
// then the schema recorded in the change's metadata, then the project-wide
// default.
func SchemaName(explicit, changeDir, projectDefault string) (string, error) {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed, nil
	}
	meta, err := LoadMeta(changeDir)
	if err != nil {
		return "", err
	}
	if meta.Schema != "" {
		return meta.Schema, nil
	}
	return projectDefault, nil
}
