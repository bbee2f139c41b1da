package dictionary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk dictionary content format produced by the offline
// content pipeline.
type File struct {
	Entries []Entry `yaml:"entries"`
}

// LoadFile reads dictionary entries from a YAML content file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary file: %w", err)
	}
	return Parse(data)
}

// Parse decodes dictionary entries from YAML content.
func Parse(data []byte) ([]Entry, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse dictionary file: %w", err)
	}
	for i, e := range file.Entries {
		if e.Word == "" {
			return nil, fmt.Errorf("dictionary entry %d has an empty word", i)
		}
	}
	return file.Entries, nil
}
