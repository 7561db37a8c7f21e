package document

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load parses and structurally validates an API description. Both YAML
// and JSON sources are accepted.
func Load(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse description: %w", err)
	}

	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid description: %w", err)
	}
	return doc, nil
}

// LoadFile reads and parses an API description from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}
