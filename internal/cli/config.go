package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/sheeter"
)

// Config is the YAML document read by --config:
//
//	format: table
//	schema:
//	  header: true
//	  columns:
//	    - name: id
//	    - name: tags
//	      separator: ";"
//	options:
//	  ignore_unknown: true
//	  numbers_as_text: false
type Config struct {
	Format  string             `yaml:"format,omitempty"`
	Schema  sheeter.SchemaSpec `yaml:"schema"`
	Options sheeter.Options    `yaml:"options,omitempty"`
}

// LoadConfig reads a config file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decode config %s: %w", sheeter.ErrConfiguration, path, err)
	}
	return &cfg, nil
}

// loadSchemaFile reads a standalone YAML schema document.
func loadSchemaFile(path string) (sheeter.SchemaSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return sheeter.SchemaSpec{}, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()
	s, err := sheeter.LoadSchema(f)
	if err != nil {
		return sheeter.SchemaSpec{}, err
	}
	return s.Spec(), nil
}
