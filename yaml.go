package sheeter

import (
	"gopkg.in/yaml.v3"
)

// renderYAML writes the sheet as a YAML sequence of row sequences.
func renderYAML(s *collectSink) error {
	enc := yaml.NewEncoder(s.w)
	if s.cfg.indent != "" {
		enc.SetIndent(len(s.cfg.indent))
	}
	if err := enc.Encode(documentRows(s)); err != nil {
		return err
	}
	return enc.Close()
}
