package locality

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/india.yaml
var indiaYAML []byte

// TablesFile is the YAML shape of an exclusion table file.
type TablesFile struct {
	Regions       []string `yaml:"regions"`
	AdminSuffixes []string `yaml:"admin_suffixes"`
}

// ParseTables decodes a YAML exclusion table file.
func ParseTables(b []byte) (*ExclusionTables, error) {
	var f TablesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse exclusion tables: %w", err)
	}
	return NewExclusionTables(f.Regions, f.AdminSuffixes), nil
}

// DefaultTablesFile returns the embedded Indian tables in file form, so
// callers can merge partial overrides onto it.
func DefaultTablesFile() TablesFile {
	var f TablesFile
	if err := yaml.Unmarshal(indiaYAML, &f); err != nil {
		panic(fmt.Sprintf("locality: embedded tables are invalid: %v", err))
	}
	return f
}

// DefaultTables returns the embedded Indian exclusion tables.
func DefaultTables() *ExclusionTables {
	f := DefaultTablesFile()
	return NewExclusionTables(f.Regions, f.AdminSuffixes)
}
