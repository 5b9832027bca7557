package extract

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field names a logical value pulled from a job page.
type Field string

const (
	FieldJobTitle       Field = "jobTitle"
	FieldCompanyName    Field = "companyName"
	FieldLocation       Field = "location"
	FieldJobDescription Field = "jobDescription"
)

// Fields lists every field in output column order.
var Fields = []Field{FieldJobTitle, FieldCompanyName, FieldLocation, FieldJobDescription}

// Rule is the ordered selector fallback chain for one field.
type Rule struct {
	Field     Field    `yaml:"field"`
	Multiline bool     `yaml:"multiline"`
	Selectors []string `yaml:"selectors"`
}

// RuleTable holds one rule per field.
type RuleTable struct {
	Rules []Rule `yaml:"rules"`
}

//go:embed rules.yaml
var defaultRules []byte

// DefaultRules returns the built-in rule table.
func DefaultRules() (RuleTable, error) {
	return ParseRules(defaultRules)
}

// LoadRules reads a rule table from a YAML file.
func LoadRules(path string) (RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleTable{}, fmt.Errorf("extract: read rules %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) (RuleTable, error) {
	var table RuleTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return RuleTable{}, fmt.Errorf("extract: parse rules: %w", err)
	}
	if err := table.Validate(); err != nil {
		return RuleTable{}, err
	}
	return table, nil
}

// Validate checks that every known field has exactly one non-empty rule.
func (t RuleTable) Validate() error {
	seen := make(map[Field]bool, len(t.Rules))
	for _, r := range t.Rules {
		if !knownField(r.Field) {
			return fmt.Errorf("extract: unknown field %q", r.Field)
		}
		if seen[r.Field] {
			return fmt.Errorf("extract: duplicate rule for field %q", r.Field)
		}
		seen[r.Field] = true

		if len(r.Selectors) == 0 {
			return fmt.Errorf("extract: field %q has no selectors", r.Field)
		}
		for i, s := range r.Selectors {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("extract: field %q selector %d is empty", r.Field, i)
			}
		}
	}

	var missing []string
	for _, f := range Fields {
		if !seen[f] {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("extract: missing rules for fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func knownField(f Field) bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}
