package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/honeycarbs/jobsync/internal/domain"
)

// Extractor resolves fields from a Document using a rule table.
type Extractor struct {
	rules map[Field]Rule
}

// New builds an Extractor from a validated rule table.
func New(table RuleTable) (*Extractor, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	rules := make(map[Field]Rule, len(table.Rules))
	for _, r := range table.Rules {
		rules[r.Field] = r
	}
	return &Extractor{rules: rules}, nil
}

// NewDefault builds an Extractor from the embedded rule table.
func NewDefault() (*Extractor, error) {
	table, err := DefaultRules()
	if err != nil {
		return nil, err
	}
	return New(table)
}

// Resolve walks the field's selectors in order and returns the first
// non-empty cleaned text, or domain.NotFound.
func (e *Extractor) Resolve(doc Document, field Field) string {
	if doc == nil {
		return domain.NotFound
	}

	rule, ok := e.rules[field]
	if !ok {
		return domain.NotFound
	}

	for _, selector := range rule.Selectors {
		raw, ok := doc.Lookup(selector)
		if !ok {
			continue
		}
		if text := cleanText(raw, rule.Multiline); text != "" {
			return text
		}
	}
	return domain.NotFound
}

// Extract resolves every field of a job posting.
func (e *Extractor) Extract(doc Document, url string) domain.JobPosting {
	return domain.JobPosting{
		URL:            url,
		JobTitle:       e.Resolve(doc, FieldJobTitle),
		CompanyName:    e.Resolve(doc, FieldCompanyName),
		Location:       e.Resolve(doc, FieldLocation),
		JobDescription: e.Resolve(doc, FieldJobDescription),
	}
}

func cleanText(raw string, multiline bool) string {
	s := norm.NFC.String(raw)
	if !multiline {
		return strings.Join(strings.Fields(s), " ")
	}

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			// keep at most one blank line between paragraphs
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
