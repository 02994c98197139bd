package document

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// ValidateJSON checks a raw document body against the embedded JSON schema.
func ValidateJSON(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load document schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &ValidationError{Problems: []string{"body is not valid JSON"}}
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}

// Validate runs the schema check and the semantic rules the schema cannot express.
func (d Document) Validate() error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := ValidateJSON(raw); err != nil {
		return err
	}

	var problems []string
	if !d.Template.Valid() {
		problems = append(problems, fmt.Sprintf("template %q is not supported", d.Template))
	}
	problems = append(problems, duplicateIDs("experiences", experienceIDs(d.Experiences))...)
	problems = append(problems, duplicateIDs("education", educationIDs(d.Education))...)
	problems = append(problems, duplicateIDs("languages", languageIDs(d.Languages))...)
	problems = append(problems, duplicateIDs("achievements", achievementIDs(d.Achievements))...)
	for i, lang := range d.Languages {
		if lang.Proficiency < 1 || lang.Proficiency > 5 {
			problems = append(problems, fmt.Sprintf("languages[%d].proficiency must be between 1 and 5", i))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func duplicateIDs(collection string, ids []string) []string {
	seen := make(map[string]int, len(ids))
	var out []string
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			out = append(out, fmt.Sprintf("%s[%d].id is required", collection, i))
			continue
		}
		if first, ok := seen[id]; ok {
			out = append(out, fmt.Sprintf("%s[%d].id duplicates %s[%d].id", collection, i, collection, first))
			continue
		}
		seen[id] = i
	}
	return out
}

func experienceIDs(items []Experience) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func educationIDs(items []Education) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func languageIDs(items []LanguageItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func achievementIDs(items []Achievement) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
