package prompt

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/promptfunc/promptfunc/internal/jsonschema"
)

// argsAsYAML serializes the argument map as YAML with deterministic key order.
func argsAsYAML(args map[string]any) (string, error) {
	var sb strings.Builder
	for _, name := range sortedKeys(args) {
		out, err := yaml.Marshal(map[string]any{name: args[name]})
		if err != nil {
			return "", fmt.Errorf("yaml: argument %q: %w", name, err)
		}
		sb.Write(out)
	}
	return sb.String(), nil
}

// schemaDescriptions renders the per-model field description block for the
// output type: every named struct in the schema contributes a YAML entry
// listing its fields, with descriptions and examples where declared. Returns
// false when the output type involves no named structs.
func schemaDescriptions(schema *jsonschema.Schema) (string, bool) {
	if schema == nil {
		return "", false
	}

	models := map[string]*jsonschema.Schema{}
	collectModels(schema, models)
	for _, def := range schema.Defs {
		collectModels(def, models)
	}

	if len(models) == 0 {
		return "", false
	}

	titles := make([]string, 0, len(models))
	for title := range models {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	var sb strings.Builder
	for _, title := range titles {
		fields := fieldEntries(models[title])
		out, err := yaml.Marshal(map[string]any{title: fields})
		if err != nil {
			continue
		}
		sb.Write(out)
	}
	return sb.String(), true
}

// collectModels walks a schema tree gathering named object schemas by title.
func collectModels(s *jsonschema.Schema, models map[string]*jsonschema.Schema) {
	if s == nil {
		return
	}
	if s.Type == "object" && s.Title != "" && len(s.Properties) > 0 {
		models[s.Title] = s
	}
	collectModels(s.Items, models)
	if nested, ok := s.AdditionalProperties.(*jsonschema.Schema); ok {
		collectModels(nested, models)
	}
	for _, prop := range s.Properties {
		collectModels(prop, models)
	}
}

// fieldEntries returns the YAML entries for one model: a bare field name, or
// a {name: description} pair when the field carries a description or example.
func fieldEntries(model *jsonschema.Schema) []any {
	names := make([]string, 0, len(model.Properties))
	for name := range model.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]any, 0, len(names))
	for _, name := range names {
		prop := model.Properties[name]
		description := prop.Description
		for _, example := range prop.Examples {
			description = strings.TrimSpace(fmt.Sprintf("%s Example: %v", description, example))
		}
		if description == "" {
			entries = append(entries, name)
			continue
		}
		entries = append(entries, map[string]string{name: description})
	}
	return entries
}
