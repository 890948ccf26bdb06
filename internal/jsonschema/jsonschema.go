package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema needed to describe prompt function
// output types: primitives, arrays, maps, and (possibly recursive) structs.
type Schema struct {
	// Type specifies the data type (e.g. "object", "array", "string", "integer").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the element schema for array types.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls map value schemas.
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Enum lists the allowed values for the field.
	Enum []any `json:"enum,omitempty"`
	// Examples lists illustrative values carried into prompt schema descriptions.
	Examples []any `json:"examples,omitempty"`
	// Ref references a definition in Defs; used to break recursion.
	Ref string `json:"$ref,omitempty"`
	// Defs holds reusable schema definitions for recursive types.
	Defs map[string]*Schema `json:"$defs,omitempty"`

	// Title records the Go type name for named structs so prompt builders can
	// address nested models by name. Not part of validation.
	Title string `json:"title,omitempty"`
}

// Generate builds a JSON schema for T by reflection. Struct fields honor the
// `json` tag for naming and omitempty, and the `jsonschema` tag for
// description, enum, example, and required markers. Recursive struct types are
// emitted once under $defs and referenced with $ref.
func Generate[T any]() *Schema {
	gen := &generator{
		inProgress: map[reflect.Type]bool{},
		needDef:    map[reflect.Type]bool{},
		defs:       map[string]*Schema{},
	}

	schema := gen.typeSchema(reflect.TypeFor[T]())
	if len(gen.defs) > 0 {
		schema.Defs = gen.defs
	}
	return schema
}

type generator struct {
	inProgress map[reflect.Type]bool
	needDef    map[reflect.Type]bool
	defs       map[string]*Schema
}

func (g *generator) typeSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Pointer:
		return g.typeSchema(t.Elem())

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: g.typeSchema(t.Elem())}

	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: g.typeSchema(t.Elem())}

	case reflect.Struct:
		return g.structSchema(t)

	default:
		return &Schema{Type: "object"}
	}
}

// structSchema returns the schema for a struct type. A type encountered while
// its own fields are still being walked is recursive: it resolves to a $ref
// and its completed schema is stored under $defs.
func (g *generator) structSchema(t reflect.Type) *Schema {
	name := defName(t)

	if g.inProgress[t] {
		g.needDef[t] = true
		return &Schema{Ref: "#/$defs/" + name}
	}
	if _, ok := g.defs[name]; ok {
		return &Schema{Ref: "#/$defs/" + name}
	}

	g.inProgress[t] = true
	defer delete(g.inProgress, t)

	schema := &Schema{
		Type:       "object",
		Title:      t.Name(),
		Properties: map[string]*Schema{},
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fieldSchema := g.typeSchema(field.Type)
		requiredByTag, err := applyFieldTag(field.Type, field.Tag, fieldSchema)
		if err != nil {
			// A malformed tag should not fail generation; the field keeps its
			// reflected schema.
			requiredByTag = false
		}

		schema.Properties[fieldName] = fieldSchema

		if (field.Type.Kind() != reflect.Pointer && !omitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, fieldName)
		}
	}

	if g.needDef[t] {
		// Store a copy without Defs so the root can carry $defs without a
		// marshalling cycle when the recursive type is the root itself.
		g.defs[name] = &Schema{
			Type:       schema.Type,
			Title:      schema.Title,
			Properties: schema.Properties,
			Required:   schema.Required,
		}
	}

	return schema
}

// jsonName resolves the property name for a struct field from its json tag.
func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	name = field.Name

	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	if tag == "" {
		return name, false, false
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// applyFieldTag parses the jsonschema struct tag and applies it to schema.
// Supported entries, comma separated:
//
//	description=...  field description
//	example=...      illustrative value (repeatable)
//	enum=...         allowed value (repeatable, converted to the field type)
//	required         force the field into the required list
//
// Returns whether the tag marked the field required.
func applyFieldTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) (bool, error) {
	raw := tag.Get("jsonschema")
	if raw == "" {
		return false, nil
	}

	required := false
	for _, item := range strings.Split(raw, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case key == "required" && !hasValue:
			required = true
		case key == "description" && hasValue:
			schema.Description = value
		case key == "example" && hasValue:
			schema.Examples = append(schema.Examples, value)
		case key == "enum" && hasValue:
			converted, err := convertTagValue(fieldType, value)
			if err != nil {
				return required, err
			}
			schema.Enum = append(schema.Enum, converted)
		}
	}
	return required, nil
}

// convertTagValue converts a tag literal to the field's native type so enums
// serialize with the right JSON type.
func convertTagValue(fieldType reflect.Type, value string) (any, error) {
	for fieldType.Kind() == reflect.Pointer {
		fieldType = fieldType.Elem()
	}

	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as integer: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as number: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as bool: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type %v", fieldType)
	}
}

func defName(t reflect.Type) string {
	if t.Name() != "" {
		return strings.ToLower(t.Name())
	}
	return "anonymousStruct"
}

// JSONString returns the JSON representation of the schema, indented when
// requested.
func (s *Schema) JSONString(indent bool) (string, error) {
	var (
		encoded []byte
		err     error
	)
	if indent {
		encoded, err = json.MarshalIndent(s, "", "  ")
	} else {
		encoded, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(encoded), nil
}

func (s *Schema) String() string {
	out, err := s.JSONString(false)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
