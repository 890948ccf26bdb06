// Package jsonschema generates JSON Schema documents from Go types by
// reflection. Prompt functions use the generated schema twice: to describe the
// requested output shape to the model, and to drive the per-field description
// block appended to the prompt (descriptions, examples, enums from the
// `jsonschema` struct tag).
package jsonschema
