package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/promptfunc/promptfunc/internal/jsonschema"
	"github.com/promptfunc/promptfunc/pkg/token"
)

const (
	thinkingReasoned = "Think carefully through the answer. " +
		"If the function documentation suggests steps, take these steps."
	thinkingDirect = "Write the result directly without providing any explanation."

	systemTemplate = `For the following function, evaluate the user-provided input.

%s

%s
Provide the final output at the end as follows, where FUNCTION_OUTPUT is in JSON format:

<ANSWER>
{"result": FUNCTION_OUTPUT}
</ANSWER>`

	leftoverHeader = "Use these values (provided in YAML):"
	schemaHeader   = "Use these output schema fields:"
)

// Builder renders the system and user prompts of one prompt function. It is
// immutable after construction and safe for concurrent use.
type Builder struct {
	function   string
	doc        string
	params     []Param
	returnType string
	schema     *jsonschema.Schema
	tpl        *template.Template
	vars       map[string]bool
}

// NewBuilder parses the docstring template and precomputes the variables it
// references. A template syntax error surfaces here, at definition time.
func NewBuilder(function, doc string, params []Param, returnType string, schema *jsonschema.Schema, counter token.Counter) (*Builder, error) {
	doc = dedent(doc)

	// missingkey=error makes a docstring variable with no bound argument fail
	// the render, taking the raw-docstring fallback instead of leaking
	// "<no value>" into the prompt.
	tpl, err := template.New(function).Funcs(funcMap(counter)).Option("missingkey=error").Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("promptfunc: docstring of %q failed to parse: %w", function, err)
	}

	vars := make(map[string]bool)
	for _, name := range extractVars(tpl.Tree) {
		vars[name] = true
	}

	return &Builder{
		function:   function,
		doc:        doc,
		params:     params,
		returnType: returnType,
		schema:     schema,
		tpl:        tpl,
		vars:       vars,
	}, nil
}

// Bind resolves the call arguments against the declared parameters.
func (b *Builder) Bind(args map[string]any) (map[string]any, error) {
	return Bind(b.function, b.params, args)
}

// UserPrompt renders the docstring with the bound arguments and appends the
// leftover-argument and output-schema YAML blocks. If rendering fails at call
// time (e.g. a helper errored on the given values), the raw docstring is used
// and every argument is treated as leftover, so the model still sees all the
// inputs.
func (b *Builder) UserPrompt(bound map[string]any) (string, error) {
	prompt := b.doc
	leftover := map[string]any{}

	var buf bytes.Buffer
	if err := b.tpl.Execute(&buf, bound); err == nil {
		prompt = buf.String()
		for name, value := range bound {
			if !b.vars[name] {
				leftover[name] = value
			}
		}
	} else {
		for name, value := range bound {
			leftover[name] = value
		}
	}

	if len(leftover) > 0 {
		block, err := argsAsYAML(leftover)
		if err != nil {
			return "", fmt.Errorf("promptfunc: failed to serialize arguments of %q: %w", b.function, err)
		}
		prompt += "\n" + leftoverHeader + "\n" + block
	}

	if block, ok := schemaDescriptions(b.schema); ok {
		prompt += "\n" + schemaHeader + "\n" + block
	}

	return prompt, nil
}

// SystemPrompt renders the static instruction prompt: the function declaration
// (docstring as a comment, name, parameters, return type), the thinking
// clause, and the answer-envelope instructions. Complex output types also get
// their JSON schema appended.
func (b *Builder) SystemPrompt(reasoning bool) string {
	thinking := thinkingDirect
	if reasoning {
		thinking = thinkingReasoned
	}

	out := fmt.Sprintf(systemTemplate, b.declaration(), thinking)

	if b.schema != nil && (b.schema.Type == "object" || b.schema.Type == "array") {
		if schemaJSON, err := b.schema.JSONString(true); err == nil {
			out += "\n\nFUNCTION_OUTPUT must conform to this JSON Schema:\n" + schemaJSON
		}
	}

	return out
}

// declaration renders a Go-style stub of the function: the docstring as a
// comment block above the signature.
func (b *Builder) declaration() string {
	var sb strings.Builder

	for _, line := range strings.Split(b.doc, "\n") {
		sb.WriteString("// ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	names := make([]string, len(b.params))
	for i, p := range b.params {
		names[i] = p.Name
	}

	sb.WriteString(fmt.Sprintf("func %s(%s) %s", b.function, strings.Join(names, ", "), b.returnType))
	return sb.String()
}

// dedent strips the common leading whitespace of every line after the first,
// the way docstring conventions expect.
func dedent(doc string) string {
	lines := strings.Split(doc, "\n")
	if len(lines) == 1 {
		return strings.TrimSpace(doc)
	}

	margin := ""
	found := false
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		if !found || len(indent) < len(margin) {
			margin = indent
			found = true
		}
	}

	out := make([]string, len(lines))
	out[0] = strings.TrimSpace(lines[0])
	for i, line := range lines[1:] {
		out[i+1] = strings.TrimSuffix(strings.TrimPrefix(line, margin), "\r")
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
