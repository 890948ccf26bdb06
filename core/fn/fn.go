package fn

import (
	"fmt"
	"reflect"

	"github.com/promptfunc/promptfunc/core/prompt"
	"github.com/promptfunc/promptfunc/internal/jsonschema"
)

// Fn is a prompt function returning values of type T. The docstring given to
// [New] is the function body: a prompt template whose rendered form, together
// with a generated declaration and output schema, instructs the model to emit
// a delimited JSON answer coercible into T.
//
// An Fn is immutable after construction and safe for concurrent use.
type Fn[T any] struct {
	name        string
	builder     *prompt.Builder
	send        SendFunc
	model       string
	retries     int
	reasoning   bool
	opts        Options
	concurrency int
}

// New builds a prompt function from its docstring. The docstring is a
// text/template body; parameters referenced in it are interpolated at call
// time and parameters it never mentions are forwarded to the model as a YAML
// block instead. The declared output type T drives both the schema shown to
// the model and the coercion applied to its reply.
//
// New fails fast: a docstring that does not parse as a template or an output
// type whose schema cannot be generated is reported here, not at call time.
func New[T any](doc string, options ...Option) (*Fn[T], error) {
	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if opts.Retries < 0 {
		return nil, fmt.Errorf("fn %q: negative retries (%d)", opts.Name, opts.Retries)
	}
	// errgroup.SetLimit(0) would make Gather block forever.
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	schema := jsonschema.Generate[T]()
	builder, err := prompt.NewBuilder(opts.Name, doc, opts.Params, typeName[T](), schema, opts.Counter)
	if err != nil {
		return nil, fmt.Errorf("fn %q: %w", opts.Name, err)
	}

	return &Fn[T]{
		name:        opts.Name,
		builder:     builder,
		send:        buildSendChain(opts.Provider, opts.Middlewares),
		model:       opts.Model,
		retries:     opts.Retries,
		reasoning:   opts.Reasoning,
		opts:        opts,
		concurrency: opts.Concurrency,
	}, nil
}

// Name returns the declared function name.
func (f *Fn[T]) Name() string { return f.name }

// typeName renders T the way it would appear in a function signature, without
// package qualifiers. The model reads this as the return type of the declared
// function.
func typeName[T any]() string {
	return renderType(reflect.TypeFor[T]())
}

func renderType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + renderType(t.Elem())
	case reflect.Slice:
		return "[]" + renderType(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), renderType(t.Elem()))
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", renderType(t.Key()), renderType(t.Elem()))
	default:
		if name := t.Name(); name != "" {
			return name
		}
		return t.String()
	}
}
