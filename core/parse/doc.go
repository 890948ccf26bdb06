// Package parse extracts structured answers from raw LLM text. Replies are
// expected to end with a delimited envelope:
//
//	<ANSWER>
//	{"result": FUNCTION_OUTPUT}
//	</ANSWER>
//
// [ExtractAnswer] locates the envelope and unwraps the result payload;
// [Coerce] converts the payload into the caller's declared Go type. Because
// models frequently emit slightly malformed JSON, coercion applies a layered
// recovery strategy: direct unmarshalling, automatic JSON repair, and
// schema-envelope unwrapping, before falling back to a clear error.
package parse
