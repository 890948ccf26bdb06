// Package prompt builds the system and user prompts for a prompt function
// call. The function's docstring is a text/template rendered with the bound
// call arguments; arguments the template does not reference are appended as a
// YAML block, and the declared output type contributes a schema description
// block. The system prompt embeds a rendering of the function declaration and
// the answer-envelope instructions.
package prompt
