package fn

import "errors"

var (
	// ErrNoProvider is returned by [New] when no AI provider was configured.
	ErrNoProvider = errors.New("fn: no AI provider configured")

	// ErrAnswerParse is returned by Call and Invoke when every attempt produced
	// a reply that could not be turned into the declared output type. The error
	// message carries a transcript of the last exchange.
	ErrAnswerParse = errors.New("fn: reply could not be parsed into the declared output type")
)
