package llm

import "errors"

// ErrUnknownProvider indicates a provider name with no registered client.
var ErrUnknownProvider = errors.New("unknown llm provider")
