package ytservice

import "errors"

// Error kinds reported by Service. Use errors.Is to classify.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoCaptions       = errors.New("no caption tracks found for this video")
	ErrChannelNotFound  = errors.New("channel not found")
	ErrRetrievalFailure = errors.New("retrieval failure")
)

// Caller-visible messages for retrieval failures.
const (
	msgTranscript    = "Failed to fetch transcript"
	msgSearchVideos  = "Failed to search videos"
	msgSearchChannel = "Failed to search channels"
	msgChannelVideos = "Failed to fetch channel videos"
)

// RetrievalError is a failure of the external YouTube source. Its message is
// fixed per operation; the underlying cause is only reachable via Unwrap.
type RetrievalError struct {
	Op    string
	msg   string
	cause error
}

func (e *RetrievalError) Error() string { return e.msg }

// Unwrap exposes both ErrRetrievalFailure and the original cause.
func (e *RetrievalError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrRetrievalFailure}
	}
	return []error{ErrRetrievalFailure, e.cause}
}

func retrievalError(op, msg string, cause error) *RetrievalError {
	return &RetrievalError{Op: op, msg: msg, cause: cause}
}
