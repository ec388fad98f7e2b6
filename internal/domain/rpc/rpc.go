// Package rpc declares the method names, result codes and error type shared
// by the dispatch layer and the HTTP envelope.
package rpc

// Supported method names.
const (
	MethodOnlineScore      = "online_score"
	MethodClientsInterests = "clients_interests"
)

// Result codes carried in the response envelope.
const (
	StatusOK             = 200
	StatusBadRequest     = 400
	StatusForbidden      = 403
	StatusNotFound       = 404
	StatusInvalidRequest = 422
	StatusInternalError  = 500
)

var statusText = map[int]string{
	StatusBadRequest:     "Bad Request",
	StatusForbidden:      "Forbidden",
	StatusNotFound:       "Not Found",
	StatusInvalidRequest: "Invalid Request",
	StatusInternalError:  "Internal Server Error",
}

// StatusText returns the default error text for a code, or "Unknown Error"
// for codes outside the envelope's vocabulary.
func StatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "Unknown Error"
}

// IsError reports whether a code maps to the error envelope shape.
func IsError(code int) bool {
	_, ok := statusText[code]
	return ok
}

// Error is a dispatch failure carrying the envelope code. An empty Message
// falls back to the code's default text on the wire.
type Error struct {
	Code    int
	Message string
}

// NewError creates an Error with the given code and message.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return StatusText(e.Code)
}

// ScoreResult is the online_score method's result shape.
type ScoreResult struct {
	Score float64 `json:"score"`
}

// InterestsResult maps each requested client id to its interest list.
type InterestsResult map[string][]string
