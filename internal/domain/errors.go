package domain

import (
	"errors"
	"fmt"
)

// Load error kinds. Match with errors.Is.
var (
	ErrInvalidURL = errors.New("invalid URL format")
	ErrNetwork    = errors.New("network error")
	ErrParse      = errors.New("parsing error")

	// ErrSuperseded is returned by a load whose result was discarded because
	// a newer load replaced it. It never reaches the store state.
	ErrSuperseded = errors.New("load superseded by a newer request")
)

// Reason names exposed to the presentation layer.
const (
	ReasonInvalidURL = "InvalidURL"
	ReasonNetwork    = "NetworkError"
	ReasonParse      = "ParseError"
)

// LoadError ties a load failure to its kind while keeping the cause.
type LoadError struct {
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewInvalidURLError wraps cause as an InvalidURL failure.
func NewInvalidURLError(cause error) *LoadError {
	return &LoadError{Kind: ErrInvalidURL, Err: cause}
}

// NewNetworkError wraps cause as a NetworkError failure.
func NewNetworkError(cause error) *LoadError {
	return &LoadError{Kind: ErrNetwork, Err: cause}
}

// NewParseError wraps cause as a ParseError failure.
func NewParseError(cause error) *LoadError {
	return &LoadError{Kind: ErrParse, Err: cause}
}

// errNoData is the cause used for empty response bodies.
var errNoData = errors.New("no data returned")

// NewNoDataError reports an empty response body. It counts as a network failure.
func NewNoDataError() *LoadError {
	return NewNetworkError(errNoData)
}

// Reason maps an error to its reason name. Unknown errors count as network
// failures since they come from the transport side of a load.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidURL):
		return ReasonInvalidURL
	case errors.Is(err, ErrParse):
		return ReasonParse
	default:
		return ReasonNetwork
	}
}

// Message renders the status text shown to the user.
func Message(err error) string {
	var le *LoadError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidURL):
		return "Invalid URL format"
	case errors.Is(err, errNoData):
		return "No data returned"
	case errors.As(err, &le) && le.Err != nil:
		switch {
		case errors.Is(le.Kind, ErrParse):
			return "Parsing error: " + le.Err.Error()
		default:
			return "Network error: " + le.Err.Error()
		}
	case errors.Is(err, ErrParse):
		return "Parsing error"
	default:
		return "Network error: " + err.Error()
	}
}
