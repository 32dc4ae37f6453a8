package runtime

import (
	"fmt"
	"net/http"
)

// ErrorKind discriminates the ways a generated client call can fail,
// mirroring progenitor's generated Error<E> enum (InvalidRequest,
// CommunicationError, ErrorResponse, InvalidResponsePayload,
// UnexpectedResponse).
type ErrorKind int

const (
	// ErrInvalidRequest means the request could not even be built (bad
	// path/query encoding, body marshal failure).
	ErrInvalidRequest ErrorKind = iota
	// ErrTransport means the underlying http.Client.Do call failed.
	ErrTransport
	// ErrErrorResponse means the server replied with a recognized
	// non-success status whose body was decoded into E.
	ErrErrorResponse
	// ErrInvalidResponsePayload means a success status was returned but
	// its body failed to decode.
	ErrInvalidResponsePayload
	// ErrUnexpectedResponse means the status code matched none of the
	// operation's declared responses.
	ErrUnexpectedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidRequest:
		return "invalid request"
	case ErrTransport:
		return "communication error"
	case ErrErrorResponse:
		return "error response"
	case ErrInvalidResponsePayload:
		return "invalid response payload"
	case ErrUnexpectedResponse:
		return "unexpected response"
	default:
		return "unknown error"
	}
}

// Error is the generic error type returned by every generated client
// method. E is the operation's classified error-response type (a plain
// schema type, or the synthesized "{OperationId}Error" enum struct from
// classify.Classify).
type Error[E any] struct {
	Kind ErrorKind

	// InvalidRequest holds the message for ErrInvalidRequest.
	InvalidRequest string
	// Err holds the underlying error for ErrTransport and
	// ErrInvalidResponsePayload.
	Err error
	// ErrorResponse holds the decoded error body for ErrErrorResponse.
	ErrorResponse *ResponseValue[E]
	// UnexpectedResponse holds the raw response for ErrUnexpectedResponse.
	UnexpectedResponse *http.Response
}

func (e *Error[E]) Error() string {
	switch e.Kind {
	case ErrInvalidRequest:
		return fmt.Sprintf("invalid request: %s", e.InvalidRequest)
	case ErrTransport:
		return fmt.Sprintf("communication error: %v", e.Err)
	case ErrErrorResponse:
		status := 0
		if e.ErrorResponse != nil {
			status = e.ErrorResponse.Status()
		}
		return fmt.Sprintf("error response: status %d", status)
	case ErrInvalidResponsePayload:
		return fmt.Sprintf("invalid response payload: %v", e.Err)
	case ErrUnexpectedResponse:
		status := 0
		if e.UnexpectedResponse != nil {
			status = e.UnexpectedResponse.StatusCode
		}
		return fmt.Sprintf("unexpected response: status %d", status)
	default:
		return "unknown client error"
	}
}

func (e *Error[E]) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code behind this error, or 0 when the
// error never reached the transport (ErrInvalidRequest).
func (e *Error[E]) Status() int {
	switch e.Kind {
	case ErrErrorResponse:
		if e.ErrorResponse != nil {
			return e.ErrorResponse.Status()
		}
	case ErrUnexpectedResponse:
		if e.UnexpectedResponse != nil {
			return e.UnexpectedResponse.StatusCode
		}
	}
	return 0
}
