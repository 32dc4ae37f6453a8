// Package runtime is the small stable support library consumed by
// generated client code (spec.md §6): response wrapping, the generic
// transport error type, query-parameter formatting, and pagination
// streaming. Generated code imports only this package and the standard
// library plus github.com/go-json-experiment/json and
// github.com/google/uuid.
package runtime

import (
	"io"
	"net/http"

	"github.com/go-json-experiment/json"
)

// ResponseValue wraps a decoded success value together with the raw HTTP
// response it was decoded from, mirroring progenitor's
// ResponseValue<T>::into_inner() / status() pattern.
type ResponseValue[T any] struct {
	Inner        T
	HTTPResponse *http.Response
}

// Status returns the HTTP status code of the underlying response.
func (r *ResponseValue[T]) Status() int {
	if r.HTTPResponse == nil {
		return 0
	}
	return r.HTTPResponse.StatusCode
}

// ResponseValueFromJSON decodes resp.Body as JSON into T and closes the
// body, returning both the decoded value and the original response.
func ResponseValueFromJSON[T any](resp *http.Response) (*ResponseValue[T], error) {
	defer resp.Body.Close()
	var v T
	if err := json.UnmarshalRead(resp.Body, &v); err != nil {
		return nil, &Error[json.RawValue]{Kind: ErrInvalidResponsePayload, Err: err}
	}
	return &ResponseValue[T]{Inner: v, HTTPResponse: resp}, nil
}

// ResponseValueFromRaw reads resp.Body into memory without attempting any
// decoding, for operations whose success content type is not JSON.
func ResponseValueFromRaw(resp *http.Response) (*ResponseValue[[]byte], error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error[json.RawValue]{Kind: ErrInvalidResponsePayload, Err: err}
	}
	return &ResponseValue[[]byte]{Inner: data, HTTPResponse: resp}, nil
}

// Upgraded wraps an HTTP response whose connection has been upgraded
// (e.g. a websocket), handing the raw bidirectional stream to the caller.
type Upgraded struct {
	HTTPResponse *http.Response
	Conn         io.ReadWriteCloser
}

// ResponseValueFromUpgrade wraps resp as an Upgraded connection. The
// caller is responsible for closing Conn when done.
func ResponseValueFromUpgrade(resp *http.Response) (*Upgraded, error) {
	rwc, ok := resp.Body.(io.ReadWriteCloser)
	if !ok {
		return &Upgraded{HTTPResponse: resp}, nil
	}
	return &Upgraded{HTTPResponse: resp, Conn: rwc}, nil
}
