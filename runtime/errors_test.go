package runtime

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleErrorBody struct {
	Message string `json:"message"`
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  *Error[sampleErrorBody]
		want string
	}{
		{"invalid request", &Error[sampleErrorBody]{Kind: ErrInvalidRequest, InvalidRequest: "bad path"}, "invalid request: bad path"},
		{"transport", &Error[sampleErrorBody]{Kind: ErrTransport, Err: errors.New("dial refused")}, "communication error: dial refused"},
		{"unexpected", &Error[sampleErrorBody]{Kind: ErrUnexpectedResponse, UnexpectedResponse: &http.Response{StatusCode: 599}}, "unexpected response: status 599"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &Error[sampleErrorBody]{Kind: ErrTransport, Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestErrorStatus(t *testing.T) {
	err := &Error[sampleErrorBody]{
		Kind: ErrErrorResponse,
		ErrorResponse: &ResponseValue[sampleErrorBody]{
			HTTPResponse: &http.Response{StatusCode: 404},
		},
	}
	assert.Equal(t, 404, err.Status())
}
