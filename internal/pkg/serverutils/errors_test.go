package serverutils

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTimeoutError struct{ timeout bool }

func (e *fakeTimeoutError) Error() string   { return "dial tcp: i/o problem" }
func (e *fakeTimeoutError) Timeout() bool   { return e.timeout }
func (e *fakeTimeoutError) Temporary() bool { return false }

func TestClassifyUpstreamError(t *testing.T) {
	t.Run("deadline exceeded maps to timeout", func(t *testing.T) {
		appErr := ClassifyUpstreamError(context.DeadlineExceeded)

		assert.Equal(t, 504, appErr.Code)
		assert.Equal(t, "request timed out", appErr.Message)
	})

	t.Run("net timeout maps to timeout", func(t *testing.T) {
		appErr := ClassifyUpstreamError(&fakeTimeoutError{timeout: true})

		assert.Equal(t, 504, appErr.Code)
		assert.Equal(t, "request timed out", appErr.Message)
	})

	t.Run("connection refused maps to no response", func(t *testing.T) {
		opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		appErr := ClassifyUpstreamError(opErr)

		assert.Equal(t, 502, appErr.Code)
		assert.Equal(t, "no response received", appErr.Message)
	})

	t.Run("existing app error passes through", func(t *testing.T) {
		original := NewNotFoundError("session not found")
		appErr := ClassifyUpstreamError(original)

		assert.Same(t, original, appErr)
	})

	t.Run("unknown error keeps its message", func(t *testing.T) {
		appErr := ClassifyUpstreamError(errors.New("model overloaded"))

		assert.Equal(t, 502, appErr.Code)
		assert.Equal(t, "model overloaded", appErr.Message)
	})
}

func TestValidateRequest(t *testing.T) {
	type payload struct {
		Question  string   `validate:"required"`
		Threshold *float64 `validate:"omitempty,gte=0,lte=1"`
	}

	t.Run("valid passes", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(payload{Question: "hi"}))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateRequest(payload{})

		var appErr *AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Message, "question is required")
	})

	t.Run("threshold out of range", func(t *testing.T) {
		bad := 1.5
		err := ValidateRequest(payload{Question: "hi", Threshold: &bad})

		var appErr *AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "threshold is out of range")
	})
}
