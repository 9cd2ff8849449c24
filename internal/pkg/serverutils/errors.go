package serverutils

import (
	"context"
	"errors"
	"net"
	"os"

	"github.com/gofiber/fiber/v2"
)

// AppError is the error type every service returns. The controller layer maps
// it onto the wire as {"detail": "..."} with the carried status code.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

func NewUpstreamError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: message}
}

// NewTimeoutError marks a retryable upstream timeout, distinct from a
// permanent failure.
func NewTimeoutError() *AppError {
	return &AppError{Code: fiber.StatusGatewayTimeout, Message: "request timed out"}
}

// ClassifyUpstreamError turns an embedding/LLM/storage round-trip error into
// the taxonomy the frontend expects: timeouts say "request timed out",
// connection failures say "no response received", everything else carries the
// upstream message.
func ClassifyUpstreamError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return NewTimeoutError()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return NewTimeoutError()
		}
		return NewUpstreamError("no response received")
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NewUpstreamError("no response received")
	}

	return NewUpstreamError(err.Error())
}

// ErrorHandlerMiddleware converts AppError (and anything else) into the
// FastAPI-style {"detail": "..."} body the frontend was built against.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(fiber.Map{"detail": appErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}
}
