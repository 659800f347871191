package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Error kinds reported in the "error" field of a failed response.
const (
	KindValidation      = "ValidationError"
	KindConflict        = "Conflict"
	KindNotFound        = "NotFound"
	KindInvalidFileType = "InvalidFileType"
	KindPayloadTooLarge = "PayloadTooLarge"
	KindStore           = "StoreError"
	KindRouteNotFound   = "RouteNotFound"
)

// APIError is an expected failure that maps onto a status code and a
// client-facing message.
type APIError struct {
	Status  int
	Kind    string
	Message string
	Details fiber.Map
}

func (e *APIError) Error() string {
	return e.Kind + ": " + e.Message
}

func errValidation(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

func errConflict(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Kind: KindConflict, Message: msg}
}

func errNotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

func errInvalidFileType() *APIError {
	return &APIError{Status: http.StatusBadRequest, Kind: KindInvalidFileType, Message: "Only image files can be uploaded"}
}

func errPayloadTooLarge() *APIError {
	return &APIError{Status: http.StatusBadRequest, Kind: KindPayloadTooLarge, Message: "File size must not exceed 2MB"}
}

// envelope is the shape of every JSON response.
type envelope struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message,omitempty"`
	Data       any       `json:"data,omitempty"`
	Pagination any       `json:"pagination,omitempty"`
	Error      string    `json:"error,omitempty"`
	Details    fiber.Map `json:"details,omitempty"`
	Path       string    `json:"path,omitempty"`
}

// errorHandler turns every error returned by a handler into an envelope.
// Unexpected errors are logged and, outside development, reported without
// their internal message.
func errorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.Status).JSON(envelope{
				Message: apiErr.Message,
				Error:   apiErr.Kind,
				Details: apiErr.Details,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			switch fiberErr.Code {
			case fiber.StatusNotFound:
				return routeNotFound(c)
			case fiber.StatusRequestEntityTooLarge:
				return c.Status(http.StatusBadRequest).JSON(envelope{
					Message: "Request body too large",
					Error:   KindPayloadTooLarge,
				})
			}
			if fiberErr.Code < fiber.StatusInternalServerError {
				return c.Status(fiberErr.Code).JSON(envelope{Message: fiberErr.Message, Error: KindValidation})
			}
		}

		log.Errorf("%s %s failed: %v", c.Method(), c.OriginalURL(), err)
		detail := "Please contact the administrator"
		if development {
			detail = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(envelope{
			Message: "Internal server error",
			Error:   detail,
		})
	}
}

func routeNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(envelope{
		Message: "Endpoint not found",
		Error:   KindRouteNotFound,
		Path:    c.OriginalURL(),
	})
}
