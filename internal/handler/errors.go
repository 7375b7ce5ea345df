package handler

import (
	"errors"

	"go-pos-admin/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrorBody is the envelope of every failed response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    apperror.Kind     `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var statusByKind = map[apperror.Kind]int{
	apperror.KindUnauthenticated: fiber.StatusUnauthorized,
	apperror.KindForbidden:       fiber.StatusForbidden,
	apperror.KindNotFound:        fiber.StatusNotFound,
	apperror.KindConflict:        fiber.StatusConflict,
	apperror.KindValidation:      fiber.StatusUnprocessableEntity,
	apperror.KindInternal:        fiber.StatusInternalServerError,
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperror.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the Fiber error handler. Handlers return service errors as
// they are and this renders them. Internal causes are logged, never sent.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return c.Status(ferr.Code).JSON(ErrorBody{Error: ErrorDetail{
				Code:    fiberKind(ferr.Code),
				Message: ferr.Message,
			}})
		}

		e := apperror.From(err)
		if e.Kind == apperror.KindInternal {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("internal error")
		}
		return c.Status(StatusOf(e.Kind)).JSON(ErrorBody{Error: ErrorDetail{
			Code:    e.Kind,
			Message: e.Message,
			Fields:  e.Fields,
		}})
	}
}

func fiberKind(status int) apperror.Kind {
	for kind, s := range statusByKind {
		if s == status {
			return kind
		}
	}
	if status == fiber.StatusBadRequest {
		return apperror.KindValidation
	}
	return apperror.KindInternal
}

func invalidBody() error {
	return apperror.Validation(map[string]string{"body": "invalid JSON"})
}
