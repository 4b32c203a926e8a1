package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"training-builder-be/pkg/outline"
)

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Message: message,
		Data:    data,
	}
}

// HttpError carries a status code from the service layer to the error
// handler middleware.
type HttpError struct {
	Code    int
	Message string
}

func (e *HttpError) Error() string {
	return e.Message
}

func NewHttpError(code int, message string) *HttpError {
	return &HttpError{Code: code, Message: message}
}

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	return nil
}

// ErrorHandlerMiddleware converts errors bubbled up from controllers into a
// JSON envelope. Validation errors map to 400, missing records to 404,
// anything unrecognized to 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var httpErr *HttpError
		if errors.As(err, &httpErr) {
			return ctx.Status(httpErr.Code).JSON(Response{Message: httpErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(Response{Message: fiberErr.Message})
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return ctx.Status(fiber.StatusBadRequest).JSON(Response{
				Message: "Validation failed: " + strings.Join(details, ", "),
			})
		}

		switch {
		case errors.Is(err, outline.ErrSectionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(Response{Message: err.Error()})
		case errors.Is(err, outline.ErrRequiredSection),
			errors.Is(err, outline.ErrInvalidPermutation),
			errors.Is(err, outline.ErrUnknownSectionType),
			errors.Is(err, outline.ErrFieldNotAvailable),
			errors.Is(err, outline.ErrInvalidPosition):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(Response{Message: err.Error()})
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(Response{Message: "Record not found"})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(Response{Message: err.Error()})
	}
}
