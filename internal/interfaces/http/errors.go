package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/greenstore-api/internal/application/dto"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/pkg/logger"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

// Códigos de error estables del cuerpo {"error":{"code",...}}.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"
)

var errInvalidBody = domain.NewBusinessError(domain.KindInvalid, "cuerpo inválido")

// validationError falla de validación de un DTO con el detalle por campo.
type validationError struct {
	fields []dto.FieldError
}

func (e *validationError) Error() string { return "datos inválidos" }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parsea el body JSON en dst y lo valida con las etiquetas validate.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return validateStruct(dst)
}

// bindQuery parsea la query string en dst y la valida.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return &validationError{fields: []dto.FieldError{{Field: "query", Message: "valor inválido"}}}
	}
	return validateStruct(dst)
}

// uuidParam lee un parámetro de ruta que debe ser UUID.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", &validationError{fields: []dto.FieldError{{Field: name, Message: "debe ser un UUID válido"}}}
	}
	return raw, nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errInvalidBody
	}
	fields := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, dto.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return &validationError{fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "max":
		return "excede el máximo de " + fe.Param()
	case "min":
		return "debe ser al menos " + fe.Param()
	case "uuid":
		return "debe ser un UUID válido"
	}
	return "valor inválido"
}

// ErrorHandler traduce cualquier error devuelto por un handler al cuerpo de error estándar.
// Los rechazos de negocio exponen su mensaje; el resto se registra y responde INTERNAL_ERROR.
func ErrorHandler(log *logger.Logger, rec *metrics.Recorder) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, message := fiber.StatusInternalServerError, CodeInternalError, "error interno"
		var details any

		var verr *validationError
		var ferr *fiber.Error
		if errors.As(err, &verr) {
			status, code, message, details = fiber.StatusBadRequest, CodeValidationError, verr.Error(), verr.fields
		} else if be, ok := domain.AsBusiness(err); ok {
			status, code = kindStatus(be.Kind)
			message = be.Message
		} else if errors.As(err, &ferr) {
			status, code, message = fiberStatus(ferr)
		}

		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", GetRequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		} else {
			rec.Rejection(code)
		}

		return c.Status(status).JSON(dto.ErrorResponse{
			Error:     dto.ErrorBody{Code: code, Message: message, Details: details},
			RequestID: GetRequestID(c),
		})
	}
}

func kindStatus(k domain.Kind) (int, string) {
	switch k {
	case domain.KindInvalid:
		return fiber.StatusBadRequest, CodeInvalidRequest
	case domain.KindValidation:
		return fiber.StatusBadRequest, CodeValidationError
	case domain.KindNotFound:
		return fiber.StatusNotFound, CodeNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized, CodeUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden, CodeForbidden
	case domain.KindConflict:
		return fiber.StatusConflict, CodeConflict
	}
	return fiber.StatusInternalServerError, CodeInternalError
}

func fiberStatus(e *fiber.Error) (int, string, string) {
	switch {
	case e.Code == fiber.StatusNotFound:
		return e.Code, CodeNotFound, "ruta no encontrada"
	case e.Code == fiber.StatusMethodNotAllowed:
		return e.Code, CodeNotFound, "método no permitido"
	case e.Code >= 400 && e.Code < 500:
		return e.Code, CodeInvalidRequest, e.Message
	}
	return fiber.StatusInternalServerError, CodeInternalError, "error interno"
}
