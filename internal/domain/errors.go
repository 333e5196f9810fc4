package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica un rechazo de negocio; la capa HTTP lo traduce a status + código.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
)

// BusinessError es un rechazo deliberado por un estado inválido conocido
// (stock insuficiente, aprobación vencida...). Su mensaje se expone al cliente tal cual.
// Cualquier otro error se considera falla de infraestructura.
type BusinessError struct {
	Kind    Kind
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// NewBusinessError crea un rechazo ad hoc.
func NewBusinessError(kind Kind, format string, args ...any) *BusinessError {
	return &BusinessError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsBusiness extrae el rechazo de negocio de la cadena de errores.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = &BusinessError{Kind: KindNotFound, Message: "recurso no encontrado"}
	ErrProductNotFound   = &BusinessError{Kind: KindNotFound, Message: "producto no encontrado"}
	ErrSaleNotFound      = &BusinessError{Kind: KindNotFound, Message: "venta no encontrada"}
	ErrDiscountNotFound  = &BusinessError{Kind: KindNotFound, Message: "descuento no encontrado"}
	ErrInvalidInput      = &BusinessError{Kind: KindInvalid, Message: "entrada inválida"}
	ErrDuplicate         = &BusinessError{Kind: KindConflict, Message: "recurso duplicado"}
	ErrUnauthorized      = &BusinessError{Kind: KindUnauthorized, Message: "no autorizado"}
	ErrForbidden         = &BusinessError{Kind: KindForbidden, Message: "acceso denegado"}
	ErrInsufficientStock = &BusinessError{Kind: KindInvalid, Message: "stock insuficiente"}
	ErrNegativeStock     = &BusinessError{Kind: KindInvalid, Message: "el stock no puede quedar negativo"}

	ErrFractionalQuantity = &BusinessError{Kind: KindInvalid, Message: "el producto se vende por unidad: la cantidad debe ser entera"}

	ErrInvalidDiscount  = &BusinessError{Kind: KindInvalid, Message: "descuento inválido"}
	ErrDiscountCeiling  = &BusinessError{Kind: KindForbidden, Message: "descuento por encima del límite permitido"}
	ErrBundleIncomplete = &BusinessError{Kind: KindInvalid, Message: "cantidad y precio del combo son obligatorios"}
	ErrSubtotalRequired = &BusinessError{Kind: KindInvalid, Message: "subtotal obligatorio para validar el descuento"}

	ErrApprovalRequired = &BusinessError{Kind: KindUnauthorized, Message: "aprobación requerida"}
	ErrApprovalInvalid  = &BusinessError{Kind: KindForbidden, Message: "aprobación inválida"}
	ErrApprovalExpired  = &BusinessError{Kind: KindForbidden, Message: "aprobación expirada"}
	ErrInvalidAction    = &BusinessError{Kind: KindInvalid, Message: "acción inválida"}

	ErrInvalidCredentials = &BusinessError{Kind: KindUnauthorized, Message: "credenciales inválidas"}
	ErrApproverRole       = &BusinessError{Kind: KindForbidden, Message: "la aprobación requiere gerente o administrador"}
	ErrTooManyAttempts    = &BusinessError{Kind: KindForbidden, Message: "usuario bloqueado por intentos fallidos"}

	ErrNoSettings = &BusinessError{Kind: KindInvalid, Message: "ninguna configuración enviada"}
)
