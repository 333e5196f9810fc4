package dto

// LimitQuery límite para listados; el caso de uso lo acota a [1, 200] con 50 por defecto.
type LimitQuery struct {
	Limit int `json:"limit" query:"limit" validate:"min=0"`
}

// MovementsQuery filtros de GET /api/stock/movements.
type MovementsQuery struct {
	ProductID string `json:"product_id" query:"product_id" validate:"omitempty,uuid"`
	Limit     int    `json:"limit" query:"limit" validate:"min=0"`
}

// FieldError detalle de validación por campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody código estable, mensaje y detalles opcionales.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

// StatusResponse respuesta mínima de acciones sin recurso creado.
type StatusResponse struct {
	Status     string  `json:"status"`
	ApprovedBy *string `json:"approved_by,omitempty"`
}
