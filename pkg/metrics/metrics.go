// Package metrics expone contadores de negocio del motor de caja e inventario
// (movimientos de stock, ventas, aprobaciones y rechazos) en formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder agrupa los contadores; usar Nop() cuando no se quieran métricas.
type Recorder struct {
	registry   *prometheus.Registry
	movements  *prometheus.CounterVec
	sales      prometheus.Counter
	approvals  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	enabled    bool
}

// New registra los contadores en un registry propio (no el global) para que los tests
// puedan crear varios recorders sin colisiones.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenstore",
			Name:      "stock_movements_total",
			Help:      "Movimientos de stock confirmados por tipo.",
		}, []string{"type"}),
		sales: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "greenstore",
			Name:      "sales_total",
			Help:      "Ventas registradas.",
		}),
		approvals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenstore",
			Name:      "approvals_total",
			Help:      "Tokens de aprobación por acción y resultado (issued, consumed, rejected).",
		}, []string{"action", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenstore",
			Name:      "business_rejections_total",
			Help:      "Rechazos de reglas de negocio por código de error.",
		}, []string{"code"}),
		enabled: true,
	}
	reg.MustRegister(r.movements, r.sales, r.approvals, r.rejections)
	return r
}

// Nop devuelve un recorder que no registra nada.
func Nop() *Recorder {
	return &Recorder{}
}

// StockMovement cuenta un movimiento confirmado.
func (r *Recorder) StockMovement(movementType string) {
	if r == nil || !r.enabled {
		return
	}
	r.movements.WithLabelValues(movementType).Inc()
}

// Sale cuenta una venta confirmada.
func (r *Recorder) Sale() {
	if r == nil || !r.enabled {
		return
	}
	r.sales.Inc()
}

// Approval cuenta un evento del ciclo de vida de un token.
func (r *Recorder) Approval(action, outcome string) {
	if r == nil || !r.enabled {
		return
	}
	r.approvals.WithLabelValues(action, outcome).Inc()
}

// Rejection cuenta un rechazo de negocio devuelto al cliente.
func (r *Recorder) Rejection(code string) {
	if r == nil || !r.enabled {
		return
	}
	r.rejections.WithLabelValues(code).Inc()
}

// Handler expone el registry en formato texto de Prometheus.
func (r *Recorder) Handler() http.Handler {
	if r == nil || r.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry devuelve el registry interno (tests).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
