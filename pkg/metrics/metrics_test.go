package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

func TestRecorder_CuentaEventos(t *testing.T) {
	r := metrics.New()

	r.StockMovement("sale")
	r.StockMovement("sale")
	r.StockMovement("loss")
	r.Sale()
	r.Approval("stock_adjust", "consumed")

	n, err := testutil.GatherAndCount(r.Registry(), "greenstore_stock_movements_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por tipo de movimiento")

	count, err := testutil.GatherAndCount(r.Registry(), "greenstore_sales_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecorder_NopNoPanica(t *testing.T) {
	r := metrics.Nop()
	assert.NotPanics(t, func() {
		r.StockMovement("sale")
		r.Sale()
		r.Approval("cancel_sale", "issued")
		r.Rejection("FORBIDDEN")
	})

	var nilRecorder *metrics.Recorder
	assert.NotPanics(t, func() { nilRecorder.Sale() })
}
