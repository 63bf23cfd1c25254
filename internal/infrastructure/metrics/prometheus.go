// Package metrics expone contadores Prometheus de ventas y movimientos de stock.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "pdv"

// Recorder implementa sales.Metrics e inventory.Metrics sobre un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	salesTotal     *prometheus.CounterVec
	salesValue     *prometheus.CounterVec
	itemsSold      prometheus.Counter
	salesRejected  *prometheus.CounterVec
	partialCommits *prometheus.CounterVec
	stockMovements *prometheus.CounterVec
	stockUnits     *prometheus.CounterVec
}

// NewRecorder registra los colectores. Con withRuntime se añaden los de Go y proceso.
func NewRecorder(withRuntime bool) *Recorder {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r := &Recorder{
		registry: reg,
		salesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_total",
			Help: "Ventas confirmadas por forma de pago.",
		}, []string{"payment_method"}),
		salesValue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_value_total",
			Help: "Valor vendido por forma de pago.",
		}, []string{"payment_method"}),
		itemsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "items_sold_total",
			Help: "Unidades vendidas.",
		}),
		salesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_rejected_total",
			Help: "Checkouts rechazados antes de persistir, por motivo.",
		}, []string{"reason"}),
		partialCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_partial_commit_total",
			Help: "Ventas persistidas con efectos secundarios incompletos, por etapa.",
		}, []string{"stage"}),
		stockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "stock_movements_total",
			Help: "Movimientos de stock registrados.",
		}, []string{"kind", "reason"}),
		stockUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "stock_units_total",
			Help: "Unidades movidas en el libro de stock.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		r.salesTotal, r.salesValue, r.itemsSold, r.salesRejected,
		r.partialCommits, r.stockMovements, r.stockUnits,
	)
	return r
}

// SaleCommitted cuenta una venta confirmada.
func (r *Recorder) SaleCommitted(paymentMethod string, total decimal.Decimal, items int) {
	r.salesTotal.WithLabelValues(paymentMethod).Inc()
	v, _ := total.Float64()
	r.salesValue.WithLabelValues(paymentMethod).Add(v)
	r.itemsSold.Add(float64(items))
}

// SaleRejected cuenta un checkout rechazado.
func (r *Recorder) SaleRejected(reason string) {
	r.salesRejected.WithLabelValues(reason).Inc()
}

// PartialCommit cuenta una venta con efectos incompletos.
func (r *Recorder) PartialCommit(stage string) {
	r.partialCommits.WithLabelValues(stage).Inc()
}

// StockMovementRecorded cuenta un movimiento del libro de stock.
func (r *Recorder) StockMovementRecorded(kind, reason string, quantity int) {
	r.stockMovements.WithLabelValues(kind, reason).Inc()
	r.stockUnits.WithLabelValues(kind).Add(float64(quantity))
}

// Registry devuelve el registro para pruebas o exportadores adicionales.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler sirve /metrics en formato de exposición Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
