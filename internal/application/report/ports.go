package report

import "github.com/jhoicas/orion-pdv/internal/application/dto"

// Exporter serializa los reportes a hoja de cálculo.
type Exporter interface {
	SalesSheet(r *dto.SalesReportDTO) ([]byte, error)
	StockSheet(r *dto.StockReportDTO) ([]byte, error)
}
