package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

// Formatos de comprobante.
const (
	ReceiptText = "text"
	ReceiptPDF  = "pdf"
)

// ReceiptUseCase genera el comprobante (cupom não fiscal) de una venta.
type ReceiptUseCase struct {
	sales     repository.SaleRepository
	settings  repository.SettingsRepository
	renderers map[string]ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso con un renderer por formato.
func NewReceiptUseCase(
	sales repository.SaleRepository,
	settings repository.SettingsRepository,
	text, pdf ReceiptRenderer,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		sales:    sales,
		settings: settings,
		renderers: map[string]ReceiptRenderer{
			ReceiptText: text,
			ReceiptPDF:  pdf,
		},
	}
}

// Render devuelve el comprobante y un nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound     si la venta no existe.
//   - domain.ErrInvalidInput si el formato no es text ni pdf.
func (uc *ReceiptUseCase) Render(ctx context.Context, saleID, format string) ([]byte, string, error) {
	renderer, ok := uc.renderers[format]
	if !ok || renderer == nil {
		return nil, "", fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}

	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener configuración: %w", err)
	}
	if settings == nil {
		settings = &entity.StoreSettings{}
	}

	out, err := renderer.Render(ctx, sale, settings)
	if err != nil {
		return nil, "", err
	}
	ext := "txt"
	if format == ReceiptPDF {
		ext = "pdf"
	}
	return out, fmt.Sprintf("cupom-%s.%s", shortID(sale.ID), ext), nil
}

// shortID primeros 8 caracteres del id, usados como número de cupom.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
