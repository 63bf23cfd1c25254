package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// RegisterAdjustmentFromRequest adapta el request HTTP/CLI de ajuste manual a AdjustStock.
// Usar desde handlers o comandos que tengan el operador y un dto.StockAdjustmentRequest.
func (l *StockLedger) RegisterAdjustmentFromRequest(ctx context.Context, actorID string, in dto.StockAdjustmentRequest) (*dto.StockMovementResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.ErrInvalidInput
	}
	_, mov, err := l.AdjustStock(ctx, AdjustStockInput{
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Reason:    entity.ReasonManualAdjustment,
		Note:      in.Note,
		ActorID:   actorID,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ToMovementResponse convierte un movimiento a su DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.StockMovementResponse{
		ID:          m.ID,
		Timestamp:   m.Timestamp,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Note:        m.Note,
		ActorID:     m.ActorID,
		SaleID:      m.SaleID,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
	}
}
