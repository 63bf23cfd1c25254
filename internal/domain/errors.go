package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	ErrOutOfStock           = errors.New("stock insuficiente")
	ErrEmptyCart            = errors.New("el carrito está vacío")
	ErrUnknownClient        = errors.New("cliente desconocido")
	ErrUnknownProduct       = errors.New("producto desconocido")
	ErrInvalidDiscount      = errors.New("el descuento debe estar entre 0 y 100")
	ErrNonPositiveTotal     = errors.New("el total de la venta debe ser mayor que cero")
	ErrNegativeStockResult  = errors.New("el ajuste dejaría el stock en negativo")
	ErrStorageFailure       = errors.New("fallo de almacenamiento")
	ErrInvalidPaymentMethod = errors.New("forma de pago inválida")
	ErrCartLineNotFound     = errors.New("el producto no está en el carrito")
	ErrPartialCommit        = errors.New("venta registrada con inconsistencias")
)

// OutOfStockError detalla la línea que excede el stock disponible.
type OutOfStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q (%s): solicitado %d, disponible %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// Is permite errors.Is(err, ErrOutOfStock).
func (e *OutOfStockError) Is(target error) bool { return target == ErrOutOfStock }

// StorageError envuelve un fallo del almacén persistente.
type StorageError struct {
	Op     string // get, list, put, delete, cas, decode, encode
	Entity string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("almacenamiento: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStorageFailure).
func (e *StorageError) Is(target error) bool { return target == ErrStorageFailure }

// Etapas en las que una venta ya persistida puede quedar incompleta.
const (
	StageStock = "stock"
	StageCart  = "cart"
)

// PartialCommitError indica que la venta quedó persistida pero algún paso posterior falló.
// MissingProductIDs lista los productos cuyo movimiento de stock no se registró.
type PartialCommitError struct {
	SaleID            string
	Stage             string
	MissingProductIDs []string
	Err               error
}

func (e *PartialCommitError) Error() string {
	msg := fmt.Sprintf("venta %s registrada con fallo en etapa %s", e.SaleID, e.Stage)
	if len(e.MissingProductIDs) > 0 {
		msg += " (sin movimiento: " + strings.Join(e.MissingProductIDs, ", ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrPartialCommit).
func (e *PartialCommitError) Is(target error) bool { return target == ErrPartialCommit }
