// Package storage implementa el almacén persistente clave-valor y los repositorios
// del dominio sobre él. Cada tipo de entidad es una secuencia lógica de documentos JSON
// identificados por id y listados en orden de inserción.
package storage

import (
	"context"
	"fmt"
)

// Tipos de entidad almacenados.
const (
	EntityProduct       = "product"
	EntityClient        = "client"
	EntitySale          = "sale"
	EntityStockMovement = "stock_movement"
	EntityCart          = "cart"
	EntitySettings      = "settings"
)

// Store almacén clave-valor por tipo de entidad. No ejecuta lógica de negocio
// ni ofrece transacciones entre claves.
type Store interface {
	// Get devuelve (nil, false, nil) si la clave no existe.
	Get(ctx context.Context, entityType, id string) ([]byte, bool, error)
	// GetAll devuelve los documentos en orden de inserción.
	GetAll(ctx context.Context, entityType string) ([][]byte, error)
	// Put inserta o reemplaza; reemplazar conserva la posición original.
	Put(ctx context.Context, entityType, id string, data []byte) error
	// Delete informa si la clave existía.
	Delete(ctx context.Context, entityType, id string) (bool, error)
	// CompareAndSwap reemplaza solo si el valor actual es exactamente old.
	// Con old == nil inserta solo si la clave no existe.
	CompareAndSwap(ctx context.Context, entityType, id string, old, new []byte) (bool, error)
	Close() error
}

// Drivers soportados.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open abre el almacén según el driver configurado.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", driver)
	}
}
