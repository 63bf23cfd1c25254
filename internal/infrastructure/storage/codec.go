package storage

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/orion-pdv/internal/domain"
)

func storageErr(op, entity string, err error) error {
	return &domain.StorageError{Op: op, Entity: entity, Err: err}
}

func encode(entityType string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, storageErr("encode", entityType, err)
	}
	return data, nil
}

// getJSON devuelve (nil, nil) si la clave no existe.
func getJSON[T any](ctx context.Context, s Store, entityType, id string) (*T, []byte, error) {
	data, ok, err := s.Get(ctx, entityType, id)
	if err != nil {
		return nil, nil, storageErr("get", entityType, err)
	}
	if !ok {
		return nil, nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, nil, storageErr("decode", entityType, err)
	}
	return &v, data, nil
}

func listJSON[T any](ctx context.Context, s Store, entityType string) ([]*T, error) {
	all, err := s.GetAll(ctx, entityType)
	if err != nil {
		return nil, storageErr("list", entityType, err)
	}
	out := make([]*T, 0, len(all))
	for _, data := range all {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, storageErr("decode", entityType, err)
		}
		out = append(out, &v)
	}
	return out, nil
}

func putJSON(ctx context.Context, s Store, entityType, id string, v any) error {
	data, err := encode(entityType, v)
	if err != nil {
		return err
	}
	if err := s.Put(ctx, entityType, id, data); err != nil {
		return storageErr("put", entityType, err)
	}
	return nil
}

// insertJSON escribe solo si la clave no existe (domain.ErrDuplicate en caso contrario).
func insertJSON(ctx context.Context, s Store, entityType, id string, v any) error {
	data, err := encode(entityType, v)
	if err != nil {
		return err
	}
	ok, err := s.CompareAndSwap(ctx, entityType, id, nil, data)
	if err != nil {
		return storageErr("cas", entityType, err)
	}
	if !ok {
		return domain.ErrDuplicate
	}
	return nil
}
