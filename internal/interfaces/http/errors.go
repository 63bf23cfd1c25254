package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain"
)

// errorMapping asocia un error de dominio con el status HTTP y el código de la respuesta.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: PartialCommitError envuelve un StorageError y debe resolverse antes.
var errorMappings = []errorMapping{
	{domain.ErrPartialCommit, fiber.StatusInternalServerError, "PARTIAL_COMMIT"},
	{domain.ErrOutOfStock, fiber.StatusConflict, "OUT_OF_STOCK"},
	{domain.ErrNegativeStockResult, fiber.StatusConflict, "NEGATIVE_STOCK"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEmptyCart, fiber.StatusUnprocessableEntity, "EMPTY_CART"},
	{domain.ErrInvalidDiscount, fiber.StatusUnprocessableEntity, "INVALID_DISCOUNT"},
	{domain.ErrNonPositiveTotal, fiber.StatusUnprocessableEntity, "NON_POSITIVE_TOTAL"},
	{domain.ErrInvalidPaymentMethod, fiber.StatusUnprocessableEntity, "INVALID_PAYMENT_METHOD"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnknownClient, fiber.StatusNotFound, "UNKNOWN_CLIENT"},
	{domain.ErrUnknownProduct, fiber.StatusNotFound, "UNKNOWN_PRODUCT"},
	{domain.ErrCartLineNotFound, fiber.StatusNotFound, "CART_LINE_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrStorageFailure, fiber.StatusServiceUnavailable, "STORAGE_FAILURE"},
}

// classify devuelve status y código para err; INTERNAL si no es un error de dominio.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse según el error de dominio.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
