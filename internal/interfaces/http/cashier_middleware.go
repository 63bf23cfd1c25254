package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HeaderCashierID identifica al operador de la terminal.
const HeaderCashierID = "X-Cashier-ID"

// LocalCashierID clave de c.Locals con el operador de la petición.
const LocalCashierID = "cashier_id"

// CashierMiddleware toma el operador de X-Cashier-ID; sin header usa defaultCashier.
func CashierMiddleware(defaultCashier string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cashier := strings.TrimSpace(c.Get(HeaderCashierID))
		if cashier == "" {
			cashier = defaultCashier
		}
		c.Locals(LocalCashierID, cashier)
		return c.Next()
	}
}

// GetCashierID devuelve el operador cargado por CashierMiddleware.
func GetCashierID(c *fiber.Ctx) string {
	v := c.Locals(LocalCashierID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
