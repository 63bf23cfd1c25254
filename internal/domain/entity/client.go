package entity

import "time"

// Cliente por defecto para ventas sin identificación.
const (
	DefaultClientID   = "1"
	DefaultClientName = "Consumidor Final"
)

// Client representa un cliente del directorio de la tienda.
type Client struct {
	ID        string
	Name      string
	Document  string // CPF o CNPJ
	Phone     string
	Email     string
	Address   string
	City      string
	CreatedAt time.Time
}

// IsDefault indica si es el cliente genérico que no puede eliminarse.
func (c *Client) IsDefault() bool {
	return c.ID == DefaultClientID
}
