package dto

// PageRequest paginación opcional para listados. Limit 0 = sin paginar.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Paged indica si se pidió paginación.
func (p PageRequest) Paged() bool { return p.Limit > 0 }

// Bounds normaliza Limit/Offset (máximo 200) y devuelve el rango [start, end) sobre n elementos.
func (p *PageRequest) Bounds(n int) (start, end int) {
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	start = min(p.Offset, n)
	end = min(start+p.Limit, n)
	return start, end
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
