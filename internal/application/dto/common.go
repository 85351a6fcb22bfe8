package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Page     int    `json:"page" validate:"min=1"`
	Size     int    `json:"size" validate:"min=1,max=100"`
	SortBy   string `json:"sort_by"`
	SortDesc bool   `json:"sort_desc"`
}

// DefaultPage aplica valores por defecto si Page/Size son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = 20
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewPageResponse calcula los metadatos a partir del total filtrado.
func NewPageResponse(page, size int, total int64) PageResponse {
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return PageResponse{Page: page, Size: size, Total: total, TotalPages: pages}
}
