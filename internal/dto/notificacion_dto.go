package dto

type NotificacionResponse struct {
	ID        string `json:"id"`
	Producto  string `json:"producto"`
	Severidad string `json:"severidad"`
	Mensaje   string `json:"mensaje"`
	Leida     bool   `json:"leida"`
	CreatedAt string `json:"created_at"`
}
