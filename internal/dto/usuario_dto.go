package dto

type CrearUsuarioRequest struct {
	Username string `json:"username" validate:"required"`
	Nombre   string `json:"nombre"   validate:"required"`
	Rol      string `json:"rol"      validate:"required,oneof=cajero administrador"`
}

type UsuarioResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
	Activo   bool   `json:"activo"`
}
