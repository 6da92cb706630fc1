package handler

import (
	"net/http"

	"napos/internal/apierror"
	"napos/internal/dto"
	"napos/internal/model"
	"napos/internal/repository"

	"github.com/gin-gonic/gin"
)

// UsuariosHandler registers the operators recorded on ventas and compras.
// Thin enough that it talks to the repository directly.
type UsuariosHandler struct{ repo repository.UsuarioRepository }

func NewUsuariosHandler(repo repository.UsuarioRepository) *UsuariosHandler {
	return &UsuariosHandler{repo: repo}
}

func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := h.repo.FindByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusConflict, apierror.New("ya existe un usuario con ese username"))
		return
	}

	u := &model.Usuario{
		Username: req.Username,
		Nombre:   req.Nombre,
		Rol:      req.Rol,
		Activo:   true,
	}
	if err := h.repo.Create(c.Request.Context(), u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usuarioToResponse(u))
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	usuarios, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, *usuarioToResponse(&usuarios[i]))
	}
	c.JSON(http.StatusOK, out)
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}
