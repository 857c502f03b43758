package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/usecase"
)

// NodeHandler maneja las peticiones HTTP de nodos.
type NodeHandler struct {
	uc *usecase.NodeUseCase
}

func NewNodeHandler(uc *usecase.NodeUseCase) *NodeHandler {
	return &NodeHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar nodo
// @Tags         nodes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateNodeRequest  true  "externalCode, depotId"
// @Success      201   {object}  dto.NodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/nodes [post]
func (h *NodeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNodeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar nodos (id, código externo)
// @Tags         nodes
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "subcadena del código"
// @Success      200     {array}   dto.RefResponse
// @Router       /api/nodes [get]
func (h *NodeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}
