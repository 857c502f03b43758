package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/usecase"
)

// DepotHandler maneja las peticiones HTTP de depósitos.
type DepotHandler struct {
	uc *usecase.DepotUseCase
}

func NewDepotHandler(uc *usecase.DepotUseCase) *DepotHandler {
	return &DepotHandler{uc: uc}
}

// Create godoc
// @Summary      Crear depósito
// @Tags         depots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateDepotRequest  true  "depósito con companyId"
// @Success      201   {object}  dto.DepotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/depots [post]
func (h *DepotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDepotRequest
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
// @Summary      Listar depósitos (id, name)
// @Tags         depots
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "subcadena del nombre"
// @Success      200     {array}   dto.RefResponse
// @Router       /api/depots [get]
func (h *DepotHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}
