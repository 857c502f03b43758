package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/ingest"
	"github.com/reefet/reefet-api/internal/application/usecase"
	"github.com/reefet/reefet-api/internal/domain"
)

// DispatchHandler expone la ingesta de telemetría y el listado con alcance.
type DispatchHandler struct {
	list *usecase.DispatchUseCase
}

func NewDispatchHandler(list *usecase.DispatchUseCase) *DispatchHandler {
	return &DispatchHandler{list: list}
}

// Ingest devuelve el handler de ingesta atado a un caso de uso (una estrategia por endpoint).
//
// @Summary      Ingestar despacho desde un nodo de campo
// @Tags         dispatches
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IngestDispatchRequest  true  "payload del firmware"
// @Success      201   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dispatches [post]
func (h *DispatchHandler) Ingest(uc *ingest.IngestUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.IngestDispatchRequest
		if err := parseBody(c, &in); err != nil {
			return err
		}
		out, err := uc.Ingest(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// List godoc
// @Summary      Listar despachos visibles para el usuario
// @Description  Admin ve todo; el resto solo sus depósitos. Orden tServ descendente, máximo 100.
// @Tags         dispatches
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "subcadena de idNodo o idReefer"
// @Success      200     {array}   dto.DispatchResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/dispatches [get]
func (h *DispatchHandler) List(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	list, err := h.list.List(c.UserContext(), p, c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}
