package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/dto"
)

// InteractionHandler maneja las peticiones HTTP de interacciones.
type InteractionHandler struct {
	uc *crm.InteractionUseCase
}

// NewInteractionHandler construye el handler.
func NewInteractionHandler(uc *crm.InteractionUseCase) *InteractionHandler {
	return &InteractionHandler{uc: uc}
}

// List godoc
// @Summary      Listar interacciones
// @Description  Sin leadId devuelve todas; cada una incluye lead_name.
// @Tags         interactions
// @Produce      json
// @Param        leadId  path  string  false  "ID del lead"
// @Success      200     {array}   dto.InteractionResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/interactions [get]
// @Router       /api/interactions/{leadId} [get]
func (h *InteractionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("leadId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Interacciones más recientes
// @Tags         interactions
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (máx. 100)"  default(10)
// @Success      200    {array}  dto.InteractionResponse
// @Router       /api/interactions/recent [get]
func (h *InteractionHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.UserContext(), c.QueryInt("limit", crm.DefaultRecentLimit))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar interacción
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        leadId  path  string                        true  "ID del lead"
// @Param        body    body  dto.CreateInteractionRequest  true  "Datos de la interacción"
// @Success      201     {object}  dto.InteractionResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/interactions/{leadId} [post]
func (h *InteractionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInteractionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("leadId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar interacción
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la interacción"
// @Param        body  body  dto.UpdateInteractionRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.InteractionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/interactions/{id} [put]
func (h *InteractionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInteractionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar interacción
// @Tags         interactions
// @Produce      json
// @Param        id   path  string  true  "ID de la interacción"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/interactions/{id} [delete]
func (h *InteractionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "interaction deleted"})
}
