package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/dto"
)

// LeadHandler maneja las peticiones HTTP de leads y su agenda de llamadas.
type LeadHandler struct {
	uc *crm.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *crm.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// List godoc
// @Summary      Listar leads
// @Description  Incluye contactos e interacciones de cada lead salvo expand=false.
// @Tags         leads
// @Produce      json
// @Param        expand  query  bool  false  "Expandir contactos e interacciones"  default(true)
// @Success      200  {array}   dto.LeadResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("expand", true))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar leads por nombre
// @Tags         leads
// @Produce      json
// @Param        query  query  string  true  "Texto a buscar (sin distinguir mayúsculas)"
// @Success      200  {array}   dto.LeadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/leads/search [get]
func (h *LeadHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DueCalls godoc
// @Summary      Leads con llamada pendiente hoy
// @Tags         leads
// @Produce      json
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/leads/calls/due [get]
func (h *LeadHandler) DueCalls(c *fiber.Ctx) error {
	out, err := h.uc.DueCalls(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lead por ID
// @Tags         leads
// @Produce      json
// @Param        id      path   string  true   "ID del lead"
// @Param        expand  query  bool    false  "Expandir contactos e interacciones"  default(true)
// @Success      200  {object}  dto.LeadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), c.QueryBool("expand", true))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar lead (parcial)
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lead"
// @Param        body  body  dto.UpdateLeadRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
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
// @Summary      Eliminar lead
// @Description  Elimina también sus contactos e interacciones.
// @Tags         leads
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "lead deleted"})
}

// ListCalls godoc
// @Summary      Agenda de llamadas del lead
// @Tags         calls
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {array}   dto.CallResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/calls [get]
func (h *LeadHandler) ListCalls(c *fiber.Ctx) error {
	out, err := h.uc.ListCalls(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddCall godoc
// @Summary      Agendar llamada
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lead"
// @Param        body  body  dto.CreateCallRequest  true  "Llamada"
// @Success      201   {array}   dto.CallResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/calls [post]
func (h *LeadHandler) AddCall(c *fiber.Ctx) error {
	var in dto.CreateCallRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.AddCall(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCall godoc
// @Summary      Actualizar llamada agendada
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true  "ID del lead"
// @Param        callId  path  string                 true  "ID de la llamada"
// @Param        body    body  dto.UpdateCallRequest  true  "Campos a modificar"
// @Success      200     {array}   dto.CallResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/calls/{callId} [put]
func (h *LeadHandler) UpdateCall(c *fiber.Ctx) error {
	var in dto.UpdateCallRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.UpdateCall(c.UserContext(), c.Params("id"), c.Params("callId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RemoveCall godoc
// @Summary      Quitar llamada de la agenda
// @Description  Quitar un callId inexistente no modifica la agenda.
// @Tags         calls
// @Produce      json
// @Param        id      path  string  true  "ID del lead"
// @Param        callId  path  string  true  "ID de la llamada"
// @Success      200     {array}   dto.CallResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/calls/{callId} [delete]
func (h *LeadHandler) RemoveCall(c *fiber.Ctx) error {
	out, err := h.uc.RemoveCall(c.UserContext(), c.Params("id"), c.Params("callId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
