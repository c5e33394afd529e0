package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/dto"
)

// ContactHandler maneja las peticiones HTTP de contactos de un lead.
type ContactHandler struct {
	uc *crm.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *crm.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// ListByLead godoc
// @Summary      Contactos de un lead
// @Tags         contacts
// @Produce      json
// @Param        leadId  path  string  true  "ID del lead"
// @Success      200     {array}   dto.ContactResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/contacts/{leadId} [get]
func (h *ContactHandler) ListByLead(c *fiber.Ctx) error {
	out, err := h.uc.ListByLead(c.UserContext(), c.Params("leadId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        leadId  path  string                    true  "ID del lead"
// @Param        body    body  dto.CreateContactRequest  true  "Datos del contacto"
// @Success      201     {object}  dto.ContactResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/contacts/{leadId} [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
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
// @Summary      Actualizar contacto
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del contacto"
// @Param        body  body  dto.UpdateContactRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContactRequest
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
// @Summary      Eliminar contacto
// @Tags         contacts
// @Produce      json
// @Param        id   path  string  true  "ID del contacto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contact deleted"})
}
