package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/leads-crm-api/internal/application/analytics"
	"github.com/jhoicas/leads-crm-api/internal/application/auth"
	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/usecase"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LeadUC        *crm.LeadUseCase
	ContactUC     *crm.ContactUseCase
	InteractionUC *crm.InteractionUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ReportUC      *appanalytics.ReportUseCase
	UserUC        *usecase.UserUseCase
	AuthUC        *auth.AuthUseCase
	AuthEnabled   bool
	JWTSecret     string
}

// Router registra las rutas de la API.
// Las rutas estáticas de cada grupo van antes de los parámetros (:id, :leadId).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Con AUTH_ENABLED el resto de /api exige Bearer Token y las mutaciones de usuarios, rol Admin.
	protected := api
	adminOnly := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthEnabled {
		protected = api.Group("", AuthMiddleware(deps.JWTSecret))
		adminOnly = RequireRole(entity.RoleAdmin)
	}

	// Leads + agenda de llamadas
	leadHandler := NewLeadHandler(deps.LeadUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	leads := protected.Group("/leads")
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/metrics", dashboardHandler.Metrics)
	leads.Get("/performance", dashboardHandler.Performance)
	leads.Get("/performance/report", dashboardHandler.PerformanceReport)
	leads.Get("/search", leadHandler.Search)
	leads.Get("/calls/due", leadHandler.DueCalls)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Put("/:id", leadHandler.Update)
	leads.Delete("/:id", leadHandler.Delete)
	leads.Get("/:id/calls", leadHandler.ListCalls)
	leads.Post("/:id/calls", leadHandler.AddCall)
	leads.Put("/:id/calls/:callId", leadHandler.UpdateCall)
	leads.Delete("/:id/calls/:callId", leadHandler.RemoveCall)

	// Contactos
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts := protected.Group("/contacts")
	contacts.Get("/:leadId", contactHandler.ListByLead)
	contacts.Post("/:leadId", contactHandler.Create)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	// Interacciones
	interactionHandler := NewInteractionHandler(deps.InteractionUC)
	interactions := protected.Group("/interactions")
	interactions.Get("/", interactionHandler.List)
	interactions.Get("/dashboard", dashboardHandler.InteractionSummary)
	interactions.Get("/recent", interactionHandler.Recent)
	interactions.Get("/:leadId", interactionHandler.List)
	interactions.Post("/:leadId", interactionHandler.Create)
	interactions.Put("/:id", interactionHandler.Update)
	interactions.Delete("/:id", interactionHandler.Delete)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", adminOnly, userHandler.Create)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)
}
