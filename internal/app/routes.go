package app

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modboard/internal/infra/metrics"
	"modboard/internal/transport/http/handlers"
)

type Dependencies struct {
	Store    handlers.Store
	Observer handlers.ScrollObserver
	Audit    handlers.AuditLog
	Logger   *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	stateHandler := handlers.NewStateHandler(deps.Store)
	eventsHandler := handlers.NewEventsHandler(deps.Store, deps.Observer)
	actionsHandler := handlers.NewActionsHandler(deps.Store, deps.Logger)
	auditHandler := handlers.NewAuditHandler(deps.Audit)

	r.Get("/healthz", healthHandler.Handle)
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/state", stateHandler.Get)
		r.Get("/audit", auditHandler.Recent)
		r.Post("/tab", eventsHandler.SwitchTab)
		r.Post("/select", eventsHandler.SelectItem)
		r.Post("/detail/close", eventsHandler.CloseDetail)
		r.Post("/scroll", eventsHandler.Scroll)
		r.Post("/items/{id}/review", actionsHandler.MarkReviewed)
		r.Post("/items/{id}/delete", actionsHandler.Delete)
	})
}
