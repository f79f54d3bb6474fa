package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// RouterConfig carries everything NewRouter needs to assemble the route table.
type RouterConfig struct {
	Logger                 *slog.Logger
	Verifier               domain.TokenVerifier
	EventController        *controllers.EventController
	AuthController         *controllers.AuthController
	ProfileController      *controllers.ProfileController
	NotificationController *controllers.NotificationController
}

// NewRouter builds the route table. Method and path matching is left to the
// standard mux; auth and role checks wrap individual handlers.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	requireAdmin := middleware.RequireRole("admin")

	mux.HandleFunc("POST /login", cfg.AuthController.Login)
	mux.HandleFunc("POST /register", cfg.AuthController.Register)

	mux.HandleFunc("GET /events", cfg.EventController.List)
	mux.HandleFunc("GET /events/{eventID}", cfg.EventController.GetByID)
	mux.HandleFunc("POST /events", requireAuth(cfg.EventController.Create))
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(cfg.EventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(cfg.EventController.Delete))

	mux.HandleFunc("GET /profile", requireAuth(cfg.ProfileController.Get))

	mux.HandleFunc("GET /notifications", requireAuth(cfg.NotificationController.List))
	mux.HandleFunc("POST /notifications", requireAuth(requireAdmin(cfg.NotificationController.Create)))
	mux.HandleFunc("PATCH /notifications/read-all", requireAuth(cfg.NotificationController.MarkAllRead))
	mux.HandleFunc("PATCH /notifications/{notificationID}/read", requireAuth(cfg.NotificationController.MarkRead))
	mux.HandleFunc("DELETE /notifications/{notificationID}", requireAuth(cfg.NotificationController.Delete))

	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}
