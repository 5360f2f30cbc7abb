// Package web is the portal's front end: public marketing pages, the
// login flow, and gate-protected private screens, all rendered server
// side against the remote school API.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"formativa-portal/internal/api"
	"formativa-portal/internal/config"
	"formativa-portal/internal/middleware"
	"formativa-portal/internal/session"
)

func NewRouter(cfg *config.Config, manager *session.Manager, client *api.Client) http.Handler {
	h := NewHandlers(manager, client)

	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.LoginRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Metrics)
	r.Use(rateLimit.Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Home)
	r.Get("/escola", h.School)
	r.Get("/processo", h.Process)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.LoginSubmit)
	r.Post("/logout", h.Logout)

	r.Group(func(private chi.Router) {
		private.Use(middleware.RequireSession(manager))

		private.Get("/perfil", h.Profile)

		private.Get("/salas", h.Classrooms)
		private.Post("/salas", h.CreateClassroom)
		private.Get("/salas/{id}/editar", h.EditClassroomForm)
		private.Post("/salas/{id}/editar", h.UpdateClassroom)
		private.Post("/salas/{id}/excluir", h.DeleteClassroom)

		private.Get("/disciplinas", h.Disciplines)
		private.Post("/disciplinas", h.CreateDiscipline)
		private.Get("/disciplinas/{id}/editar", h.EditDisciplineForm)
		private.Post("/disciplinas/{id}/editar", h.UpdateDiscipline)
		private.Post("/disciplinas/{id}/excluir", h.DeleteDiscipline)

		private.Get("/reservas", h.Reservations)
		private.Post("/reservas", h.CreateReservation)
		private.Get("/reservas/{id}/editar", h.EditReservationForm)
		private.Post("/reservas/{id}/editar", h.UpdateReservation)
		private.Post("/reservas/{id}/excluir", h.DeleteReservation)

		private.Get("/cadastro", h.Registration)
		private.Post("/cadastro", h.CreateUser)
		private.Get("/cadastro/{id}/editar", h.EditUserForm)
		private.Post("/cadastro/{id}/editar", h.UpdateUser)
		private.Post("/cadastro/{id}/excluir", h.DeleteUser)
	})

	return r
}
