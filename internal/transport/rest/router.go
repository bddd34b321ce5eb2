package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/ScottHCollier/inntrac-app/internal/account"
	"github.com/ScottHCollier/inntrac-app/internal/auth"
	"github.com/ScottHCollier/inntrac-app/internal/group"
	"github.com/ScottHCollier/inntrac-app/internal/schedule"
	"github.com/ScottHCollier/inntrac-app/internal/shift"
	"github.com/ScottHCollier/inntrac-app/internal/site"
	"github.com/ScottHCollier/inntrac-app/internal/transport/middleware"
	"github.com/ScottHCollier/inntrac-app/internal/transport/swagger"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	accountHandler *account.Handler,
	siteHandler *site.Handler,
	groupHandler *group.Handler,
	shiftHandler *shift.Handler,
	scheduleHandler *schedule.Handler,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ping", healthHandler.Ping)

		// Public account routes
		r.Route("/account", func(ar chi.Router) {
			ar.Post("/login", accountHandler.Login)
			ar.Post("/register", accountHandler.Register)
			ar.Post("/setPassword", accountHandler.SetPassword)

			ar.Group(func(pr chi.Router) {
				pr.Use(authHandler.Middleware)
				pr.Get("/", accountHandler.GetAccount)

				// Inviting users is an admin operation
				pr.Group(func(admin chi.Router) {
					admin.Use(authHandler.RequireAdmin)
					admin.Post("/", accountHandler.AddUser)
				})
			})
		})

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.Middleware)

			pr.Route("/sites", func(sr chi.Router) {
				sr.Post("/", siteHandler.CreateSite)
				sr.Get("/", siteHandler.GetSites)
				sr.Get("/{id}", siteHandler.GetSite)
				sr.Put("/{id}", siteHandler.UpdateSite)
			})

			pr.Route("/groups", func(gr chi.Router) {
				gr.Post("/", groupHandler.CreateGroup)
				gr.Get("/", groupHandler.GetGroups)
				gr.Get("/{id}", groupHandler.GetGroup)
				gr.Put("/{id}", groupHandler.UpdateGroup)
				gr.Delete("/{id}", groupHandler.DeleteGroup)
			})

			pr.Route("/shifts", func(shr chi.Router) {
				shr.Post("/", shiftHandler.CreateShift)
				shr.Put("/{id}", shiftHandler.UpdateShift)
				shr.Delete("/{id}", shiftHandler.DeleteShift)
			})

			pr.Route("/schedules", func(scr chi.Router) {
				scr.Get("/", scheduleHandler.GetWeek)
				scr.Post("/", scheduleHandler.CreateSchedule)
				scr.Put("/{id}", scheduleHandler.UpdateSchedule)
				scr.Delete("/{id}", scheduleHandler.DeleteSchedule)
				scr.Post("/bulk", scheduleHandler.BulkCreateSchedules)
				scr.Put("/bulk", scheduleHandler.BulkUpdateSchedules)
				scr.Post("/timeoff", scheduleHandler.RequestTimeOff)
				scr.Get("/pending", scheduleHandler.GetPendingTimeOff)
			})
		})
	})
}
