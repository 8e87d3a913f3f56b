package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/Adprivat/praxislabor/internal/auth"
	"github.com/Adprivat/praxislabor/internal/catalog"
	"github.com/Adprivat/praxislabor/internal/management"
	"github.com/Adprivat/praxislabor/internal/team"
	"github.com/Adprivat/praxislabor/internal/timeentry"
	"github.com/Adprivat/praxislabor/internal/transport/middleware"
	"github.com/Adprivat/praxislabor/internal/transport/swagger"
)

// RegisterAllRoutes wires the full API surface under /api/v1. Route
// groups mirror the role model: employee routes behind AuthMiddleware,
// management routes additionally behind RequireManager, catalog
// administration behind RequireAdmin.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	catalogHandler *catalog.Handler,
	entryHandler *timeentry.Handler,
	managementHandler *management.Handler,
	teamHandler *team.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", authHandler.GetCurrentUser)
			pr.Post("/auth/password", authHandler.ChangePassword)

			// Picker catalog for the entry form.
			pr.Get("/catalog", catalogHandler.GetActiveCatalog)

			pr.Route("/entries", func(er chi.Router) {
				er.Post("/", entryHandler.CreateEntry)
				er.Get("/", entryHandler.ListEntries)
				er.Put("/{id}", entryHandler.UpdateEntry)
				er.Delete("/{id}", entryHandler.DeleteEntry)
			})
			pr.Get("/favorites", entryHandler.ListFavorites)

			pr.Group(func(mr chi.Router) {
				mr.Use(authHandler.RequireManager)

				mr.Route("/management", func(mgr chi.Router) {
					mgr.Get("/overview", managementHandler.GetOverview)
					mgr.Get("/export", managementHandler.ExportCSV)
				})

				mr.Route("/team", func(tr chi.Router) {
					tr.Get("/", teamHandler.GetTeamOverview)
					tr.Post("/", teamHandler.CreateEmployee)
					tr.Post("/{id}/deactivate", teamHandler.DeactivateEmployee)
				})
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireAdmin)

				ar.Route("/admin/catalog", func(cr chi.Router) {
					cr.Get("/", catalogHandler.GetAdminCatalog)
					cr.Post("/categories", catalogHandler.CreateCategory)
					cr.Post("/tags", catalogHandler.CreateTag)
					cr.Post("/blocks", catalogHandler.CreateBlock)
					cr.Patch("/categories/{id}/toggle", catalogHandler.ToggleCategory)
					cr.Patch("/tags/{id}/toggle", catalogHandler.ToggleTag)
					cr.Patch("/blocks/{id}/toggle", catalogHandler.ToggleBlock)
				})
			})
		})
	})
}
