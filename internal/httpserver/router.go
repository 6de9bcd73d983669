package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/calendar"
	"inanisgarage/internal/files"
	"inanisgarage/internal/httpserver/handlers"
	"inanisgarage/internal/mirror"
	"inanisgarage/internal/store"
)

func NewRouter(st *store.Store, fs *files.Storage, mr *mirror.Mirror, cal *calendar.Notifier, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Post("/v1/auth/login", handlers.Login(st, lg))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(st))
		protected.Get("/v1/me", handlers.Me(st))
		protected.Post("/v1/auth/logout", handlers.Logout())
		protected.Post("/v1/auth/password", handlers.ChangePassword(st, lg))

		protected.Get("/v1/dashboard", handlers.Dashboard(st, lg))
		protected.Get("/v1/vehicles", handlers.ListVehicles(st))
		protected.Get("/v1/vehicles/{id}", handlers.GetVehicle(st))
		protected.Get("/v1/vehicles/{id}/assignments", handlers.ListAssignments(st))
		protected.Get("/v1/vehicles/{id}/documents", handlers.ListDocuments(st))
		protected.Post("/v1/vehicles/{id}/fuel", handlers.AddFuelLog(st, lg))
		protected.Get("/v1/files/*", handlers.ServeUpload(fs))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin)
			admin.Post("/v1/vehicles", handlers.CreateVehicle(st, fs, mr, lg))
			admin.Patch("/v1/vehicles/{id}", handlers.UpdateVehicle(st, lg))
			admin.Post("/v1/vehicles/{id}/assignments", handlers.CreateAssignment(st, cal, lg))
			admin.Post("/v1/vehicles/{id}/documents", handlers.UploadDocument(st, fs, mr, lg))
			admin.Post("/v1/vehicles/{id}/maintenance", handlers.AddMaintenance(st, lg))
			admin.Get("/v1/admin/users", handlers.ListUsers(st))
			admin.Post("/v1/admin/users", handlers.CreateUser(st, lg))
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
