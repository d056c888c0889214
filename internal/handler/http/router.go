package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	attendanceHandler AttendanceHandler,
	policyHandler PolicyHandler,
	shortLeaveHandler ShortLeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/{employeeID}/{date}", attendanceHandler.GetRecord)
				r.Get("/{employeeID}", attendanceHandler.ListRecords)

				// Recomputation is admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/compute/day", attendanceHandler.ComputeDay)
					r.Post("/compute/range", attendanceHandler.ComputeRange)
					r.Post("/compute/batch", attendanceHandler.ComputeBatch)
				})
			})

			r.Route("/policies/{group}", func(r chi.Router) {
				r.Get("/", policyHandler.GetEffective)
				r.Get("/versions", policyHandler.ListVersions)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/versions", policyHandler.CreateVersion)
				})
			})

			r.Route("/short-leaves", func(r chi.Router) {
				r.Post("/", shortLeaveHandler.Submit)
				r.Get("/usage/{employeeID}", shortLeaveHandler.MonthlyUsage)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending", shortLeaveHandler.ListPending)
					r.Post("/{id}/decision", shortLeaveHandler.Decide)
				})
			})
		})
	})
	return r
}
