package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	contractHandler ContractHandler,
	attendanceHandler AttendanceHandler,
	salaryHandler SalaryHandler,
	correctionHandler CorrectionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requester-ID"},
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
		r.Route("/contracts", func(r chi.Router) {
			r.Post("/", contractHandler.Create)
			r.Get("/{id}", contractHandler.Get)
		})

		r.Route("/attendances", func(r chi.Router) {
			r.Post("/", attendanceHandler.Create)
			r.Get("/contract/{contractID}", attendanceHandler.ListByContract)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", attendanceHandler.Get)
				r.Patch("/", attendanceHandler.Update)
				r.Delete("/", attendanceHandler.Delete)
				r.Post("/complete", attendanceHandler.Complete)
			})
		})

		r.Route("/salaries/{contractID}/{year}/{month}", func(r chi.Router) {
			r.Get("/", salaryHandler.Get)
			r.Post("/calculate", salaryHandler.Calculate)
		})

		r.Route("/corrections", func(r chi.Router) {
			r.Post("/", correctionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", correctionHandler.Get)
				r.Delete("/", correctionHandler.Cancel)
				r.Post("/approve", correctionHandler.Approve)
				r.Post("/reject", correctionHandler.Reject)
			})
		})
	})

	return r
}
