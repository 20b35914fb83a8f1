package http

import (
	"log/slog"
	"os"

	"github.com/folha-audit/payroll-audit-go/internal/handler/http/middleware"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	auditHandler AuditHandler,
	catalogHandler CatalogHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-audit"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/audits", func(r chi.Router) {
				r.Route("/advance", func(r chi.Router) {
					r.Post("/", auditHandler.RunAdvanceAudit)
					r.Get("/{id}", auditHandler.GetAdvanceRun)
					r.Get("/{id}/report", reportHandler.AdvanceReport)
				})
				r.Route("/payroll", func(r chi.Router) {
					r.Post("/", auditHandler.RunPayrollAudit)
					r.Get("/{id}", auditHandler.GetPayrollRun)
					r.Get("/{id}/report", reportHandler.PayrollReport)
				})
				r.Get("/runs/{company}", auditHandler.ListRuns)
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/companies", catalogHandler.ListCompanies)
				r.Get("/events", catalogHandler.ListEvents)
			})
		})
	})
	return r
}
