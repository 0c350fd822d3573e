package http

import (
	"log/slog"
	"os"

	"github.com/bellastudio/studio-backend-go/internal/handler/http/middleware"
	"github.com/bellastudio/studio-backend-go/internal/pkg/jwt"
	"github.com/bellastudio/studio-backend-go/internal/pkg/permission"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, checker permission.Checker, frontendURL string, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "studio-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/periods", func(r chi.Router) {
					r.With(middleware.RequirePermission(checker, "payroll", "view")).Get("/", payrollHandler.ListPeriods)
					r.With(middleware.RequirePermission(checker, "payroll", "edit")).Post("/", payrollHandler.OpenPeriod)

					r.Route("/{periodID}", func(r chi.Router) {
						r.With(middleware.RequirePermission(checker, "payroll", "view")).Get("/slips", payrollHandler.ListSlips)
						r.With(middleware.RequirePermission(checker, "payroll", "view")).Get("/items", payrollHandler.ListPeriodItems)
						r.With(middleware.RequirePermission(checker, "payroll", "sync")).Post("/sync", payrollHandler.Sync)
						r.With(middleware.RequirePermission(checker, "payroll", "edit")).Post("/allowances/copy", payrollHandler.CopyAllowances)
					})
				})

				r.Route("/slips", func(r chi.Router) {
					r.With(middleware.RequirePermission(checker, "payroll", "edit")).Post("/", payrollHandler.InitializeSlip)

					r.Route("/{slipID}", func(r chi.Router) {
						r.With(middleware.RequirePermission(checker, "payroll", "view")).Get("/items", payrollHandler.ListSlipItems)
						r.With(middleware.RequirePermission(checker, "payroll", "finalize")).Post("/finalize", payrollHandler.FinalizeSlip)
					})
				})

				r.Route("/items", func(r chi.Router) {
					r.With(middleware.RequirePermission(checker, "payroll", "edit")).Post("/", payrollHandler.SaveItem)
					r.With(middleware.RequirePermission(checker, "payroll", "edit")).Delete("/{itemID}", payrollHandler.DeleteItem)
				})
			})
		})
	})

	return r
}
