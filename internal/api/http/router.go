package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/formhive/formhive/internal/audit"
	"github.com/formhive/formhive/internal/auth"
	"github.com/formhive/formhive/internal/grading"
	"github.com/formhive/formhive/internal/quiz"
	"github.com/formhive/formhive/internal/rbac"
)

// Deps collects what the router wires together.
type Deps struct {
	DB             *sql.DB
	Store          quiz.Store
	Auth           *auth.AuthService
	Events         *audit.EventRepo
	Evaluator      *grading.Evaluator
	CORSOrigins    []string
	AllowClaimRole bool
}

// NewRouter builds the full HTTP surface: public quiz serving and submission,
// authenticated authoring and results, admin content management.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", RegisterHandler(d.DB, d.Auth))
	r.Post("/auth/login", LoginHandler(d.DB, d.Auth))

	// Public serving: redacted views and anonymous submission. A bearer token
	// is honored when present (owners, retake gating) but never required.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.OptionalJWT(d.Auth))
		pr.Get("/public/quizzes/code/{code}", GetQuizByCodeHandler(d.Store))
		pr.Get("/quizzes/{quizID}", GetQuizHandler(d.Store))
		pr.Post("/quizzes/{quizID}/responses", SubmitResponseHandler(d.Store, d.Evaluator, d.Events))
	})

	// Authenticated API (JWT -> role in context -> RBAC).
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))
		pr.Use(auth.AttachRoleFromDB(d.DB, d.AllowClaimRole))

		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", CreateQuizHandler(d.Store))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes", ListQuizzesHandler(d.Store))
		pr.With(rbac.Require("quiz:edit-own")).
			Put("/quizzes/{quizID}", UpdateQuizHandler(d.Store))
		pr.With(rbac.Require("quiz:publish-own")).
			Post("/quizzes/{quizID}/publish", PublishQuizHandler(d.Store, d.Events))
		pr.With(rbac.RequireAny("quiz:delete-own", "content:delete")).
			Delete("/quizzes/{quizID}", DeleteQuizHandler(d.Store, d.Events))

		pr.With(rbac.RequireAny("response:view-own", "response:view-all")).
			Get("/quizzes/{quizID}/responses", ListResponsesHandler(d.Store))
		pr.With(rbac.RequireAny("response:view-own", "response:view-all")).
			Get("/responses/{responseID}", GetResponseHandler(d.Store))
		pr.With(rbac.RequireAny("response:export-own", "response:export-all")).
			Get("/quizzes/{quizID}/export", ExportResponsesHandler(d.Store))

		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", ChangePasswordHandler(d.DB))

		// Admin surface
		pr.With(rbac.Require("users:list")).
			Get("/admin/users", ListUsersHandler(d.DB))
		pr.With(rbac.Require("users:delete")).
			Delete("/admin/users", DeleteUserHandler(d.DB, d.Events))
		pr.With(rbac.Require("audit:search")).
			Get("/admin/audit", AuditSearchHandler(d.Events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	return r
}
