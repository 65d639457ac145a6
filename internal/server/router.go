package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/internal/handler"
	"github.com/BuzzLyutic/task-tracker-api/internal/middleware"
	"github.com/BuzzLyutic/task-tracker-api/pkg/respond"
)

// PublicPaths не требуют сессии
var PublicPaths = []string{"/register", "/login", "/health"}

type Config struct {
	CookieName     string
	RequestTimeout time.Duration
	AccessLog      bool
}

func NewRouter(cfg Config, tasks *handler.TaskHandler, users *handler.AuthHandler, tokens middleware.TokenVerifier, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Authenticate(tokens, cfg.CookieName, logger, PublicPaths...))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/register", users.Register)
	r.Post("/login", users.Login)

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", tasks.Create)
		r.Get("/", tasks.List)
		r.Get("/{id}", tasks.Get)
		r.Put("/{id}", tasks.Update)
		r.Delete("/{id}", tasks.Delete)
	})

	return r
}
