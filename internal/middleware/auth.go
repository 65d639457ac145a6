// Package middleware содержит проверку сессии для защищенных маршрутов.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/internal/auth"
	"github.com/BuzzLyutic/task-tracker-api/pkg/respond"
)

var ErrMissingToken = errors.New("authentication required")

type ctxKey struct{}

// TokenVerifier - то, что нужно шлюзу от сервиса токенов
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate проверяет токен из cookie на каждом запросе, кроме публичных путей.
// Решение не кэшируется: каждый запрос проверяется заново.
func Authenticate(tokens TokenVerifier, cookieName string, logger *zap.Logger, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[normalizePath(r.URL.Path)]; ok {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				respond.Error(w, r, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				logger.Debug("session rejected", zap.String("path", r.URL.Path), zap.Error(err))
				respond.Error(w, r, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// normalizePath убирает завершающий слэш: /login/ и /login - один и тот же маршрут
func normalizePath(p string) string {
	if len(p) > 1 {
		return strings.TrimRight(p, "/")
	}
	return p
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID возвращает id пользователя, проверенный шлюзом
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}
