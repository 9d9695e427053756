package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rafascerqueira/v-storefront/internal/authz"
	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/httputil"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
)

type contextKey string

const (
	sessionContextKey        contextKey = "backoffice_session"
	catalogSessionContextKey contextKey = "catalog_session"
)

// Authenticator resolves a session token into the live session record.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// CookieConfig controls the two cookies the storefront issues.
type CookieConfig struct {
	SessionName string
	CatalogName string
	Secure      bool
	SessionTTL  int // seconds
	CatalogTTL  int // seconds
}

// sessionFromContext returns the authenticated back-office session.
func sessionFromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return sess
}

// catalogSessionFromContext returns the anonymous catalog session ID.
func catalogSessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(catalogSessionContextKey).(string)
	return id
}

// SessionAuth guards back-office routes: it resolves the session cookie and
// stores the session on the request context. Requests without a valid
// session get a 401 and a cleared cookie.
func SessionAuth(auth Authenticator, cookies CookieConfig, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookies.SessionName)
			if err != nil || cookie.Value == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), log)
				return
			}

			sess, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				clearCookie(w, cookies.SessionName, cookies.Secure)
				httputil.WriteError(w, r, err, log)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			ctx = logger.WithSessionID(ctx, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards the admin area. Must run after SessionAuth.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFromContext(r.Context())
			if sess == nil {
				httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), log)
				return
			}
			if err := authz.Authorize(sess.User.Role, authz.AreaAdmin); err != nil {
				httputil.WriteError(w, r, err, log)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CatalogSession assigns an anonymous session ID to every storefront visitor.
// The ID keys the cart; a fresh visitor gets a new ID and cookie on the spot.
func CatalogSession(cookies CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(cookies.CatalogName); err == nil && cookie.Value != "" {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					id = cookie.Value
				}
			}
			if id == "" {
				id = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     cookies.CatalogName,
					Value:    id,
					Path:     "/",
					MaxAge:   cookies.CatalogTTL,
					HttpOnly: true,
					Secure:   cookies.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), catalogSessionContextKey, id)
			ctx = logger.WithSessionID(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, cookies CookieConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookies.SessionName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookies.SessionTTL,
		HttpOnly: true,
		Secure:   cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
