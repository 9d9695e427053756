package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/httputil"
)

// Recovery turns a handler panic into the storefront's standard error
// envelope instead of crashing the server. The panic value and stack are
// logged; the client only sees INTERNAL_ERROR.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					httputil.WriteError(w, r, apperrors.Internal(apperrors.ErrInternal), l)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
