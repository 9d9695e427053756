package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/pkg/httputil"
)

// AdminProxy is the slice of the sales API client the admin area proxies.
type AdminProxy interface {
	AdminStats(ctx context.Context, sess *domain.Session) (json.RawMessage, error)
	AdminActiveUsers(ctx context.Context, sess *domain.Session) (json.RawMessage, error)
	AdminAccounts(ctx context.Context, sess *domain.Session, query url.Values) (json.RawMessage, error)
	AdminLogs(ctx context.Context, sess *domain.Session, query url.Values) (json.RawMessage, error)
	AdminHealth(ctx context.Context, sess *domain.Session) (json.RawMessage, error)
}

// AdminHandler proxies the admin dashboards. Routes run behind SessionAuth
// and RequireAdmin; payloads pass through untouched.
type AdminHandler struct {
	proxy  AdminProxy
	logger *slog.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(proxy AdminProxy, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		proxy:  proxy,
		logger: logger,
	}
}

// Stats handles GET /backoffice/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, func(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
		return h.proxy.AdminStats(ctx, sess)
	})
}

// ActiveUsers handles GET /backoffice/admin/active-users.
func (h *AdminHandler) ActiveUsers(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, func(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
		return h.proxy.AdminActiveUsers(ctx, sess)
	})
}

// Accounts handles GET /backoffice/admin/accounts.
func (h *AdminHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, func(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
		return h.proxy.AdminAccounts(ctx, sess, r.URL.Query())
	})
}

// Logs handles GET /backoffice/admin/logs.
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, func(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
		return h.proxy.AdminLogs(ctx, sess, r.URL.Query())
	})
}

// Health handles GET /backoffice/admin/health.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, func(ctx context.Context, sess *domain.Session) (json.RawMessage, error) {
		return h.proxy.AdminHealth(ctx, sess)
	})
}

func (h *AdminHandler) passthrough(w http.ResponseWriter, r *http.Request, fetch func(context.Context, *domain.Session) (json.RawMessage, error)) {
	sess := sessionFromContext(r.Context())
	raw, err := fetch(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}
