package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/httputil"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
)

// gatedResources maps proxied collections to the plan resource that gates
// their creation. Collections absent from the map create without a gate.
var gatedResources = map[string]domain.ResourceType{
	"products":  domain.ResourceProducts,
	"orders":    domain.ResourceOrders,
	"customers": domain.ResourceCustomers,
}

// ResourceProxy is the slice of the sales API client the back office proxies
// through.
type ResourceProxy interface {
	ListResource(ctx context.Context, sess *domain.Session, resource string, query url.Values) (json.RawMessage, error)
	GetResource(ctx context.Context, sess *domain.Session, resource, id string) (json.RawMessage, error)
	CreateResource(ctx context.Context, sess *domain.Session, resource string, payload json.RawMessage) (json.RawMessage, error)
	UpdateResource(ctx context.Context, sess *domain.Session, resource, id string, payload json.RawMessage) (json.RawMessage, error)
	DeleteResource(ctx context.Context, sess *domain.Session, resource, id string) error
}

// UsageGate is the slice of the subscription service the back office uses.
type UsageGate interface {
	Gate(ctx context.Context, sess *domain.Session, resource domain.ResourceType) error
	Refresh(ctx context.Context, sess *domain.Session) (*domain.UsageSnapshot, error)
	Snapshot(ctx context.Context, sess *domain.Session) (*domain.UsageSnapshot, error)
	CheckLimit(ctx context.Context, sess *domain.Session, resource domain.ResourceType) (domain.LimitCheck, error)
}

// PlanCatalog fetches the available plans for the upgrade screen.
type PlanCatalog interface {
	Plans(ctx context.Context, sess *domain.Session) (json.RawMessage, error)
}

// BackOfficeHandler proxies CRUD screens to the sales API with the usage
// gate in front of creations.
type BackOfficeHandler struct {
	proxy  ResourceProxy
	gate   UsageGate
	plans  PlanCatalog
	logger *slog.Logger
}

// NewBackOfficeHandler creates a back-office handler.
func NewBackOfficeHandler(proxy ResourceProxy, gate UsageGate, plans PlanCatalog, logger *slog.Logger) *BackOfficeHandler {
	return &BackOfficeHandler{
		proxy:  proxy,
		gate:   gate,
		plans:  plans,
		logger: logger,
	}
}

// List handles GET /backoffice/{resource}.
func (h *BackOfficeHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	raw, err := h.proxy.ListResource(r.Context(), sess, chi.URLParam(r, "resource"), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

// Get handles GET /backoffice/{resource}/{id}.
func (h *BackOfficeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	raw, err := h.proxy.GetResource(r.Context(), sess, chi.URLParam(r, "resource"), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

// Create handles POST /backoffice/{resource}. Plan-limited collections go
// through the usage gate first; after a successful creation the cached
// snapshot is refreshed so the gate sees the new count.
func (h *BackOfficeHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	resource := chi.URLParam(r, "resource")

	if gated, ok := gatedResources[resource]; ok {
		if err := h.gate.Gate(r.Context(), sess, gated); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	payload, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	raw, err := h.proxy.CreateResource(r.Context(), sess, resource, payload)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if _, ok := gatedResources[resource]; ok {
		if _, err := h.gate.Refresh(r.Context(), sess); err != nil {
			logger.FromContext(r.Context()).Warn("usage refresh after create failed", "resource", resource, "error", err)
		}
	}

	writeRaw(w, http.StatusCreated, raw)
}

// Update handles PUT /backoffice/{resource}/{id}.
func (h *BackOfficeHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	payload, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	raw, err := h.proxy.UpdateResource(r.Context(), sess, chi.URLParam(r, "resource"), chi.URLParam(r, "id"), payload)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

// Delete handles DELETE /backoffice/{resource}/{id}. Deletions refresh the
// snapshot too so freed capacity reopens the gate promptly.
func (h *BackOfficeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	resource := chi.URLParam(r, "resource")

	if err := h.proxy.DeleteResource(r.Context(), sess, resource, chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if _, ok := gatedResources[resource]; ok {
		if _, err := h.gate.Refresh(r.Context(), sess); err != nil {
			logger.FromContext(r.Context()).Warn("usage refresh after delete failed", "resource", resource, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// Usage handles GET /backoffice/subscription/usage: the cached snapshot plus
// per-resource checks so the UI can paint warning banners.
func (h *BackOfficeHandler) Usage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	snapshot, err := h.gate.Snapshot(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	checks := make(map[domain.ResourceType]domain.LimitCheck, len(snapshot.Resources))
	for resource := range snapshot.Resources {
		check, err := h.gate.CheckLimit(r.Context(), sess, resource)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		checks[resource] = check
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"plan":       snapshot.Plan,
		"resources":  snapshot.Resources,
		"checks":     checks,
		"fetched_at": snapshot.FetchedAt,
	}})
}

// RefreshUsage handles POST /backoffice/subscription/usage/refresh.
func (h *BackOfficeHandler) RefreshUsage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	snapshot, err := h.gate.Refresh(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snapshot})
}

// Plans handles GET /backoffice/plans.
func (h *BackOfficeHandler) Plans(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	raw, err := h.plans.Plans(r.Context(), sess)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

func readBody(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, apperrors.InvalidInput("failed to read request body")
	}
	if len(body) == 0 || !json.Valid(body) {
		return nil, apperrors.InvalidInput("malformed JSON body")
	}
	return body, nil
}

// writeRaw passes an upstream payload through inside the standard envelope.
func writeRaw(w http.ResponseWriter, status int, raw json.RawMessage) {
	httputil.WriteJSON(w, status, httputil.Response{Data: raw})
}
