package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rafascerqueira/v-storefront/internal/apiclient"
	"github.com/rafascerqueira/v-storefront/internal/authz"
	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/pkg/httputil"
	"github.com/rafascerqueira/v-storefront/pkg/validator"
)

// AuthUseCase is the slice of the auth service the handler calls.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (string, *domain.Session, error)
	Logout(ctx context.Context, sess *domain.Session)
}

// AuthHandler serves the back-office authentication endpoints.
type AuthHandler struct {
	auth    AuthUseCase
	cookies CookieConfig
	logger  *slog.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(auth AuthUseCase, cookies CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		cookies: cookies,
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User         domain.User `json:"user"`
	LandingRoute string      `json:"landing_route"`
}

// Login handles POST /backoffice/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token, sess, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	setSessionCookie(w, h.cookies, token)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sessionResponse{
		User:         sess.User,
		LandingRoute: authz.LandingRoute(sess.User.Role),
	}})
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Company  string `json:"company"`
}

// Register handles POST /backoffice/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token, sess, err := h.auth.Register(r.Context(), apiclient.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Company:  req.Company,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Without auto-login the client is sent to the sign-in screen.
	if sess == nil {
		httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{
			"landing_route": "/login",
		}})
		return
	}

	setSessionCookie(w, h.cookies, token)
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: sessionResponse{
		User:         sess.User,
		LandingRoute: authz.LandingRoute(sess.User.Role),
	}})
}

// Logout handles POST /backoffice/auth/logout. Runs behind SessionAuth.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFromContext(r.Context()); sess != nil {
		h.auth.Logout(r.Context(), sess)
	}
	clearCookie(w, h.cookies.SessionName, h.cookies.Secure)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"landing_route": "/login",
	}})
}

// Me handles GET /backoffice/auth/me. Runs behind SessionAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sessionResponse{
		User:         sess.User,
		LandingRoute: authz.LandingRoute(sess.User.Role),
	}})
}
