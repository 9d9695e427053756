package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rafascerqueira/v-storefront/internal/apiclient"
	"github.com/rafascerqueira/v-storefront/internal/domain"
	"github.com/rafascerqueira/v-storefront/internal/repository"
	"github.com/rafascerqueira/v-storefront/internal/session"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
	"github.com/rafascerqueira/v-storefront/pkg/logger"
)

// SalesAuth is the slice of the sales API client the auth service uses.
type SalesAuth interface {
	Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.LoginResult, error)
	Me(ctx context.Context, sess *domain.Session) (*domain.User, error)
	Logout(ctx context.Context, sess *domain.Session)
}

// SessionEvents is the slice of the event publisher auth emits on.
type SessionEvents interface {
	SessionStarted(ctx context.Context, sessionID, userID string)
	SessionRevoked(ctx context.Context, sessionID string)
}

// AuthService owns the back-office session lifecycle: login creates the
// server-side session record holding the upstream credential pair, logout
// tears everything down on both sides.
type AuthService struct {
	api      SalesAuth
	sessions repository.SessionRepository
	usage    repository.UsageRepository
	tokens   *session.TokenManager
	events   SessionEvents
	ttl      time.Duration
}

// NewAuthService creates an auth service.
func NewAuthService(api SalesAuth, sessions repository.SessionRepository, usage repository.UsageRepository, tokens *session.TokenManager, events SessionEvents, ttl time.Duration) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		usage:    usage,
		tokens:   tokens,
		events:   events,
		ttl:      ttl,
	}
}

// Login authenticates against the sales API and opens a session. The signed
// session token goes into the browser cookie; the upstream tokens never
// leave the server.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	return s.openSession(ctx, result)
}

// Register creates an account. When the API auto-logs-in (returns tokens) a
// session is opened immediately; otherwise the caller sends the user to the
// login screen and both return values are empty.
func (s *AuthService) Register(ctx context.Context, req apiclient.RegisterRequest) (string, *domain.Session, error) {
	result, err := s.api.Register(ctx, req)
	if err != nil {
		return "", nil, err
	}
	if result.AccessToken == "" {
		return "", nil, nil
	}
	return s.openSession(ctx, result)
}

func (s *AuthService) openSession(ctx context.Context, result *apiclient.LoginResult) (string, *domain.Session, error) {
	now := nowUTC()
	sess := &domain.Session{
		ID:           uuid.New().String(),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	// Some deployments omit the user from the login response; fetch it so
	// the session always knows its role.
	if sess.User.ID == "" {
		user, err := s.api.Me(ctx, sess)
		if err != nil {
			return "", nil, err
		}
		sess.User = *user
	}
	if !sess.User.Role.Valid() {
		sess.User.Role = domain.RoleSeller
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(sess.ID)
	if err != nil {
		return "", nil, err
	}

	if s.events != nil {
		s.events.SessionStarted(ctx, sess.ID, sess.User.ID)
	}
	return token, sess, nil
}

// Authenticate resolves a session token into the live session record.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("session expired, please sign in again")
		}
		return nil, err
	}

	if sess.Expired() {
		s.discard(ctx, sess)
		return nil, apperrors.Unauthorized("session expired, please sign in again")
	}
	return sess, nil
}

// Logout revokes the upstream tokens (best effort) and removes all local
// state for the session.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) {
	s.api.Logout(ctx, sess)
	s.discard(ctx, sess)
}

func (s *AuthService) discard(ctx context.Context, sess *domain.Session) {
	log := logger.FromContext(ctx)
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		log.Error("failed to delete session", "session_id", sess.ID, "error", err)
	}
	if err := s.usage.Delete(ctx, sess.User.ID); err != nil {
		log.Error("failed to delete usage snapshot", "user_id", sess.User.ID, "error", err)
	}
	if s.events != nil {
		s.events.SessionRevoked(ctx, sess.ID)
	}
}
