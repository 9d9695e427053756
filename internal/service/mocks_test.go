package service

import (
	"context"
	"net/url"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rafascerqueira/v-storefront/internal/apiclient"
	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

// mockCatalog is a testify mock over the catalog API slice.
type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Products(ctx context.Context, query url.Values) ([]domain.CatalogProduct, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]domain.CatalogProduct), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) Product(ctx context.Context, id string) (*domain.CatalogProduct, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.CatalogProduct), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) CustomerByDocument(ctx context.Context, document string) (*domain.CustomerProfile, error) {
	args := m.Called(ctx, document)
	if v := args.Get(0); v != nil {
		return v.(*domain.CustomerProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) SubmitOrder(ctx context.Context, order *domain.OrderRequest, idempotencyKey string) (*domain.OrderConfirmation, error) {
	args := m.Called(ctx, order, idempotencyKey)
	if v := args.Get(0); v != nil {
		return v.(*domain.OrderConfirmation), args.Error(1)
	}
	return nil, args.Error(1)
}

// memCartRepo is an in-memory cart repository.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]domain.Cart)}
}

func (r *memCartRepo) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}
	copied := cart
	return &copied, nil
}

func (r *memCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.ID] = *cart
	return nil
}

func (r *memCartRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

// memSessionRepo is an in-memory session repository.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *memSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}
	copied := sess
	return &copied, nil
}

func (r *memSessionRepo) Save(_ context.Context, sess *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = *sess
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// memUsageRepo is an in-memory usage snapshot repository.
type memUsageRepo struct {
	mu        sync.Mutex
	snapshots map[string]domain.UsageSnapshot
}

func newMemUsageRepo() *memUsageRepo {
	return &memUsageRepo{snapshots: make(map[string]domain.UsageSnapshot)}
}

func (r *memUsageRepo) Get(_ context.Context, userID string) (*domain.UsageSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.snapshots[userID]
	if !ok {
		return nil, apperrors.NotFound("usage snapshot", userID)
	}
	copied := snap
	return &copied, nil
}

func (r *memUsageRepo) Save(_ context.Context, userID string, snapshot *domain.UsageSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[userID] = *snapshot
	return nil
}

func (r *memUsageRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.snapshots, userID)
	return nil
}

// recordingEvents captures emitted events for assertions.
type recordingEvents struct {
	mu              sync.Mutex
	ordersSubmitted []string
	cartsCleared    []string
	limitWarnings   []domain.LimitCheck
	limitsReached   []domain.ResourceType
	sessionsStarted []string
	sessionsRevoked []string
}

func (e *recordingEvents) OrderSubmitted(_ context.Context, sessionID string, _ *domain.OrderConfirmation, _ int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ordersSubmitted = append(e.ordersSubmitted, sessionID)
}

func (e *recordingEvents) CartCleared(_ context.Context, sessionID string, _ int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cartsCleared = append(e.cartsCleared, sessionID)
}

func (e *recordingEvents) LimitWarning(_ context.Context, _ string, check domain.LimitCheck) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limitWarnings = append(e.limitWarnings, check)
}

func (e *recordingEvents) LimitReached(_ context.Context, _ string, resource domain.ResourceType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limitsReached = append(e.limitsReached, resource)
}

func (e *recordingEvents) SessionStarted(_ context.Context, sessionID, _ string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sessionsStarted = append(e.sessionsStarted, sessionID)
}

func (e *recordingEvents) SessionRevoked(_ context.Context, sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sessionsRevoked = append(e.sessionsRevoked, sessionID)
}

// mockSalesAuth is a testify mock over the sales API auth slice.
type mockSalesAuth struct {
	mock.Mock
}

func (m *mockSalesAuth) Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if v := args.Get(0); v != nil {
		return v.(*apiclient.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesAuth) Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.LoginResult, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*apiclient.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesAuth) Me(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	args := m.Called(ctx, sess)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesAuth) Logout(ctx context.Context, sess *domain.Session) {
	m.Called(ctx, sess)
}

// mockUsageFetcher is a testify mock over the subscription info endpoint.
type mockUsageFetcher struct {
	mock.Mock
}

func (m *mockUsageFetcher) SubscriptionInfo(ctx context.Context, sess *domain.Session) (*domain.UsageSnapshot, error) {
	args := m.Called(ctx, sess)
	if v := args.Get(0); v != nil {
		return v.(*domain.UsageSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}
