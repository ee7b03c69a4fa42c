// Package services – IdentityService
//
// This file adapts an external identity provider to the shape the session
// layer consumes: sign-in, sign-up and sign-out that either complete or fail
// with a fixed category error, plus the current identity observed from the
// provider's notifications.
//
// Provider error detail is logged at warn level and counted, but never
// returned: every failure collapses to ErrSignInFailed, ErrSignUpFailed or
// ErrSignOutFailed. Concurrent calls are forwarded as-is; the provider
// decides how to order them.
package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-study-session/internal/domain"
)

// IdentityProvider is the contract of the external identity collaborator.
//
// ObserveCurrentUser registers fn to receive the current user (nil when
// signed out) now and after every change. Delivery may happen on another
// goroutine. The returned function unsubscribes.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	SignUp(ctx context.Context, email, password string) (*domain.User, error)
	SignOut(ctx context.Context) error
	ObserveCurrentUser(fn func(*domain.User)) (unsubscribe func())
}

// IdentityService tracks the process-wide identity and wraps provider calls.
type IdentityService struct {
	Provider IdentityProvider
	Log      zerolog.Logger

	mu       sync.RWMutex
	state    domain.Identity
	watchers map[int]func(domain.Identity)
	nextID   int
	unsub    func()
}

// NewIdentityService subscribes to p. The identity reports Loading until p
// delivers its first state.
func NewIdentityService(p IdentityProvider, log zerolog.Logger) *IdentityService {
	s := &IdentityService{
		Provider: p,
		Log:      log,
		state:    domain.Identity{Loading: true},
		watchers: make(map[int]func(domain.Identity)),
	}
	unsub := p.ObserveCurrentUser(s.observe)

	s.mu.Lock()
	s.unsub = unsub
	s.mu.Unlock()
	return s
}

func (s *IdentityService) observe(u *domain.User) {
	var cp *domain.User
	if u != nil {
		v := *u
		cp = &v
	}
	id := domain.Identity{User: cp, Loading: false}

	s.mu.Lock()
	s.state = id
	ws := make([]func(domain.Identity), 0, len(s.watchers))
	for _, w := range s.watchers {
		ws = append(ws, w)
	}
	s.mu.Unlock()

	for _, w := range ws {
		w(copyIdentity(id))
	}
}

// Current returns the identity as last observed.
func (s *IdentityService) Current() domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIdentity(s.state)
}

// Watch calls fn after every observed identity change until the returned
// function is called.
func (s *IdentityService) Watch(fn func(domain.Identity)) (unwatch func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		})
	}
}

// SignIn authenticates with email and password.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	ctx, span := otel.Tracer("services/IdentityService").Start(ctx, "SignIn")
	defer span.End()

	u, err := s.Provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, s.fail(span, "sign_in", err, ErrSignInFailed)
	}
	return u, nil
}

// SignUp creates an account; on success the provider signs the user in.
func (s *IdentityService) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	ctx, span := otel.Tracer("services/IdentityService").Start(ctx, "SignUp")
	defer span.End()

	u, err := s.Provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, s.fail(span, "sign_up", err, ErrSignUpFailed)
	}
	return u, nil
}

// SignOut ends the current session.
func (s *IdentityService) SignOut(ctx context.Context) error {
	ctx, span := otel.Tracer("services/IdentityService").Start(ctx, "SignOut")
	defer span.End()

	if err := s.Provider.SignOut(ctx); err != nil {
		return s.fail(span, "sign_out", err, ErrSignOutFailed)
	}
	return nil
}

// Close unsubscribes from the provider. It is safe to call more than once.
func (s *IdentityService) Close() {
	s.mu.Lock()
	unsub := s.unsub
	s.unsub = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (s *IdentityService) fail(span trace.Span, op string, cause, category error) error {
	identityFailures.WithLabelValues(op).Inc()
	span.SetAttributes(attribute.String("identity.operation", op))
	span.SetStatus(codes.Error, category.Error())
	s.Log.Warn().Err(cause).Str("operation", op).Msg("identity provider failure")
	return category
}

func copyIdentity(id domain.Identity) domain.Identity {
	if id.User != nil {
		u := *id.User
		id.User = &u
	}
	return id
}
