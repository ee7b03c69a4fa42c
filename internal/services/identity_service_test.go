package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-study-session/internal/domain"
)

// ----- Fake provider -----

type fakeProvider struct {
	mu   sync.Mutex
	subs map[int]func(*domain.User)
	next int

	signInErr  error
	signUpErr  error
	signOutErr error

	// deliverOnObserve mimics providers that report the initial state
	// synchronously.
	deliverOnObserve bool
	current          *domain.User
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{subs: map[int]func(*domain.User){}}
}

func (f *fakeProvider) SignIn(_ context.Context, email, _ string) (*domain.User, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	u := &domain.User{ID: "u1", Email: email}
	f.emit(u)
	return u, nil
}

func (f *fakeProvider) SignUp(_ context.Context, email, _ string) (*domain.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	u := &domain.User{ID: "u2", Email: email}
	f.emit(u)
	return u, nil
}

func (f *fakeProvider) SignOut(context.Context) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.emit(nil)
	return nil
}

func (f *fakeProvider) ObserveCurrentUser(fn func(*domain.User)) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = fn
	cur := f.current
	f.mu.Unlock()
	if f.deliverOnObserve {
		fn(cur)
	}
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *fakeProvider) emit(u *domain.User) {
	f.mu.Lock()
	f.current = u
	fns := make([]func(*domain.User), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}

func (f *fakeProvider) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// ----- Tests -----

func TestIdentity_LoadingUntilFirstState(t *testing.T) {
	p := newFakeProvider()
	s := NewIdentityService(p, zerolog.Nop())
	defer s.Close()

	if id := s.Current(); !id.Loading || id.User != nil {
		t.Fatalf("initial identity = %+v; want loading", id)
	}
	p.emit(nil)
	if id := s.Current(); id.Loading || id.User != nil {
		t.Fatalf("after first state = %+v; want signed out, not loading", id)
	}
}

func TestIdentity_SynchronousInitialDelivery(t *testing.T) {
	p := newFakeProvider()
	p.deliverOnObserve = true
	p.current = &domain.User{ID: "x", Email: "x@example.com"}

	s := NewIdentityService(p, zerolog.Nop())
	defer s.Close()

	id := s.Current()
	if id.Loading || id.User == nil || id.User.Email != "x@example.com" {
		t.Fatalf("identity = %+v", id)
	}
}

func TestIdentity_SignInUpOutTracksObservedUser(t *testing.T) {
	p := newFakeProvider()
	s := NewIdentityService(p, zerolog.Nop())
	defer s.Close()
	ctx := context.Background()

	u, err := s.SignIn(ctx, "a@example.com", "secret1")
	if err != nil || u.Email != "a@example.com" {
		t.Fatalf("SignIn = (%+v, %v)", u, err)
	}
	if id := s.Current(); id.User == nil || id.User.Email != "a@example.com" {
		t.Fatalf("after sign-in = %+v", id)
	}

	if _, err := s.SignUp(ctx, "b@example.com", "secret1"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if id := s.Current(); id.User == nil || id.User.Email != "b@example.com" {
		t.Fatalf("after sign-up = %+v", id)
	}

	if err := s.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if id := s.Current(); id.User != nil {
		t.Fatalf("after sign-out = %+v", id)
	}
}

func TestIdentity_FailuresCollapseToCategories(t *testing.T) {
	raw := errors.New("auth/wrong-password: secret provider detail")
	p := newFakeProvider()
	p.signInErr, p.signUpErr, p.signOutErr = raw, raw, raw

	var logs bytes.Buffer
	s := NewIdentityService(p, zerolog.New(&logs))
	defer s.Close()
	ctx := context.Background()

	base := testutil.ToFloat64(identityFailures.WithLabelValues("sign_in"))

	_, err := s.SignIn(ctx, "a@example.com", "x")
	if err != ErrSignInFailed {
		t.Fatalf("SignIn err = %v; want ErrSignInFailed", err)
	}
	_, err = s.SignUp(ctx, "a@example.com", "x")
	if err != ErrSignUpFailed {
		t.Fatalf("SignUp err = %v; want ErrSignUpFailed", err)
	}
	err = s.SignOut(ctx)
	if err != ErrSignOutFailed {
		t.Fatalf("SignOut err = %v; want ErrSignOutFailed", err)
	}

	for _, e := range []error{ErrSignInFailed, ErrSignUpFailed, ErrSignOutFailed} {
		if strings.Contains(e.Error(), "wrong-password") || errors.Is(e, raw) {
			t.Fatalf("category %q leaks provider detail", e)
		}
	}

	if got := testutil.ToFloat64(identityFailures.WithLabelValues("sign_in")); got != base+1 {
		t.Fatalf("sign_in failures = %v; want %v", got, base+1)
	}
	// Detail goes to the log, not to the caller.
	out := logs.String()
	if !strings.Contains(out, "secret provider detail") || !strings.Contains(out, `"operation":"sign_up"`) {
		t.Fatalf("expected provider detail in logs, got %s", out)
	}
}

func TestIdentity_CategoryMessages(t *testing.T) {
	if !strings.HasPrefix(ErrSignInFailed.Error(), "Sign in failed.") {
		t.Fatalf("sign-in message = %q", ErrSignInFailed)
	}
	if !strings.Contains(ErrSignUpFailed.Error(), "at least 6 characters") {
		t.Fatalf("sign-up message = %q", ErrSignUpFailed)
	}
}

func TestIdentity_WatchAndClose(t *testing.T) {
	p := newFakeProvider()
	s := NewIdentityService(p, zerolog.Nop())

	var seen []domain.Identity
	unwatch := s.Watch(func(id domain.Identity) { seen = append(seen, id) })

	p.emit(&domain.User{ID: "1", Email: "w@example.com"})
	unwatch()
	unwatch() // idempotent
	p.emit(nil)

	if len(seen) != 1 || seen[0].User == nil || seen[0].User.Email != "w@example.com" {
		t.Fatalf("watch saw %+v", seen)
	}

	if p.subscribers() != 1 {
		t.Fatalf("expected 1 provider subscriber")
	}
	s.Close()
	s.Close()
	if p.subscribers() != 0 {
		t.Fatalf("Close should unsubscribe from the provider")
	}
}

func TestIdentity_CurrentReturnsCopy(t *testing.T) {
	p := newFakeProvider()
	s := NewIdentityService(p, zerolog.Nop())
	defer s.Close()

	p.emit(&domain.User{ID: "1", Email: "orig@example.com"})
	id := s.Current()
	id.User.Email = "mutated"
	if s.Current().User.Email != "orig@example.com" {
		t.Fatalf("Current leaked internal state")
	}
}
