// Package identity provides LocalProvider, an email/password identity
// provider backed by the accounts table. It keeps one process-wide current
// user and notifies observers asynchronously, in order, from a single
// dispatcher goroutine that Close stops.
package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-study-session/internal/domain"
	"github.com/tbourn/go-study-session/internal/repo"
)

var (
	// ErrInvalidCredentials means the email is unknown or the password does
	// not match. The two cases are not distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailInUse is returned by SignUp for an already registered email.
	ErrEmailInUse = errors.New("email already registered")

	// ErrInvalidInput wraps validation failures of email or password.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClosed is returned by operations on a closed provider.
	ErrClosed = errors.New("identity provider closed")
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

type credentials struct {
	Email    string `validate:"required,email,max=320"`
	Password string `validate:"required,min=6,max=72"`
}

// Option configures a LocalProvider.
type Option func(*LocalProvider)

// WithBcryptCost sets the hashing cost. Values outside bcrypt's range are
// ignored.
func WithBcryptCost(cost int) Option {
	return func(p *LocalProvider) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			p.cost = cost
		}
	}
}

// WithClock overrides the time source used for sign-in timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *LocalProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// LocalProvider signs users in against the accounts table.
type LocalProvider struct {
	db       *gorm.DB
	cost     int
	validate *validator.Validate
	now      func() time.Time

	mu      sync.Mutex
	current *domain.User
	subs    map[uint64]func(*domain.User)
	nextSub uint64
	queue   []delivery
	closed  bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// delivery is one queued notification. to == 0 broadcasts.
type delivery struct {
	user *domain.User
	to   uint64
}

// NewLocalProvider starts the notification dispatcher. Call Close to stop it.
func NewLocalProvider(db *gorm.DB, opts ...Option) *LocalProvider {
	p := &LocalProvider{
		db:       db,
		cost:     bcrypt.DefaultCost,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      func() time.Time { return time.Now().UTC() },
		subs:     make(map[uint64]func(*domain.User)),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// SignIn checks the password against the stored hash and makes the account
// the current user.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	acc, err := repo.GetAccountByEmail(ctx, p.db, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := repo.TouchSignIn(ctx, p.db, acc.ID, p.now()); err != nil {
		return nil, err
	}
	return p.setCurrent(acc.User())
}

// SignUp registers a new account and signs it in.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	in := credentials{Email: normalizeEmail(email), Password: password}
	if err := p.validate.StructCtx(ctx, in); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, err
	}
	acc, err := repo.CreateAccount(ctx, p.db, in.Email, string(hash))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrEmailInUse
	}
	if err != nil {
		return nil, err
	}
	if err := repo.TouchSignIn(ctx, p.db, acc.ID, p.now()); err != nil {
		return nil, err
	}
	return p.setCurrent(acc.User())
}

// SignOut clears the current user. Signing out while signed out succeeds.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.setCurrent(nil)
	return err
}

// CurrentUser returns the signed-in user, or nil.
func (p *LocalProvider) CurrentUser() *domain.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneUser(p.current)
}

// ObserveCurrentUser registers fn. fn first receives the current user, then
// every change, on the dispatcher goroutine. Observers registered after
// Close are never called.
func (p *LocalProvider) ObserveCurrentUser(fn func(*domain.User)) (unsubscribe func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return func() {}
	}
	p.nextSub++
	id := p.nextSub
	p.subs[id] = fn
	p.queue = append(p.queue, delivery{user: cloneUser(p.current), to: id})
	p.mu.Unlock()
	p.signal()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

// Close stops the dispatcher and drops pending notifications.
func (p *LocalProvider) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.queue = nil
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
	return nil
}

func (p *LocalProvider) setCurrent(u *domain.User) (*domain.User, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	p.current = cloneUser(u)
	p.queue = append(p.queue, delivery{user: cloneUser(u)})
	p.mu.Unlock()
	p.signal()
	return cloneUser(u), nil
}

func (p *LocalProvider) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *LocalProvider) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}
		for {
			p.mu.Lock()
			if len(p.queue) == 0 || p.closed {
				p.mu.Unlock()
				break
			}
			d := p.queue[0]
			p.queue = p.queue[1:]
			var fns []func(*domain.User)
			if d.to != 0 {
				if fn, ok := p.subs[d.to]; ok {
					fns = append(fns, fn)
				}
			} else {
				for _, fn := range p.subs {
					fns = append(fns, fn)
				}
			}
			p.mu.Unlock()

			for _, fn := range fns {
				fn(cloneUser(d.user))
			}
		}
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}
