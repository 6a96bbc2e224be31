// Package auth registers users, checks their passwords and remembers who is
// logged in. The session only decides whether the wallet is shown; it does
// not scope the wallet's data.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/store"
)

var (
	// ErrInvalidCredentials is returned when the email is unknown or the
	// password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering an email already in use.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidRegistration is returned when registration fields fail
	// validation.
	ErrInvalidRegistration = errors.New("invalid registration")
)

// Messages shown for rejected attempts.
const (
	MsgInvalidCredentials  = "Invalid email or password."
	MsgInvalidRegistration = "Please enter a valid email and a password of at least 6 characters."
	MsgUserExists          = "An account with that email already exists."
)

// Demo account seeded into an empty user list.
const (
	DemoEmail    = "user@example.com"
	DemoPassword = "password123"
	demoName     = "Demo User"
)

// Registration is a new account request.
type Registration struct {
	Name     string `validate:"max=100"`
	Email    string `validate:"required,email"`
	Contact  string `validate:"max=32"`
	Password string `validate:"min=6,max=72"`
}

// Credentials is a login attempt.
type Credentials struct {
	Email    string
	Password string
}

type user struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Contact      string `json:"contact,omitempty"`
	PasswordHash string `json:"password_hash"`
}

// Gate manages accounts and the current session.
type Gate struct {
	store    store.Store
	cost     int
	demo     bool
	logger   *slog.Logger
	validate *validator.Validate

	mu sync.Mutex
}

// Option configures a Gate.
type Option func(*Gate)

// WithBcryptCost sets the bcrypt cost for new password hashes.
func WithBcryptCost(cost int) Option {
	return func(g *Gate) { g.cost = cost }
}

// WithDemoAccount controls whether the demo account is seeded.
func WithDemoAccount(enabled bool) Option {
	return func(g *Gate) { g.demo = enabled }
}

// WithLogger sets the gate's logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) { g.logger = l }
}

// New returns a Gate over st, seeding the demo account when enabled and no
// users exist yet.
func New(st store.Store, opts ...Option) (*Gate, error) {
	g := &Gate{
		store:    st,
		cost:     bcrypt.DefaultCost,
		demo:     true,
		logger:   slog.Default(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "auth")

	if g.demo {
		if err := g.seedDemo(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Gate) seedDemo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	users, err := g.loadUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), g.cost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	users = append(users, user{Name: demoName, Email: DemoEmail, PasswordHash: string(hash)})
	if err := g.saveUsers(users); err != nil {
		return err
	}
	g.logger.Info("demo account seeded", "email", DemoEmail)
	return nil
}

// Register creates an account and logs it in.
func (g *Gate) Register(reg Registration) (model.Session, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = normalizeEmail(reg.Email)
	reg.Contact = strings.TrimSpace(reg.Contact)

	if err := g.validate.Struct(reg); err != nil {
		return model.Session{}, fmt.Errorf("%w: %s", ErrInvalidRegistration, describe(err))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	users, err := g.loadUsers()
	if err != nil {
		return model.Session{}, err
	}
	if findUser(users, reg.Email) >= 0 {
		return model.Session{}, fmt.Errorf("%w: %s", ErrUserExists, reg.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), g.cost)
	if err != nil {
		return model.Session{}, fmt.Errorf("hashing password: %w", err)
	}
	users = append(users, user{
		Name:         reg.Name,
		Email:        reg.Email,
		Contact:      reg.Contact,
		PasswordHash: string(hash),
	})
	if err := g.saveUsers(users); err != nil {
		return model.Session{}, err
	}

	sess := model.Session{Email: reg.Email, Name: reg.Name}
	if err := g.saveSession(sess); err != nil {
		return model.Session{}, err
	}
	g.logger.Info("user registered", "email", reg.Email)
	return sess, nil
}

// Authenticate checks creds and records the session on success.
func (g *Gate) Authenticate(creds Credentials) (model.Session, error) {
	email := normalizeEmail(creds.Email)

	g.mu.Lock()
	defer g.mu.Unlock()

	users, err := g.loadUsers()
	if err != nil {
		return model.Session{}, err
	}
	i := findUser(users, email)
	if i < 0 {
		g.logger.Info("login failed", "email", email, "reason", "unknown user")
		return model.Session{}, fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	}
	u := users[i]
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)) != nil {
		g.logger.Info("login failed", "email", email, "reason", "password mismatch")
		return model.Session{}, fmt.Errorf("%w: invalid password", ErrInvalidCredentials)
	}

	sess := model.Session{Email: u.Email, Name: u.Name}
	if err := g.saveSession(sess); err != nil {
		return model.Session{}, err
	}
	g.logger.Info("logged in", "email", u.Email)
	return sess, nil
}

// CurrentSession returns the logged-in user, if any. An unreadable session
// is treated as logged out.
func (g *Gate) CurrentSession() (model.Session, bool) {
	raw, ok, err := g.store.Get(store.KeyCurrentUser)
	if err != nil {
		g.logger.Warn("reading session", "error", err)
		return model.Session{}, false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return model.Session{}, false
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Email == "" {
		g.logger.Warn("ignoring unreadable session", "error", err)
		return model.Session{}, false
	}
	return sess, true
}

// Logout forgets the current session.
func (g *Gate) Logout() error {
	if err := g.store.Remove(store.KeyCurrentUser); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	g.logger.Info("logged out")
	return nil
}

// UserMessage returns the text to show a user for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrInvalidRegistration):
		return MsgInvalidRegistration
	case errors.Is(err, ErrUserExists):
		return MsgUserExists
	default:
		return err.Error()
	}
}

func (g *Gate) loadUsers() ([]user, error) {
	raw, ok, err := g.store.Get(store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var users []user
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

func (g *Gate) saveUsers(users []user) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encoding users: %w", err)
	}
	if err := g.store.Set(store.KeyUsers, string(data)); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

func (g *Gate) saveSession(sess model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := g.store.Set(store.KeyCurrentUser, string(data)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func findUser(users []user, email string) int {
	for i, u := range users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// describe lists the failing fields of a validation error.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
