// Package session holds the client's record of the authenticated user and
// bearer token, including the navigation-gating flags. It is the single
// shared instance the rest of the client reads; all mutation goes through
// named methods.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deckpilot/deckpilot/internal/client/api"
	"github.com/deckpilot/deckpilot/internal/client/models"
	"github.com/deckpilot/deckpilot/internal/client/repositories/state"
	"github.com/deckpilot/deckpilot/internal/common"
	"github.com/deckpilot/deckpilot/internal/logging"
)

// State is the session lifecycle state.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// API is the auth surface of the remote server used by the session.
// *api.HTTPClient satisfies it.
type API interface {
	Login(ctx context.Context, username, password string, rememberMe bool) (*api.LoginResult, error)
	Register(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	RegistrationAllowed(ctx context.Context) (bool, error)
	SendCode(ctx context.Context, phone string) error
	BindPhone(ctx context.Context, phone, code string) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// Session is the process-wide auth state.
type Session struct {
	api  API
	repo state.Repository
	log  logging.Logger

	mu      sync.Mutex
	state   State
	token   string
	user    *models.User
	lastErr string
}

func New(a API, repo state.Repository, log logging.Logger) *Session {
	return &Session{api: a, repo: repo, log: log, state: StateAnonymous}
}

// Token returns the current bearer token, or "". It satisfies
// api.TokenProvider so the HTTP client can be wired directly to the session.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns a copy of the current profile, or nil when anonymous.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) MustChangePassword() bool {
	u := s.User()
	return u != nil && u.MustChangePassword
}

func (s *Session) NeedPhoneVerification() bool {
	u := s.User()
	return u != nil && u.NeedPhoneVerification
}

// LastError returns the message of the most recent failed auth operation.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Login authenticates and persists the session. A response missing the
// token or user leaves the session unauthenticated with an error recorded.
func (s *Session) Login(ctx context.Context, username, password string, rememberMe bool) error {
	s.setState(StateAuthenticating)

	res, err := s.api.Login(ctx, username, password, rememberMe)
	if err != nil {
		s.fail(fmt.Sprintf("login failed: %v", err))
		return err
	}
	if res == nil || res.Token == "" || res.User == nil {
		err := fmt.Errorf("%w: login response missing token or user", common.ErrValidation)
		s.fail(err.Error())
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = res.Token
	s.user = res.User
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
	return nil
}

// Register creates an account. The password rule is checked locally first.
func (s *Session) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := common.ValidatePassword(password); err != nil {
		return nil, err
	}
	return s.api.Register(ctx, username, password)
}

// RegistrationAllowed proxies the public registration switch.
func (s *Session) RegistrationAllowed(ctx context.Context) (bool, error) {
	return s.api.RegistrationAllowed(ctx)
}

// Load restores persisted fields and revalidates them against the server.
// Called once at app start.
func (s *Session) Load(ctx context.Context) error {
	if s.repo != nil {
		token, err := s.repo.Get(ctx, state.KeyToken)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrNoLocalState, err)
		}
		rawUser, err := s.repo.Get(ctx, state.KeyUser)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrNoLocalState, err)
		}
		authed, err := s.repo.Get(ctx, state.KeyIsAuthenticated)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrNoLocalState, err)
		}

		if len(token) > 0 && string(authed) == "1" {
			var u models.User
			if len(rawUser) > 0 {
				if err := json.Unmarshal(rawUser, &u); err != nil {
					s.log.Warn(ctx, "discarding corrupt persisted profile", "error", err)
				}
			}
			s.mu.Lock()
			s.token = string(token)
			if u.ID != "" {
				s.user = &u
			}
			s.state = StateAuthenticated
			s.mu.Unlock()
		}
	}

	return s.CheckAuth(ctx)
}

// CheckAuth is the idempotent "who am I" probe. A 401 (or a locally expired
// token) silently clears the session; success refreshes the gating flags
// from the latest server-known state.
func (s *Session) CheckAuth(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		s.clear(ctx)
		return nil
	}

	if tokenExpired(token) {
		s.log.Info(ctx, "stored token expired, logging out")
		s.clear(ctx)
		return nil
	}

	u, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			s.log.Info(ctx, "session rejected by server, logging out")
			s.clear(ctx)
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.user = u
	s.state = StateAuthenticated
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
	return nil
}

// Logout notifies the server best-effort and unconditionally clears local
// state. Local teardown never depends on server reachability.
func (s *Session) Logout(ctx context.Context) {
	if s.IsAuthenticated() {
		if err := s.api.Logout(ctx); err != nil {
			s.log.Warn(ctx, "server logout failed", "error", err)
		}
	}
	s.clear(ctx)
}

// SendCode requests an SMS verification code.
func (s *Session) SendCode(ctx context.Context, phone string) error {
	return s.api.SendCode(ctx, phone)
}

// BindPhone verifies and attaches a phone number. On success the
// need-phone-verification gate opens and the profile reflects the masked
// number returned by the server.
func (s *Session) BindPhone(ctx context.Context, phone, code string) error {
	u, err := s.api.BindPhone(ctx, phone, code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if u != nil {
		s.user = u
	} else if s.user != nil {
		s.user.Phone = common.MaskPhone(phone)
		s.user.NeedPhoneVerification = false
	}
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
	return nil
}

// ChangePassword replaces the password; success opens the
// must-change-password gate.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := common.ValidatePassword(newPassword); err != nil {
		return err
	}
	if err := s.api.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}

	s.mu.Lock()
	if s.user != nil {
		s.user.MustChangePassword = false
	}
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
	return nil
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) fail(msg string) {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.lastErr = msg
	s.mu.Unlock()
}

// clear resets token, user and the authenticated flag to their initial
// values, locally and in the persisted state. The last-open project id is
// left alone.
func (s *Session) clear(ctx context.Context) {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.repo == nil {
		return
	}
	for _, key := range []string{state.KeyToken, state.KeyUser, state.KeyIsAuthenticated} {
		if err := s.repo.Delete(ctx, key); err != nil {
			s.log.Warn(ctx, "failed to clear persisted session field", "key", key, "error", err)
		}
	}
}

func (s *Session) persist(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	s.mu.Lock()
	token := s.token
	user := s.user
	authed := s.state == StateAuthenticated
	s.mu.Unlock()

	flag := "0"
	if authed {
		flag = "1"
	}
	values := map[string][]byte{
		state.KeyToken:           []byte(token),
		state.KeyIsAuthenticated: []byte(flag),
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return err
		}
		values[state.KeyUser] = raw
	}
	return s.repo.SetMany(ctx, values)
}

// tokenExpired inspects the JWT's exp claim without verifying the
// signature; verification is the server's job. Opaque tokens and tokens
// without exp defer to the server check.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
