package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckpilot/deckpilot/internal/client/api"
	"github.com/deckpilot/deckpilot/internal/client/models"
	"github.com/deckpilot/deckpilot/internal/client/repositories/state"
	"github.com/deckpilot/deckpilot/internal/common"
	"github.com/deckpilot/deckpilot/internal/logging"
)

type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string][]byte{}}
}

func (r *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	return r.data[key], nil
}

func (r *memRepo) Set(_ context.Context, key string, value []byte) error {
	r.data[key] = value
	return nil
}

func (r *memRepo) SetMany(_ context.Context, values map[string][]byte) error {
	for key, value := range values {
		r.data[key] = value
	}
	return nil
}

func (r *memRepo) Delete(_ context.Context, key string) error {
	delete(r.data, key)
	return nil
}

func (r *memRepo) Clear(_ context.Context) error {
	r.data = map[string][]byte{}
	return nil
}

type fakeAPI struct {
	loginRes   *api.LoginResult
	loginErr   error
	meRes      *models.User
	meErr      error
	meCalls    int
	logoutErr  error
	logoutN    int
	bindRes    *models.User
	bindErr    error
	changeErr  error
	regAllowed bool
}

func (f *fakeAPI) Login(context.Context, string, string, bool) (*api.LoginResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, username, _ string) (*models.User, error) {
	return &models.User{ID: "u1", Username: username}, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutN++
	return f.logoutErr
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	f.meCalls++
	return f.meRes, f.meErr
}

func (f *fakeAPI) RegistrationAllowed(context.Context) (bool, error) {
	return f.regAllowed, nil
}

func (f *fakeAPI) SendCode(context.Context, string) error { return nil }

func (f *fakeAPI) BindPhone(context.Context, string, string) (*models.User, error) {
	return f.bindRes, f.bindErr
}

func (f *fakeAPI) ChangePassword(context.Context, string, string) error {
	return f.changeErr
}

func newSession(f *fakeAPI, repo state.Repository) *Session {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(f, repo, log)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	f := &fakeAPI{loginRes: &api.LoginResult{
		Token: "tok-1",
		User:  &models.User{ID: "u1", Username: "alice", MustChangePassword: true},
	}}
	s := newSession(f, repo)

	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "tok-1", s.Token())
	assert.True(t, s.MustChangePassword())
	assert.Equal(t, []byte("tok-1"), repo.data[state.KeyToken])
	assert.Equal(t, []byte("1"), repo.data[state.KeyIsAuthenticated])
}

func TestLoginMissingFields(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		res  *api.LoginResult
	}{
		{"no token", &api.LoginResult{User: &models.User{ID: "u1"}}},
		{"no user", &api.LoginResult{Token: "tok-1"}},
		{"empty body", &api.LoginResult{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(&fakeAPI{loginRes: tc.res}, newMemRepo())

			err := s.Login(ctx, "alice", "password1", false)

			require.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, StateAnonymous, s.State())
			assert.Empty(t, s.Token())
			assert.Nil(t, s.User())
			assert.NotEmpty(t, s.LastError())
		})
	}
}

func TestLoginServerError(t *testing.T) {
	ctx := context.Background()
	s := newSession(&fakeAPI{loginErr: fmt.Errorf("invalid credentials")}, newMemRepo())

	err := s.Login(ctx, "alice", "wrong", false)

	require.Error(t, err)
	assert.Equal(t, StateAnonymous, s.State())
	assert.NotEmpty(t, s.LastError())
}

func TestCheckAuthUnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	f := &fakeAPI{loginRes: &api.LoginResult{Token: "tok-1", User: &models.User{ID: "u1"}}}
	s := newSession(f, repo)
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	f.meErr = fmt.Errorf("%w: token revoked", common.ErrUnauthorized)
	require.NoError(t, s.CheckAuth(ctx))

	assert.Equal(t, StateAnonymous, s.State())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	assert.Nil(t, repo.data[state.KeyToken])
	assert.Nil(t, repo.data[state.KeyUser])
	assert.Nil(t, repo.data[state.KeyIsAuthenticated])
}

func TestCheckAuthExpiredTokenSkipsServer(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	f := &fakeAPI{loginRes: &api.LoginResult{
		Token: signedToken(t, time.Now().Add(-time.Hour)),
		User:  &models.User{ID: "u1"},
	}}
	s := newSession(f, repo)
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	require.NoError(t, s.CheckAuth(ctx))

	assert.Zero(t, f.meCalls)
	assert.Equal(t, StateAnonymous, s.State())
}

func TestCheckAuthValidTokenRefreshesUser(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{loginRes: &api.LoginResult{
		Token: signedToken(t, time.Now().Add(time.Hour)),
		User:  &models.User{ID: "u1", NeedPhoneVerification: true},
	}}
	s := newSession(f, newMemRepo())
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	f.meRes = &models.User{ID: "u1", NeedPhoneVerification: false, Phone: "138****0000"}
	require.NoError(t, s.CheckAuth(ctx))

	assert.Equal(t, 1, f.meCalls)
	assert.False(t, s.NeedPhoneVerification())
	assert.Equal(t, "138****0000", s.User().Phone)
}

func TestCheckAuthTransportErrorKeepsSession(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{loginRes: &api.LoginResult{Token: "tok-1", User: &models.User{ID: "u1"}}}
	s := newSession(f, newMemRepo())
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	f.meErr = fmt.Errorf("%w: connection refused", common.ErrUnavailable)
	err := s.CheckAuth(ctx)

	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "tok-1", s.Token())
}

func TestLogoutClearsEvenOnServerError(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	f := &fakeAPI{
		loginRes:  &api.LoginResult{Token: "tok-1", User: &models.User{ID: "u1"}},
		logoutErr: fmt.Errorf("%w: server down", common.ErrUnavailable),
	}
	s := newSession(f, repo)
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	s.Logout(ctx)

	assert.Equal(t, 1, f.logoutN)
	assert.Equal(t, StateAnonymous, s.State())
	assert.Nil(t, repo.data[state.KeyToken])
}

func TestLogoutKeepsLastProjectID(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.data[state.KeyLastProjectID] = []byte("p1")
	f := &fakeAPI{loginRes: &api.LoginResult{Token: "tok-1", User: &models.User{ID: "u1"}}}
	s := newSession(f, repo)
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	s.Logout(ctx)

	assert.Equal(t, []byte("p1"), repo.data[state.KeyLastProjectID])
}

func TestLoadRestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	user := &models.User{ID: "u1", Username: "alice"}
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	repo.data[state.KeyToken] = []byte(signedToken(t, time.Now().Add(time.Hour)))
	repo.data[state.KeyUser] = raw
	repo.data[state.KeyIsAuthenticated] = []byte("1")

	f := &fakeAPI{meRes: user}
	s := newSession(f, repo)

	require.NoError(t, s.Load(ctx))

	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "u1", s.User().ID)
	assert.Equal(t, 1, f.meCalls)
}

func TestLoadWithoutPersistedSession(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{}
	s := newSession(f, newMemRepo())

	require.NoError(t, s.Load(ctx))

	assert.Equal(t, StateAnonymous, s.State())
	assert.Zero(t, f.meCalls)
}

func TestBindPhoneClearsVerificationFlag(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{
		loginRes: &api.LoginResult{
			Token: "tok-1",
			User:  &models.User{ID: "u1", NeedPhoneVerification: true},
		},
		bindRes: &models.User{ID: "u1", NeedPhoneVerification: false, Phone: "138****0000"},
	}
	s := newSession(f, newMemRepo())
	require.NoError(t, s.Login(ctx, "alice", "password1", false))
	require.True(t, s.NeedPhoneVerification())

	require.NoError(t, s.BindPhone(ctx, "13800000000", "123456"))

	assert.False(t, s.NeedPhoneVerification())
	assert.Equal(t, "138****0000", s.User().Phone)
}

func TestBindPhoneWithoutProfileInResponse(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{loginRes: &api.LoginResult{
		Token: "tok-1",
		User:  &models.User{ID: "u1", NeedPhoneVerification: true},
	}}
	s := newSession(f, newMemRepo())
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	require.NoError(t, s.BindPhone(ctx, "13800000000", "123456"))

	assert.False(t, s.NeedPhoneVerification())
	assert.Equal(t, "138****0000", s.User().Phone)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{loginRes: &api.LoginResult{
		Token: "tok-1",
		User:  &models.User{ID: "u1", MustChangePassword: true},
	}}
	s := newSession(f, newMemRepo())
	require.NoError(t, s.Login(ctx, "alice", "password1", false))

	require.NoError(t, s.ChangePassword(ctx, "password1", "password2"))

	assert.False(t, s.MustChangePassword())
}

func TestChangePasswordRejectsWeakPassword(t *testing.T) {
	ctx := context.Background()
	s := newSession(&fakeAPI{}, newMemRepo())

	err := s.ChangePassword(ctx, "password1", "short")

	require.ErrorIs(t, err, common.ErrValidation)
}

func TestRegisterValidatesPassword(t *testing.T) {
	ctx := context.Background()
	s := newSession(&fakeAPI{}, newMemRepo())

	_, err := s.Register(ctx, "bob", "lettersonly")
	require.ErrorIs(t, err, common.ErrValidation)

	u, err := s.Register(ctx, "bob", "password1")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
}
