package session_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdsprimark-ship-it/shipdesk/internal/cache"
	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/session"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
	"github.com/kdsprimark-ship-it/shipdesk/mocks"
)

const (
	adminID    = "admin@app.com"
	fallbackID = "user@app.com"
	adminPass  = "admin123"
)

type fakeSync struct {
	paused  int
	resumed int
}

func (f *fakeSync) Pause()  { f.paused++ }
func (f *fakeSync) Resume() { f.resumed++ }

func newManager(t *testing.T) (*session.Manager, *state.Store, *cache.BadgerStore, *fakeSync) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.MinCost)
	require.NoError(t, err)

	cs, err := cache.NewBadgerStore(&config.CacheConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	verifier := session.NewStaticVerifier(config.AuthConfig{
		AdminIdentifier:    adminID,
		AdminSecretHash:    string(hash),
		FallbackIdentifier: fallbackID,
	})
	tokens := session.NewTokenManager(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: time.Hour,
		Issuer:       "shipdesk-test",
	})
	store := state.NewStore()
	sc := &fakeSync{}
	m := session.NewManager(verifier, tokens, store, cs, sc, adminID, zerolog.Nop())
	return m, store, cs, sc
}

func TestManager_Login_Admin(t *testing.T) {
	m, _, _, sc := newManager(t)

	token, err := m.Login(adminID, adminPass)

	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, 1, sc.resumed)

	claims, err := m.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.Identifier)
	assert.Equal(t, domain.RoleAdministrator, claims.Role)
}

func TestManager_Login_FallbackAcceptsAnySecret(t *testing.T) {
	m, _, _, _ := newManager(t)

	token, err := m.Login(fallbackID, "whatever")

	require.NoError(t, err)
	claims, err := m.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, claims.Role)
}

func TestManager_Login_WrongSecret(t *testing.T) {
	m, _, _, _ := newManager(t)

	_, err := m.Login(adminID, "nope")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, m.IsAuthenticated())
}

func TestManager_Logout_ClearsDataKeepsSettings(t *testing.T) {
	m, store, _, sc := newManager(t)
	_, err := m.Login(adminID, adminPass)
	require.NoError(t, err)

	store.IndianEntries.Insert(domain.IndianEntry{ID: "a"})
	custom := m.Settings()
	custom.Theme = "Midnight"
	require.NoError(t, m.UpdateSettings(custom))

	m.Logout()

	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, 0, store.IndianEntries.Len())
	assert.Equal(t, "Midnight", m.Settings().Theme)
	assert.Equal(t, 1, sc.paused)
}

func TestManager_AuthFlagSurvivesRestart(t *testing.T) {
	m, store, cs, _ := newManager(t)
	_, err := m.Login(adminID, adminPass)
	require.NoError(t, err)

	// A second manager over the same cache sees the open session.
	tokens := session.NewTokenManager(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	verifier := session.NewStaticVerifier(config.AuthConfig{AdminIdentifier: adminID})
	m2 := session.NewManager(verifier, tokens, store, cs, nil, adminID, zerolog.Nop())

	assert.True(t, m2.IsAuthenticated())
}

func TestManager_SettingsSurviveRestart(t *testing.T) {
	m, store, cs, _ := newManager(t)
	custom := m.Settings()
	custom.Language = "bn"
	custom.DefaultRates[domain.ConditionDoc] = 500
	require.NoError(t, m.UpdateSettings(custom))

	tokens := session.NewTokenManager(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	verifier := session.NewStaticVerifier(config.AuthConfig{AdminIdentifier: adminID})
	m2 := session.NewManager(verifier, tokens, store, cs, nil, adminID, zerolog.Nop())

	assert.Equal(t, "bn", m2.Settings().Language)
	assert.Equal(t, 500.0, m2.Settings().DefaultRates[domain.ConditionDoc])
}

func TestManager_Settings_RateMapIsDetached(t *testing.T) {
	m, _, _, _ := newManager(t)

	s := m.Settings()
	s.DefaultRates[domain.ConditionDoc] = 1

	assert.Equal(t, 485.0, m.Settings().DefaultRates[domain.ConditionDoc])
}

func TestManager_Settings_ConcurrentRateReadsAndUpdates(t *testing.T) {
	m, _, _, _ := newManager(t)

	// A settings update carrying new default rates must not share its map
	// with concurrent rate resolution during entry pricing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s := m.Settings()
			s.DefaultRates[domain.ConditionDoc] = float64(i)
			assert.NoError(t, m.UpdateSettings(s))
		}
	}()
	for i := 0; i < 500; i++ {
		domain.ResolveRate(nil, "ACME", domain.ConditionDoc, m.Settings().DefaultRates)
	}
	<-done
}

func TestManager_ResetApp(t *testing.T) {
	m, store, cs, _ := newManager(t)
	_, err := m.Login(adminID, adminPass)
	require.NoError(t, err)
	store.Users.Insert(domain.User{ID: "u1"})

	custom := m.Settings()
	custom.Theme = "Midnight"
	require.NoError(t, m.UpdateSettings(custom))

	require.NoError(t, m.ResetApp())

	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, 0, store.Users.Len())
	assert.Equal(t, domain.DefaultSettings().Theme, m.Settings().Theme)

	// The durable cache holds only the factory settings now.
	var authed bool
	assert.False(t, cs.Load(cache.AuthKey(), &authed))
}

func TestManager_ValidateToken_Garbage(t *testing.T) {
	m, _, _, _ := newManager(t)
	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestManager_Login_PersistsAuthFlag(t *testing.T) {
	verifier := new(mocks.MockVerifier)
	verifier.On("Verify", "ops@example.com", "secret").Return(true)

	cs := new(mocks.MockCacheStore)
	cs.On("Load", cache.SettingsKey(), mock.Anything).Return(false)
	cs.On("Load", cache.AuthKey(), mock.Anything).Return(false)
	cs.On("Save", cache.AuthKey(), true).Return(nil)

	tokens := session.NewTokenManager(config.JWTConfig{Secret: "s", AccessExpiry: time.Hour})
	m := session.NewManager(verifier, tokens, state.NewStore(), cs, nil, adminID, zerolog.Nop())

	_, err := m.Login("ops@example.com", "secret")

	require.NoError(t, err)
	verifier.AssertExpectations(t)
	cs.AssertExpectations(t)
}
