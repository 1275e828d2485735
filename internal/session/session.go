package session

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/kdsprimark-ship-it/shipdesk/internal/cache"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
)

// SyncControl is the slice of the sync coordinator the session needs: stop
// pulling on logout, start again on login.
type SyncControl interface {
	Pause()
	Resume()
}

// Manager owns the console session: the authenticated flag, the settings
// record, login and logout, and the factory reset. Settings survive logout;
// only a reset returns them to factory values.
type Manager struct {
	verifier port.CredentialVerifier
	tokens   *TokenManager
	store    *state.Store
	cache    port.CacheStore
	sync     SyncControl
	log      zerolog.Logger

	adminIdentifier string

	mu            sync.Mutex
	settings      domain.Settings
	authenticated bool
}

// NewManager restores session state from the durable cache. A missing or
// corrupted settings entry falls back to factory settings.
func NewManager(
	verifier port.CredentialVerifier,
	tokens *TokenManager,
	store *state.Store,
	cacheStore port.CacheStore,
	syncCtl SyncControl,
	adminIdentifier string,
	log zerolog.Logger,
) *Manager {
	m := &Manager{
		verifier:        verifier,
		tokens:          tokens,
		store:           store,
		cache:           cacheStore,
		sync:            syncCtl,
		log:             log.With().Str("component", "session").Logger(),
		adminIdentifier: adminIdentifier,
		settings:        domain.DefaultSettings(),
	}
	if cacheStore != nil {
		var saved domain.Settings
		if cacheStore.Load(cache.SettingsKey(), &saved) {
			m.settings = saved
		}
		var authed bool
		if cacheStore.Load(cache.AuthKey(), &authed) {
			m.authenticated = authed
		}
	}
	return m
}

// Login verifies credentials and issues a session token. The sync loop is
// resumed so a fresh dataset arrives right after login.
func (m *Manager) Login(identifier, secret string) (*Token, error) {
	if !m.verifier.Verify(identifier, secret) {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.RoleStaff
	if identifier == m.adminIdentifier {
		role = domain.RoleAdministrator
	}
	token, err := m.tokens.Generate(identifier, role)
	if err != nil {
		return nil, err
	}

	m.setAuthenticated(true)
	if m.sync != nil {
		m.sync.Resume()
	}
	m.log.Info().Str("identifier", identifier).Msg("session opened")
	return token, nil
}

// Logout pauses syncing and clears the in-memory dataset. Clearing bumps
// the store generation, so refresh results still in flight are discarded.
// Settings are kept.
func (m *Manager) Logout() {
	if m.sync != nil {
		m.sync.Pause()
	}
	m.store.Clear()
	m.setAuthenticated(false)
	m.log.Info().Msg("session closed")
}

// IsAuthenticated reports whether a session is open.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// ValidateToken verifies a bearer token for the API middleware.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	return m.tokens.Validate(tokenString)
}

// Settings returns the current settings record. The copy is detached: the
// caller may mutate its DefaultRates map (the settings handler binds request
// JSON into it) without racing readers of the live record.
func (m *Manager) Settings() domain.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Clone()
}

// UpdateSettings replaces the settings record and persists it. The stored
// record is detached from the caller's copy.
func (m *Manager) UpdateSettings(s domain.Settings) error {
	s = s.Clone()
	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
	if m.cache == nil {
		return nil
	}
	return m.cache.Save(cache.SettingsKey(), s)
}

// ResetApp is the factory reset: drop every durable entry, clear the
// dataset, and return settings to factory values. The session is closed.
func (m *Manager) ResetApp() error {
	if m.sync != nil {
		m.sync.Pause()
	}
	if m.cache != nil {
		if err := m.cache.Reset(); err != nil {
			return err
		}
	}
	m.store.Clear()

	m.mu.Lock()
	m.settings = domain.DefaultSettings()
	m.authenticated = false
	settings := m.settings
	m.mu.Unlock()

	if m.cache != nil {
		if err := m.cache.Save(cache.SettingsKey(), settings); err != nil {
			return err
		}
	}
	m.log.Info().Msg("factory reset complete")
	return nil
}

func (m *Manager) setAuthenticated(v bool) {
	m.mu.Lock()
	m.authenticated = v
	m.mu.Unlock()
	if m.cache != nil {
		if err := m.cache.Save(cache.AuthKey(), v); err != nil {
			m.log.Warn().Err(err).Msg("persisting auth flag failed")
		}
	}
}
