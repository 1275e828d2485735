package session

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
)

// StaticVerifier checks credentials against values fixed in configuration.
// The admin identifier requires the bcrypt-verified secret; the fallback
// identifier logs in with any secret, mirroring the original console's
// stopgap access for non-admin staff. Not a real user directory.
type StaticVerifier struct {
	cfg config.AuthConfig
}

var _ port.CredentialVerifier = (*StaticVerifier)(nil)

// NewStaticVerifier builds a verifier from auth settings.
func NewStaticVerifier(cfg config.AuthConfig) *StaticVerifier {
	return &StaticVerifier{cfg: cfg}
}

// Verify reports whether identifier plus secret name a known identity.
func (v *StaticVerifier) Verify(identifier, secret string) bool {
	switch identifier {
	case v.cfg.AdminIdentifier:
		return bcrypt.CompareHashAndPassword([]byte(v.cfg.AdminSecretHash), []byte(secret)) == nil
	case v.cfg.FallbackIdentifier:
		return v.cfg.FallbackIdentifier != ""
	}
	return false
}
