package port

// CredentialVerifier checks a login identifier + secret pair. The console
// ships a static placeholder implementation; production deployments swap in
// a real verifier at this boundary.
type CredentialVerifier interface {
	Verify(identifier, secret string) bool
}
