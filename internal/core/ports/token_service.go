package ports

import "time"

// TokenService issues and verifies the signed bearer tokens used as session
// proof. Tokens are stateless: validity is signature + expiry only, there is
// no server-side revocation.
type TokenService interface {
	// Issue signs a token with subject, issued-at = now, expiry = now + TTL,
	// and any extra claims merged in.
	Issue(subject string, extra map[string]any) (string, error)
	// ExtractSubject verifies the token and returns its subject claim.
	// Fails with domain.ErrTokenExpired or domain.ErrTokenInvalid.
	ExtractSubject(token string) (string, error)
	// Claim verifies the token and returns the named claim.
	Claim(token, name string) (any, error)
	// IsValid reports whether the token verifies, is unexpired, and carries
	// exactly the expected subject.
	IsValid(token, expectedSubject string) bool
	// TTL returns the configured token lifetime (a static config echo, not
	// per-token remaining time).
	TTL() time.Duration
}
