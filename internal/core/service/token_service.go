package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mercatura/catalog-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// TokenService signs and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService. The secret must be high-entropy
// (HS256 expects at least 256 bits) and known only to the server.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying subject, issued-at and expiry, with extra
// claims merged in. Registered claims win over extras of the same name.
func (s *TokenService) Issue(subject string, extra map[string]any) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	now := time.Now()
	claims["sub"] = subject
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// parse verifies signature and expiry. An expired-but-well-signed token is
// reported as domain.ErrTokenExpired; anything else that fails verification
// is domain.ErrTokenInvalid.
func (s *TokenService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ExtractSubject verifies the token and returns its subject claim.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrTokenInvalid
	}
	return sub, nil
}

// Claim verifies the token and returns the named claim (nil when absent).
func (s *TokenService) Claim(token, name string) (any, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	return claims[name], nil
}

// IsValid reports whether token verifies, is unexpired, and its subject is
// exactly expectedSubject. Comparison is case-sensitive.
func (s *TokenService) IsValid(token, expectedSubject string) bool {
	sub, err := s.ExtractSubject(token)
	return err == nil && sub == expectedSubject
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
