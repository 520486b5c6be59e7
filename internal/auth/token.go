package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid covers every verification failure: bad signature,
// malformed encoding, missing subject, or expiry reached. Callers get a
// single error value so responses cannot reveal which check failed.
var ErrTokenInvalid = errors.New("token invalid")

const defaultTokenTTL = time.Hour

// TokenManager issues and verifies stateless HS256 tokens carrying
// {sub, exp}. Verification never touches storage; there is no
// revocation list, tokens simply expire after the configured TTL.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token whose subject is the given username and
// whose expiry is now plus the configured TTL.
func (m *TokenManager) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify validates the token and returns its subject.
func (m *TokenManager) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", ErrTokenInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
