package utils // package utils provides helpers for session tokens and random ids

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding for random ids
	"errors"
	"time" // expiration handling

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidSessionToken is returned when a presented token fails signature
// verification, has expired, or does not carry a session id.
var ErrInvalidSessionToken = errors.New("invalid session token")

// NewSessionID returns a 32-byte random identifier encoded as hex. It keys
// the server-side session record; the client only ever sees it wrapped in a
// signed token.
func NewSessionID() (string, error) {
	return randomHex(32)
}

// SignSessionToken wraps a session id in an HS256 JWT. The token itself
// carries no user data; it only proves the sid was issued by this server
// and bounds how long the cookie stays usable.
func SignSessionToken(secret, sid string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken verifies a signed session token and extracts the session
// id. Tokens signed with any method other than HMAC are rejected.
func ParseSessionToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSessionToken
	}
	return sid, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
