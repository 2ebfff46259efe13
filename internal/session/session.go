// Package session implements the server-side session store. A Session is an
// immutable value looked up per request by the opaque id carried inside the
// signed session cookie. Records live in Redis under an idle TTL; reading a
// session slides its expiry.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session identifies a logged-in user for the duration of their visit.
// SpectatorID is nil for accounts without a spectator profile (the seeded
// admin); such accounts cannot buy tickets.
type Session struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	SpectatorID *int64 `json:"spectator_id,omitempty"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool { return s.Role == "admin" }

// Flash is a one-time message attached to a redirect. Exactly one of the
// fields is set.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrNotFound is returned when a session id has no live record, either
// because it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

// Store is the session persistence interface consumed by middleware and
// handlers. The production implementation is Redis-backed; tests substitute
// an in-memory fake.
type Store interface {
	Create(ctx context.Context, id string, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	SetFlash(ctx context.Context, id string, f Flash) error
	PopFlash(ctx context.Context, id string) (Flash, bool)
}

// RedisStore persists sessions and flashes in Redis with a shared TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }
func flashKey(id string) string   { return "flash:" + id }

// Create stores the session value under the given id with the idle TTL.
func (s *RedisStore) Create(ctx context.Context, id string, ses Session) error {
	payload, err := json.Marshal(ses)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(id), payload, s.ttl).Err()
}

// Get loads a session by id and renews its idle TTL.
func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	payload, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	var ses Session
	if err := json.Unmarshal(payload, &ses); err != nil {
		return Session{}, err
	}
	_ = s.rdb.Expire(ctx, sessionKey(id), s.ttl).Err()
	return ses, nil
}

// Delete removes the session record and any pending flash. Used by logout.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id), flashKey(id)).Err()
}

// SetFlash attaches a one-time message to the session. A pending flash that
// was never shown is overwritten.
func (s *RedisStore) SetFlash(ctx context.Context, id string, f Flash) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, flashKey(id), payload, s.ttl).Err()
}

// PopFlash atomically fetches and discards the pending flash, if any.
// Failures are treated as "no flash": losing a message must never fail the
// page it was meant to decorate.
func (s *RedisStore) PopFlash(ctx context.Context, id string) (Flash, bool) {
	payload, err := s.rdb.GetDel(ctx, flashKey(id)).Bytes()
	if err != nil {
		return Flash{}, false
	}
	var f Flash
	if err := json.Unmarshal(payload, &f); err != nil {
		return Flash{}, false
	}
	return f, true
}
