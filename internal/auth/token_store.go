package auth

import (
	"context"
	"time"
)

const revokedTokenKeyPrefix = "revoked:access_token:"

// KeyValue is the subset of the cache client the token store needs. Both
// methods must report backend failures.
type KeyValue interface {
	Exists(ctx context.Context, key string) (bool, error)
	SetStrict(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RevocationStore records logged-out tokens until they would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token ids in Redis.
type TokenStore struct {
	kv KeyValue
}

var _ RevocationStore = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(kv KeyValue) *TokenStore {
	return &TokenStore{kv: kv}
}

// Revoke marks tokenID as revoked for ttl. Expired tokens need no entry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.kv.SetStrict(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether tokenID was revoked. A failed lookup is returned
// as an error so callers can reject the token.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return s.kv.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}
