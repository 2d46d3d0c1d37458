// Package otp generates and stores one-time passwords for the
// password-change flow. Codes are held hashed in redis with a TTL; the
// plaintext only exists in the email to the user.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"designhub_backend/platform/apperr"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "otp:"
	codeDigits = 6
)

// GenerateCode produces a random 6-digit numeric code.
func GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// HashCode hashes a code for at-rest storage.
func HashCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

// Store keeps hashed codes in redis, one per identifier, expiring
// after the configured TTL.
type Store struct {
	client redis.Cmdable
}

// NewStore creates an OTP store over a redis client.
func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// Save stores the hashed code for the identifier, replacing any
// previous code and resetting the expiry.
func (s *Store) Save(ctx context.Context, identifier, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+identifier, codeHash, ttl).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "store otp failed", err)
	}
	return nil
}

// Get returns the stored hash for the identifier. A missing or expired
// code maps to NotFound.
func (s *Store) Get(ctx context.Context, identifier string) (string, error) {
	hash, err := s.client.Get(ctx, keyPrefix+identifier).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("no active verification code")
		}
		return "", apperr.Wrap(apperr.KindInternal, "read otp failed", err)
	}
	return hash, nil
}

// Delete removes the stored code, consuming it.
func (s *Store) Delete(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, keyPrefix+identifier).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete otp failed", err)
	}
	return nil
}
