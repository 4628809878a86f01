package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"artfeeds/internal/cache"
)

const otpKeyPrefix = "password_otp:"

// OTPExpiry is how long a password-reset OTP stays valid.
const OTPExpiry = 5 * time.Minute

// OTPStoreInterface defines OTP storage operations.
type OTPStoreInterface interface {
	Generate(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	Delete(ctx context.Context, email string) error
}

// OTPStore keeps one-time password-reset codes in Redis. Writing a new code
// for an email overwrites the previous one, so at most one OTP is active per
// email; expiry is handled by the key TTL.
type OTPStore struct {
	cache *cache.Client
}

var _ OTPStoreInterface = (*OTPStore)(nil)

// NewOTPStore creates a new OTP store.
func NewOTPStore(cache *cache.Client) *OTPStore {
	return &OTPStore{cache: cache}
}

// Generate creates a 6-digit numeric code for the email and stores it with TTL.
func (s *OTPStore) Generate(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.cache.Set(ctx, otpKeyPrefix+email, []byte(code), OTPExpiry); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify reports whether the code matches the stored, unexpired OTP.
func (s *OTPStore) Verify(ctx context.Context, email, code string) (bool, error) {
	data, err := s.cache.Get(ctx, otpKeyPrefix+email)
	if err != nil || data == nil {
		return false, nil
	}
	return string(data) == code, nil
}

// Delete removes the active OTP for an email, if any.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.cache.Delete(ctx, otpKeyPrefix+email)
}
