package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpTTL = 5 * time.Minute

// OTPStore keeps one-time codes in redis with a short TTL. Codes are
// consumed on first successful verification.
type OTPStore struct {
	rdb *redis.Client
}

func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func otpKey(driverID string) string {
	return "driver_otp:" + driverID
}

// GenerateOTP creates a 6-digit code and stores it for otpTTL.
func (s *OTPStore) GenerateOTP(ctx context.Context, driverID string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.rdb.Set(ctx, otpKey(driverID), code, otpTTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyOTP checks the code and deletes it when it matches.
func (s *OTPStore) VerifyOTP(ctx context.Context, driverID, code string) (bool, error) {
	stored, err := s.rdb.Get(ctx, otpKey(driverID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.rdb.Del(ctx, otpKey(driverID)).Err(); err != nil {
		return false, err
	}
	return true, nil
}
