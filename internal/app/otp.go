package app

import (
	"context"
	"time"

	"placebook/internal/domain"
)

// OtpAttempts throttles one-time-password failures per client IP. Each failed
// attempt bumps a counter that expires a day after the first failure; once
// the counter reaches the maximum the IP reads as blocked until expiry.
type OtpAttempts struct {
	counter domain.AttemptCounter
	max     int64
	ttl     time.Duration
}

func NewOtpAttempts(c domain.AttemptCounter, max int64, ttl time.Duration) *OtpAttempts {
	return &OtpAttempts{counter: c, max: max, ttl: ttl}
}

func (o *OtpAttempts) Fail(ctx context.Context, ip string) error {
	_, err := o.counter.Incr(ctx, otpKey(ip), o.ttl)
	return err
}

func (o *OtpAttempts) Blocked(ctx context.Context, ip string) (bool, error) {
	n, err := o.counter.Count(ctx, otpKey(ip))
	if err != nil {
		return false, err
	}
	return n >= o.max, nil
}

// Succeed clears the counter after a correct code.
func (o *OtpAttempts) Succeed(ctx context.Context, ip string) error {
	return o.counter.Reset(ctx, otpKey(ip))
}

func otpKey(ip string) string { return "otp:attempts:" + ip }
