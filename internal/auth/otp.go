package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

var ErrOTPIncorrect = errors.New("OTP incorrect")

// OTPProvider abstracts phone-number verification. Production deployments
// plug in an SMS provider; the service layer only sends and verifies codes.
type OTPProvider interface {
	// Send delivers a one-time code to the phone number.
	Send(ctx context.Context, phoneNumber string) error

	// Verify checks a code previously sent to the phone number.
	// Returns ErrOTPIncorrect for wrong, expired, or unknown codes.
	Verify(ctx context.Context, phoneNumber, code string) error
}

// MemoryOTPProvider keeps pending codes in memory. Development and test
// use only: codes are logged rather than delivered, expire after the TTL,
// and are single-use.
type MemoryOTPProvider struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]pendingCode

	// OnSend, if set, observes generated codes (used by tests and the dev
	// server to surface the code without an SMS gateway).
	OnSend func(phoneNumber, code string)
}

type pendingCode struct {
	code      string
	expiresAt time.Time
}

// NewMemoryOTPProvider returns a provider whose codes expire after ttl.
func NewMemoryOTPProvider(ttl time.Duration) *MemoryOTPProvider {
	return &MemoryOTPProvider{
		ttl:     ttl,
		pending: make(map[string]pendingCode),
	}
}

// Send generates a 6-digit code for the phone number, replacing any
// previous pending code.
func (p *MemoryOTPProvider) Send(_ context.Context, phoneNumber string) error {
	code := fmt.Sprintf("%06d", rand.IntN(1000000))

	p.mu.Lock()
	p.pending[phoneNumber] = pendingCode{code: code, expiresAt: time.Now().Add(p.ttl)}
	p.mu.Unlock()

	if p.OnSend != nil {
		p.OnSend(phoneNumber, code)
	}
	return nil
}

// Verify consumes the pending code for the phone number if it matches and
// has not expired.
func (p *MemoryOTPProvider) Verify(_ context.Context, phoneNumber, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending, ok := p.pending[phoneNumber]
	if !ok || pending.code != code || time.Now().After(pending.expiresAt) {
		return ErrOTPIncorrect
	}
	delete(p.pending, phoneNumber)
	return nil
}
