package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryOTPProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("verify consumes a sent code", func(t *testing.T) {
		provider := NewMemoryOTPProvider(time.Minute)
		var sent string
		provider.OnSend = func(_, code string) { sent = code }

		if err := provider.Send(ctx, "+15551234567"); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
		if len(sent) != 6 {
			t.Fatalf("expected 6-digit code, got %q", sent)
		}

		if err := provider.Verify(ctx, "+15551234567", sent); err != nil {
			t.Errorf("Verify failed: %v", err)
		}

		// Codes are single-use.
		if err := provider.Verify(ctx, "+15551234567", sent); !errors.Is(err, ErrOTPIncorrect) {
			t.Errorf("reused code: got %v, want ErrOTPIncorrect", err)
		}
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		provider := NewMemoryOTPProvider(time.Minute)
		provider.Send(ctx, "+15551234567")
		if err := provider.Verify(ctx, "+15551234567", "000000x"); !errors.Is(err, ErrOTPIncorrect) {
			t.Errorf("got %v, want ErrOTPIncorrect", err)
		}
	})

	t.Run("unknown number rejected", func(t *testing.T) {
		provider := NewMemoryOTPProvider(time.Minute)
		if err := provider.Verify(ctx, "+15550000000", "123456"); !errors.Is(err, ErrOTPIncorrect) {
			t.Errorf("got %v, want ErrOTPIncorrect", err)
		}
	})

	t.Run("expired code rejected", func(t *testing.T) {
		provider := NewMemoryOTPProvider(-time.Second)
		var sent string
		provider.OnSend = func(_, code string) { sent = code }
		provider.Send(ctx, "+15551234567")
		if err := provider.Verify(ctx, "+15551234567", sent); !errors.Is(err, ErrOTPIncorrect) {
			t.Errorf("got %v, want ErrOTPIncorrect", err)
		}
	})
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}

	if err := hasher.Verify(hash, "hunter22"); err != nil {
		t.Errorf("Verify with correct password failed: %v", err)
	}
	if err := hasher.Verify(hash, "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Verify with wrong password: got %v, want ErrWrongPassword", err)
	}

	if err := hasher.Validate("abc"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Validate short password: got %v, want ErrWeakPassword", err)
	}
	if err := hasher.Validate("abcd"); err != nil {
		t.Errorf("Validate ok password: got %v, want nil", err)
	}
}
