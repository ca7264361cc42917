package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/splitroom/splitroom/internal/auth"
	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/roomcode"
	"github.com/splitroom/splitroom/internal/storage/sqlite"
)

// testEnv wires services against a temp-file SQLite store.
type testEnv struct {
	store    *sqlite.Store
	users    *UserService
	rooms    *RoomService
	receipts *ReceiptService
	otp      *auth.MemoryOTPProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitroom-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	otp := auth.NewMemoryOTPProvider(time.Minute)
	jwt := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	return &testEnv{
		store:    store,
		users:    NewUserService(store, otp, jwt),
		rooms:    NewRoomService(store, auth.NewPasswordHasher(), roomcode.New()),
		receipts: NewReceiptService(store),
		otp:      otp,
	}
}

// verifyUser runs the OTP flow end to end and returns the created user.
func (env *testEnv) verifyUser(t *testing.T, phone string) *models.User {
	t.Helper()
	ctx := context.Background()

	var code string
	env.otp.OnSend = func(_, c string) { code = c }
	if err := env.users.InitializeVerification(ctx, phone); err != nil {
		t.Fatalf("InitializeVerification failed: %v", err)
	}
	user, token, err := env.users.CompleteVerification(ctx, phone, code)
	if err != nil {
		t.Fatalf("CompleteVerification failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	return user
}
