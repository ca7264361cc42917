package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/splitroom/splitroom/internal/auth"
	"github.com/splitroom/splitroom/internal/config"
	"github.com/splitroom/splitroom/internal/handlers"
	"github.com/splitroom/splitroom/internal/roomcode"
	"github.com/splitroom/splitroom/internal/router"
	"github.com/splitroom/splitroom/internal/service"
	"github.com/splitroom/splitroom/internal/storage/sqlite"
	"github.com/splitroom/splitroom/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	// Dev OTP provider: codes are logged, not delivered. Swap for an SMS
	// provider implementation in production.
	otp := auth.NewMemoryOTPProvider(cfg.OTPTTL)
	otp.OnSend = func(phoneNumber, code string) {
		slog.Info("OTP generated", "phone_number", phoneNumber, "code", code)
	}

	userService := service.NewUserService(store, otp, jwtManager)
	roomService := service.NewRoomService(store, auth.NewPasswordHasher(), roomcode.New())
	receiptService := service.NewReceiptService(store)

	engine := router.New(router.Handlers{
		Users:    handlers.NewUserHandler(userService),
		Rooms:    handlers.NewRoomHandler(roomService, receiptService),
		Receipts: handlers.NewReceiptHandler(receiptService),
		Payments: handlers.NewPaymentHandler(),
	}, jwtManager)

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, engine); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
