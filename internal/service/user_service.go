package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/splitroom/splitroom/internal/auth"
	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/storage"
)

// UserService handles phone verification and user profiles.
type UserService struct {
	store storage.Store
	otp   auth.OTPProvider
	jwt   *auth.JWTManager
}

// NewUserService creates a UserService with the given collaborators.
func NewUserService(store storage.Store, otp auth.OTPProvider, jwt *auth.JWTManager) *UserService {
	return &UserService{store: store, otp: otp, jwt: jwt}
}

// InitializeVerification sends a one-time code to the phone number.
func (s *UserService) InitializeVerification(ctx context.Context, phoneNumber string) error {
	if err := s.otp.Send(ctx, phoneNumber); err != nil {
		return err
	}
	slog.Info("Verification code sent", "phone_number", phoneNumber)
	return nil
}

// CompleteVerification checks the one-time code and returns the user plus a
// session token. A user that does not exist yet is created on first
// successful verification.
func (s *UserService) CompleteVerification(ctx context.Context, phoneNumber, code string) (*models.User, string, error) {
	if err := s.otp.Verify(ctx, phoneNumber, code); err != nil {
		return nil, "", err
	}

	user, err := s.store.GetUserByPhone(ctx, phoneNumber)
	if errors.Is(err, storage.ErrNotFound) {
		user = models.NewUser(phoneNumber)
		if createErr := s.store.CreateUser(ctx, user); createErr != nil {
			// A concurrent verification may have created the account first.
			if errors.Is(createErr, storage.ErrPhoneExists) {
				user, err = s.store.GetUserByPhone(ctx, phoneNumber)
				if err != nil {
					return nil, "", err
				}
			} else {
				return nil, "", createErr
			}
		} else {
			slog.Info("User created", "user_id", user.ID, "phone_number", phoneNumber)
		}
	} else if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser fetches a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// GetUserByPhone fetches a user by phone number.
func (s *UserService) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	return s.store.GetUserByPhone(ctx, phoneNumber)
}

// ListUsers returns users paginated by skip/limit.
func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.store.ListUsers(ctx, skip, limit)
}

// UpdateProfile updates a user's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User) error {
	return s.store.UpdateUser(ctx, user)
}
