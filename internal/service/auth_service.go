package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/config"
	"github.com/spec-kit/field-report-service/internal/domain"
	"github.com/spec-kit/field-report-service/internal/repository"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// AuthService coordinates login and password flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates by petugas id and password and issues a session token.
// Unknown ids and wrong passwords produce the same message; inactive
// accounts are refused after the credential check.
func (s *AuthService) Login(ctx context.Context, petugasID, password string) (*domain.User, string, time.Time, error) {
	if petugasID == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("ID petugas dan password wajib diisi", nil)
	}

	user, err := s.users.GetByPetugasID(ctx, petugasID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("ID petugas atau password salah")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("ID petugas atau password salah")
	}
	if !user.Aktif {
		return nil, "", time.Time{}, apperrors.NewForbidden("akun ini tidak aktif")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || len(newPassword) < 6 {
		return apperrors.NewValidationError("password baru minimal 6 karakter", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewValidationError("password saat ini salah", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// TokenManager exposes the underlying token manager for the session resolver.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
