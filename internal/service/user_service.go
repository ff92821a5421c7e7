package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/domain"
	"github.com/spec-kit/field-report-service/internal/events"
	"github.com/spec-kit/field-report-service/internal/repository"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// UserService covers admin account management and self-service profile
// updates.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, dispatcher: dispatcher}
}

// UserCreateInput describes a new account.
type UserCreateInput struct {
	PetugasID string
	Nama      string
	Password  string
	Role      domain.UserRole
	NoTelp    *string
	Aktif     *bool
}

// UserUpdateInput carries optional account mutations.
type UserUpdateInput struct {
	Nama   *string
	Role   *domain.UserRole
	NoTelp *string
	Aktif  *bool
}

// CreateUser registers a worker or admin account. The petugas id must be
// unused.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.PetugasID == "" || input.Nama == "" || input.Password == "" || input.Role == "" {
		return nil, apperrors.NewValidationError("data wajib (petugasId, nama, password, role) tidak lengkap", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("role tidak valid", nil)
	}

	if _, err := s.users.GetByPetugasID(ctx, input.PetugasID); err == nil {
		return nil, apperrors.NewConflict("petugasId sudah digunakan", map[string]any{"petugasId": input.PetugasID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	aktif := true
	if input.Aktif != nil {
		aktif = *input.Aktif
	}
	user := &domain.User{
		Role:         input.Role,
		PetugasID:    input.PetugasID,
		Nama:         input.Nama,
		NoTelp:       input.NoTelp,
		Aktif:        aktif,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventUserCreated,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.UserCreatedPayload{
			PetugasID: user.PetugasID,
			Role:      user.Role,
		},
	})
	return user, nil
}

// ListUsers returns accounts, optionally narrowed by role, newest first.
func (s *UserService) ListUsers(ctx context.Context, role *domain.UserRole) ([]domain.User, error) {
	if role != nil && !domain.ValidRole(*role) {
		role = nil
	}
	return s.users.List(ctx, repository.UserFilter{Role: role})
}

// GetUser fetches one account.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies admin-side mutations to an account.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, apperrors.NewValidationError("role tidak valid", nil)
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Nama != nil {
		user.Nama = *input.Nama
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.NoTelp != nil {
		user.NoTelp = input.NoTelp
	}
	if input.Aktif != nil {
		user.Aktif = *input.Aktif
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account; owned reports cascade away with it.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

// ResetPassword sets a fresh password on the account without verifying the
// old one; this is the admin-side recovery path.
func (s *UserService) ResetPassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.NewValidationError("password baru minimal 6 karakter", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

// UpdateProfile applies self-service changes to nama and no_telp.
func (s *UserService) UpdateProfile(ctx context.Context, userID, nama string, noTelp *string) (*domain.User, error) {
	nama = strings.TrimSpace(nama)
	if nama == "" {
		return nil, apperrors.NewValidationError("nama tidak boleh kosong", nil)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Nama = nama
	if noTelp != nil {
		trimmed := strings.TrimSpace(*noTelp)
		if trimmed == "" {
			user.NoTelp = nil
		} else {
			user.NoTelp = &trimmed
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
