// Package service contains the business logic of SIAP. Handlers stay thin;
// validation and workflow rules live here.
package service

import (
	"context"

	"siap/internal/models"
	"siap/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	Username    string
	NamaLengkap string
	Password    string
	Role        models.Role
	UnitKerja   string
}

type UpdateUserInput struct {
	UserID      uint
	NamaLengkap string
	UnitKerja   string
	Password    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser registers a new account. Only admins reach this path; the route
// guard enforces that before the service is called.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Username == "" || in.NamaLengkap == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, nama lengkap, dan password wajib diisi")
	}
	if in.Role != models.RoleAdmin && in.Role != models.RolePegawai {
		return nil, models.NewValidationError("Role harus admin atau pegawai")
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username sudah terdaftar")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:    in.Username,
		NamaLengkap: in.NamaLengkap,
		Password:    string(hashed),
		Role:        in.Role,
		UnitKerja:   in.UnitKerja,
		StatusAktif: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.NamaLengkap != "" {
		user.NamaLengkap = in.NamaLengkap
	}
	if in.UnitKerja != "" {
		user.UnitKerja = in.UnitKerja
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetStatusAktif activates or deactivates an account. Users are never hard
// deleted because permintaan rows keep referencing them.
func (s *UserService) SetStatusAktif(ctx context.Context, targetID uint, aktif bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.StatusAktif = aktif
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
