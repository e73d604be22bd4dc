package service

import (
	"context"
	"testing"

	"siap/internal/models"

	"github.com/stretchr/testify/require"
)

// Function-field stubs let each test swap in only the calls it cares about.

type stubUserRepo struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, user *models.User) error
	listFn          func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

type stubBarangRepo struct {
	getByIDFn         func(ctx context.Context, id uint) (*models.Barang, error)
	listFn            func(ctx context.Context, includeInactive bool, limit, offset int) ([]models.Barang, error)
	listKritisFn      func(ctx context.Context) ([]models.Barang, error)
	createFn          func(ctx context.Context, barang *models.Barang) error
	updateFn          func(ctx context.Context, barang *models.Barang) error
	deactivateFn      func(ctx context.Context, id uint) error
	tambahStokFn      func(ctx context.Context, barangID uint, qty int, userID uint, alasan string) (*models.Barang, error)
	listRiwayatStokFn func(ctx context.Context, barangID uint, limit, offset int) ([]models.RiwayatStok, error)
}

func (s *stubBarangRepo) GetByID(ctx context.Context, id uint) (*models.Barang, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubBarangRepo) List(ctx context.Context, includeInactive bool, limit, offset int) ([]models.Barang, error) {
	return s.listFn(ctx, includeInactive, limit, offset)
}

func (s *stubBarangRepo) ListKritis(ctx context.Context) ([]models.Barang, error) {
	return s.listKritisFn(ctx)
}

func (s *stubBarangRepo) Create(ctx context.Context, barang *models.Barang) error {
	return s.createFn(ctx, barang)
}

func (s *stubBarangRepo) Update(ctx context.Context, barang *models.Barang) error {
	return s.updateFn(ctx, barang)
}

func (s *stubBarangRepo) Deactivate(ctx context.Context, id uint) error {
	return s.deactivateFn(ctx, id)
}

func (s *stubBarangRepo) TambahStok(ctx context.Context, barangID uint, qty int, userID uint, alasan string) (*models.Barang, error) {
	return s.tambahStokFn(ctx, barangID, qty, userID, alasan)
}

func (s *stubBarangRepo) ListRiwayatStok(ctx context.Context, barangID uint, limit, offset int) ([]models.RiwayatStok, error) {
	return s.listRiwayatStokFn(ctx, barangID, limit, offset)
}

// requireAppError asserts err is an AppError carrying the expected code.
func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}
