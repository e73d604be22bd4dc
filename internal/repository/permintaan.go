package repository

import (
	"context"
	"errors"

	"siap/internal/models"

	"gorm.io/gorm"
)

// PermintaanRepository defines persistence operations for goods requests.
type PermintaanRepository interface {
	// Create persists the header and its detail lines in one transaction.
	Create(ctx context.Context, permintaan *models.Permintaan) error
	GetByID(ctx context.Context, id uint) (*models.Permintaan, error)
	// ListByPemohon returns the requester's own requests, newest first.
	ListByPemohon(ctx context.Context, pemohonID uint, limit, offset int) ([]models.Permintaan, error)
	// ListAll returns requests across all requesters, optionally filtered by
	// status, newest first. Admin-only callers.
	ListAll(ctx context.Context, status models.StatusPermintaan, limit, offset int) ([]models.Permintaan, error)
	CountByStatus(ctx context.Context, status models.StatusPermintaan) (int64, error)
}

type permintaanRepository struct {
	db *gorm.DB
}

// NewPermintaanRepository returns a new PermintaanRepository implementation.
func NewPermintaanRepository(db *gorm.DB) PermintaanRepository {
	return &permintaanRepository{db: db}
}

func (r *permintaanRepository) Create(ctx context.Context, permintaan *models.Permintaan) error {
	// Detail rows ride along through the association; a single Create keeps
	// header and lines in one transaction.
	if err := r.db.WithContext(ctx).Create(permintaan).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *permintaanRepository) GetByID(ctx context.Context, id uint) (*models.Permintaan, error) {
	var permintaan models.Permintaan
	if err := r.db.WithContext(ctx).
		Preload("Pemohon").
		Preload("Verifikator").
		Preload("Detail").
		Preload("Detail.Barang").
		First(&permintaan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Permintaan", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &permintaan, nil
}

func (r *permintaanRepository) ListByPemohon(ctx context.Context, pemohonID uint, limit, offset int) ([]models.Permintaan, error) {
	var rows []models.Permintaan
	if err := r.db.WithContext(ctx).
		Preload("Detail").
		Preload("Detail.Barang").
		Where("id_user_pemohon = ?", pemohonID).
		Order("tanggal_permintaan DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *permintaanRepository) ListAll(ctx context.Context, status models.StatusPermintaan, limit, offset int) ([]models.Permintaan, error) {
	var rows []models.Permintaan
	q := r.db.WithContext(ctx).
		Preload("Pemohon").
		Preload("Detail").
		Preload("Detail.Barang").
		Order("tanggal_permintaan DESC, id DESC").
		Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *permintaanRepository) CountByStatus(ctx context.Context, status models.StatusPermintaan) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Permintaan{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
