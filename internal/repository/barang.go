package repository

import (
	"context"
	"errors"

	"siap/internal/cache"
	"siap/internal/models"

	"gorm.io/gorm"
)

// BarangRepository defines persistence operations for inventory items.
type BarangRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Barang, error)
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]models.Barang, error)
	ListKritis(ctx context.Context) ([]models.Barang, error)
	Create(ctx context.Context, barang *models.Barang) error
	Update(ctx context.Context, barang *models.Barang) error
	Deactivate(ctx context.Context, id uint) error
	// TambahStok atomically adds qty to the item's stock and writes an audit
	// row, inside one transaction.
	TambahStok(ctx context.Context, barangID uint, qty int, userID uint, alasan string) (*models.Barang, error)
	ListRiwayatStok(ctx context.Context, barangID uint, limit, offset int) ([]models.RiwayatStok, error)
}

type barangRepository struct {
	db *gorm.DB
}

// NewBarangRepository returns a new BarangRepository implementation.
func NewBarangRepository(db *gorm.DB) BarangRepository {
	return &barangRepository{db: db}
}

func (r *barangRepository) GetByID(ctx context.Context, id uint) (*models.Barang, error) {
	var barang models.Barang
	key := cache.BarangKey(id)

	err := cache.Aside(ctx, key, &barang, cache.BarangTTL, func() error {
		if err := r.db.WithContext(ctx).First(&barang, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Barang", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &barang, nil
}

func (r *barangRepository) List(ctx context.Context, includeInactive bool, limit, offset int) ([]models.Barang, error) {
	var items []models.Barang
	q := r.db.WithContext(ctx).Order("nama_barang ASC").Limit(limit).Offset(offset)
	if !includeInactive {
		q = q.Where("status_aktif = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *barangRepository) ListKritis(ctx context.Context) ([]models.Barang, error) {
	var items []models.Barang
	if err := r.db.WithContext(ctx).
		Where("status_aktif = ? AND stok <= ambang_batas_kritis", true).
		Order("stok ASC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *barangRepository) Create(ctx context.Context, barang *models.Barang) error {
	// kode_barang is deliberately not unique; no duplicate check here.
	if err := r.db.WithContext(ctx).Create(barang).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBarang(ctx, barang.ID)
	return nil
}

func (r *barangRepository) Update(ctx context.Context, barang *models.Barang) error {
	if err := r.db.WithContext(ctx).Save(barang).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBarang(ctx, barang.ID)
	return nil
}

func (r *barangRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Barang{}).
		Where("id = ?", id).
		Update("status_aktif", false)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Barang", id)
	}
	cache.InvalidateBarang(ctx, id)
	return nil
}

func (r *barangRepository) TambahStok(ctx context.Context, barangID uint, qty int, userID uint, alasan string) (*models.Barang, error) {
	var updated models.Barang

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barang models.Barang
		if err := tx.First(&barang, barangID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Barang", barangID)
			}
			return models.NewInternalError(err)
		}

		res := tx.Model(&models.Barang{}).
			Where("id = ?", barangID).
			UpdateColumn("stok", gorm.Expr("stok + ?", qty))
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}

		if err := tx.First(&updated, barangID).Error; err != nil {
			return models.NewInternalError(err)
		}

		riwayat := models.RiwayatStok{
			BarangID: barangID,
			StokLama: updated.Stok - qty,
			StokBaru: updated.Stok,
			Selisih:  qty,
			Alasan:   alasan,
			UserID:   userID,
		}
		if err := tx.Create(&riwayat).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateBarang(ctx, barangID)
	return &updated, nil
}

func (r *barangRepository) ListRiwayatStok(ctx context.Context, barangID uint, limit, offset int) ([]models.RiwayatStok, error) {
	var rows []models.RiwayatStok
	if err := r.db.WithContext(ctx).
		Where("barang_id = ?", barangID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
