package service

import (
	"context"

	"siap/internal/models"
	"siap/internal/repository"
)

type BarangService struct {
	barangRepo repository.BarangRepository
}

type CreateBarangInput struct {
	KodeBarang        string
	NamaBarang        string
	Satuan            string
	Stok              int
	AmbangBatasKritis int
}

type UpdateBarangInput struct {
	BarangID          uint
	KodeBarang        string
	NamaBarang        string
	Satuan            string
	AmbangBatasKritis *int
	StatusAktif       *bool
}

type TambahStokInput struct {
	BarangID uint
	Jumlah   int
	UserID   uint
	Alasan   string
}

func NewBarangService(barangRepo repository.BarangRepository) *BarangService {
	return &BarangService{barangRepo: barangRepo}
}

func (s *BarangService) ListBarang(ctx context.Context, includeInactive bool, limit, offset int) ([]models.Barang, error) {
	return s.barangRepo.List(ctx, includeInactive, limit, offset)
}

func (s *BarangService) GetBarangByID(ctx context.Context, id uint) (*models.Barang, error) {
	return s.barangRepo.GetByID(ctx, id)
}

func (s *BarangService) ListBarangKritis(ctx context.Context) ([]models.Barang, error) {
	return s.barangRepo.ListKritis(ctx)
}

func (s *BarangService) CreateBarang(ctx context.Context, in CreateBarangInput) (*models.Barang, error) {
	if in.KodeBarang == "" || in.NamaBarang == "" || in.Satuan == "" {
		return nil, models.NewValidationError("Kode, nama, dan satuan barang wajib diisi")
	}
	if in.Stok < 0 {
		return nil, models.NewValidationError("Stok awal tidak boleh negatif")
	}
	if in.AmbangBatasKritis < 0 {
		return nil, models.NewValidationError("Ambang batas kritis tidak boleh negatif")
	}

	barang := &models.Barang{
		KodeBarang:        in.KodeBarang,
		NamaBarang:        in.NamaBarang,
		Satuan:            in.Satuan,
		Stok:              in.Stok,
		AmbangBatasKritis: in.AmbangBatasKritis,
		StatusAktif:       true,
	}
	if err := s.barangRepo.Create(ctx, barang); err != nil {
		return nil, err
	}
	return barang, nil
}

func (s *BarangService) UpdateBarang(ctx context.Context, in UpdateBarangInput) (*models.Barang, error) {
	barang, err := s.barangRepo.GetByID(ctx, in.BarangID)
	if err != nil {
		return nil, err
	}

	if in.KodeBarang != "" {
		barang.KodeBarang = in.KodeBarang
	}
	if in.NamaBarang != "" {
		barang.NamaBarang = in.NamaBarang
	}
	if in.Satuan != "" {
		barang.Satuan = in.Satuan
	}
	if in.AmbangBatasKritis != nil {
		if *in.AmbangBatasKritis < 0 {
			return nil, models.NewValidationError("Ambang batas kritis tidak boleh negatif")
		}
		barang.AmbangBatasKritis = *in.AmbangBatasKritis
	}
	if in.StatusAktif != nil {
		barang.StatusAktif = *in.StatusAktif
	}

	if err := s.barangRepo.Update(ctx, barang); err != nil {
		return nil, err
	}
	return barang, nil
}

func (s *BarangService) DeactivateBarang(ctx context.Context, id uint) error {
	return s.barangRepo.Deactivate(ctx, id)
}

// TambahStok handles the corrective add-stock flow. Stock reductions only
// ever happen through request verification.
func (s *BarangService) TambahStok(ctx context.Context, in TambahStokInput) (*models.Barang, error) {
	if in.Jumlah < 1 {
		return nil, models.NewValidationError("Jumlah tambah stok minimal 1")
	}
	alasan := in.Alasan
	if alasan == "" {
		alasan = "Penambahan stok manual"
	}
	return s.barangRepo.TambahStok(ctx, in.BarangID, in.Jumlah, in.UserID, alasan)
}

func (s *BarangService) RiwayatStok(ctx context.Context, barangID uint, limit, offset int) ([]models.RiwayatStok, error) {
	if _, err := s.barangRepo.GetByID(ctx, barangID); err != nil {
		return nil, err
	}
	return s.barangRepo.ListRiwayatStok(ctx, barangID, limit, offset)
}
