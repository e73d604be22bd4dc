package service

import (
	"context"
	"time"

	"siap/internal/cache"
	"siap/internal/models"
	"siap/internal/repository"

	"gorm.io/gorm"
)

// LaporanService builds the reporting views: the admin dashboard and the
// usage report. Aggregations run as grouped queries on the DB handle.
type LaporanService struct {
	db             *gorm.DB
	permintaanRepo repository.PermintaanRepository
	barangRepo     repository.BarangRepository
}

type DashboardStats struct {
	TotalBarang        int64           `json:"total_barang"`
	TotalBarangKritis  int64           `json:"total_barang_kritis"`
	PermintaanMenunggu int64           `json:"permintaan_menunggu"`
	PermintaanHariIni  int64           `json:"permintaan_hari_ini"`
	BarangKritis       []models.Barang `json:"barang_kritis"`
}

// PemakaianBarang is one row of the usage report: how much of an item was
// actually handed out over the period.
type PemakaianBarang struct {
	BarangID        uint   `json:"id_barang"`
	KodeBarang      string `json:"kode_barang"`
	NamaBarang      string `json:"nama_barang"`
	Satuan          string `json:"satuan"`
	TotalDisetujui  int64  `json:"total_disetujui"`
	JumlahTransaksi int64  `json:"jumlah_transaksi"`
}

func NewLaporanService(db *gorm.DB, permintaanRepo repository.PermintaanRepository, barangRepo repository.BarangRepository) *LaporanService {
	return &LaporanService{
		db:             db,
		permintaanRepo: permintaanRepo,
		barangRepo:     barangRepo,
	}
}

func (s *LaporanService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	err := cache.Aside(ctx, cache.DashboardStatsKey, &stats, cache.DashboardTTL, func() error {
		if err := s.db.WithContext(ctx).
			Model(&models.Barang{}).
			Where("status_aktif = ?", true).
			Count(&stats.TotalBarang).Error; err != nil {
			return models.NewInternalError(err)
		}

		kritis, err := s.barangRepo.ListKritis(ctx)
		if err != nil {
			return err
		}
		stats.BarangKritis = kritis
		stats.TotalBarangKritis = int64(len(kritis))

		menunggu, err := s.permintaanRepo.CountByStatus(ctx, models.StatusMenunggu)
		if err != nil {
			return err
		}
		stats.PermintaanMenunggu = menunggu

		// Midnight in the server's zone, not UTC; deployments run in WIB.
		now := time.Now()
		awalHari := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if err := s.db.WithContext(ctx).
			Model(&models.Permintaan{}).
			Where("tanggal_permintaan >= ?", awalHari).
			Count(&stats.PermintaanHariIni).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Pemakaian aggregates approved quantities per item between dari and sampai
// (inclusive). Only terminal approved requests count; pending and rejected
// ones never moved stock.
func (s *LaporanService) Pemakaian(ctx context.Context, dari, sampai time.Time) ([]PemakaianBarang, error) {
	if sampai.Before(dari) {
		return nil, models.NewValidationError("Tanggal akhir tidak boleh sebelum tanggal awal")
	}

	var rows []PemakaianBarang
	err := s.db.WithContext(ctx).
		Table("detail_permintaan").
		Select(`barang.id AS barang_id,
			barang.kode_barang,
			barang.nama_barang,
			barang.satuan,
			SUM(detail_permintaan.jumlah_disetujui) AS total_disetujui,
			COUNT(DISTINCT permintaan.id) AS jumlah_transaksi`).
		Joins("JOIN permintaan ON permintaan.id = detail_permintaan.id_permintaan").
		Joins("JOIN barang ON barang.id = detail_permintaan.id_barang").
		Where("permintaan.status IN ?", []models.StatusPermintaan{models.StatusDisetujui, models.StatusDisetujuiSebagian}).
		Where("permintaan.tanggal_verifikasi >= ? AND permintaan.tanggal_verifikasi < ?", dari, sampai.AddDate(0, 0, 1)).
		Where("detail_permintaan.jumlah_disetujui > 0").
		Group("barang.id, barang.kode_barang, barang.nama_barang, barang.satuan").
		Order("total_disetujui DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
