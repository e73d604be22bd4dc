package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siap/internal/cache"
	"siap/internal/middleware"
	"siap/internal/models"
	"siap/internal/repository"

	"gorm.io/gorm"
)

// Keputusan values accepted by VerifikasiPermintaan.
const (
	KeputusanSetuju   = "setuju"
	KeputusanSebagian = "sebagian"
	KeputusanTolak    = "tolak"
)

// PermintaanService owns the goods-request lifecycle. Verification runs
// directly against the DB handle because the status transition and the stock
// decrements must commit or roll back together.
type PermintaanService struct {
	db             *gorm.DB
	permintaanRepo repository.PermintaanRepository
	barangRepo     repository.BarangRepository
}

type PermintaanItemInput struct {
	BarangID uint `json:"id_barang"`
	Jumlah   int  `json:"jumlah"`
}

type BuatPermintaanInput struct {
	PemohonID uint
	Catatan   string
	Items     []PermintaanItemInput
}

type KeputusanItemInput struct {
	DetailID        uint `json:"id_detail"`
	JumlahDisetujui int  `json:"jumlah_disetujui"`
}

type VerifikasiInput struct {
	PermintaanID  uint
	VerifikatorID uint
	Keputusan     string
	Catatan       string
	Items         []KeputusanItemInput
}

func NewPermintaanService(db *gorm.DB, permintaanRepo repository.PermintaanRepository, barangRepo repository.BarangRepository) *PermintaanService {
	return &PermintaanService{
		db:             db,
		permintaanRepo: permintaanRepo,
		barangRepo:     barangRepo,
	}
}

// BuatPermintaan records a new request in status Menunggu. Stock is not
// touched here; only verification moves stock.
func (s *PermintaanService) BuatPermintaan(ctx context.Context, in BuatPermintaanInput) (*models.Permintaan, error) {
	if len(in.Items) == 0 {
		return nil, models.NewValidationError("Permintaan harus memuat minimal satu barang")
	}

	// Multiple lines may reference the same item; legacy requests did this
	// when one batch was split across destinations.
	detail := make([]models.DetailPermintaan, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Jumlah < 1 {
			return nil, models.NewValidationError("Jumlah diminta minimal 1")
		}

		barang, err := s.barangRepo.GetByID(ctx, item.BarangID)
		if err != nil {
			return nil, err
		}
		if !barang.StatusAktif {
			return nil, models.NewValidationError(fmt.Sprintf("Barang %s sudah tidak aktif", barang.NamaBarang))
		}

		detail = append(detail, models.DetailPermintaan{
			BarangID:      item.BarangID,
			JumlahDiminta: item.Jumlah,
		})
	}

	permintaan := &models.Permintaan{
		UserPemohonID:     in.PemohonID,
		TanggalPermintaan: time.Now(),
		Status:            models.StatusMenunggu,
		Catatan:           in.Catatan,
		Detail:            detail,
	}
	if err := s.permintaanRepo.Create(ctx, permintaan); err != nil {
		return nil, err
	}
	return s.permintaanRepo.GetByID(ctx, permintaan.ID)
}

// RiwayatPermintaan lists the caller's own requests.
func (s *PermintaanService) RiwayatPermintaan(ctx context.Context, pemohonID uint, limit, offset int) ([]models.Permintaan, error) {
	return s.permintaanRepo.ListByPemohon(ctx, pemohonID, limit, offset)
}

// PermintaanMasuk lists requests across all requesters, optionally filtered
// by status. Admin-only callers.
func (s *PermintaanService) PermintaanMasuk(ctx context.Context, status models.StatusPermintaan, limit, offset int) ([]models.Permintaan, error) {
	switch status {
	case "", models.StatusMenunggu, models.StatusDisetujui, models.StatusDisetujuiSebagian, models.StatusDitolak:
	default:
		return nil, models.NewValidationError("Status filter tidak dikenal")
	}
	return s.permintaanRepo.ListAll(ctx, status, limit, offset)
}

// GetPermintaan fetches one request. Non-admins only ever see their own;
// anything else reads as not found so request IDs stay unguessable.
func (s *PermintaanService) GetPermintaan(ctx context.Context, id, callerID uint, callerIsAdmin bool) (*models.Permintaan, error) {
	permintaan, err := s.permintaanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !callerIsAdmin && permintaan.UserPemohonID != callerID {
		return nil, models.NewNotFoundError("Permintaan", id)
	}
	return permintaan, nil
}

// VerifikasiPermintaan applies the final decision to a pending request.
//
// Everything runs in one transaction. The status transition is a guarded
// conditional update keyed on status = Menunggu, so two concurrent verifiers
// cannot both claim the same request: the loser's update matches zero rows
// and the whole attempt rolls back with a conflict. Stock decrements use the
// same guarded pattern keyed on stok >= qty, so stock can never go negative
// no matter how the requests interleave.
func (s *PermintaanService) VerifikasiPermintaan(ctx context.Context, in VerifikasiInput) (*models.Permintaan, error) {
	if in.Keputusan != KeputusanSetuju && in.Keputusan != KeputusanSebagian && in.Keputusan != KeputusanTolak {
		return nil, models.NewValidationError("Keputusan harus setuju, sebagian, atau tolak")
	}

	var touchedBarang []uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var permintaan models.Permintaan
		if err := tx.Preload("Detail").First(&permintaan, in.PermintaanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Permintaan", in.PermintaanID)
			}
			return models.NewInternalError(err)
		}
		if permintaan.Terminal() {
			return models.NewConflictError("Permintaan sudah diverifikasi")
		}

		approved, err := resolveKeputusan(&permintaan, in.Keputusan, in.Items)
		if err != nil {
			return err
		}

		finalStatus := finalStatusFor(&permintaan, in.Keputusan, approved)

		// Claim the request. A zero-row update means someone else got here
		// first between our read and now.
		now := time.Now()
		res := tx.Model(&models.Permintaan{}).
			Where("id = ? AND status = ?", permintaan.ID, models.StatusMenunggu).
			Updates(map[string]interface{}{
				"status":              finalStatus,
				"id_user_verifikator": in.VerifikatorID,
				"tanggal_verifikasi":  now,
				"catatan_verifikasi":  in.Catatan,
			})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewConflictError("Permintaan sudah diverifikasi")
		}

		for i := range permintaan.Detail {
			d := &permintaan.Detail[i]
			qty := approved[d.ID]

			if err := tx.Model(&models.DetailPermintaan{}).
				Where("id = ?", d.ID).
				UpdateColumn("jumlah_disetujui", qty).Error; err != nil {
				return models.NewInternalError(err)
			}
			if qty == 0 {
				continue
			}

			// Guarded decrement. Insufficient stock rolls the whole
			// decision back rather than partially fulfilling it.
			res := tx.Model(&models.Barang{}).
				Where("id = ? AND stok >= ?", d.BarangID, qty).
				UpdateColumn("stok", gorm.Expr("stok - ?", qty))
			if res.Error != nil {
				return models.NewInternalError(res.Error)
			}
			if res.RowsAffected == 0 {
				middleware.StokKonflik.Inc()
				return models.NewConflictError(fmt.Sprintf("Stok barang #%d tidak mencukupi", d.BarangID))
			}

			var barang models.Barang
			if err := tx.First(&barang, d.BarangID).Error; err != nil {
				return models.NewInternalError(err)
			}
			riwayat := models.RiwayatStok{
				BarangID: d.BarangID,
				StokLama: barang.Stok + qty,
				StokBaru: barang.Stok,
				Selisih:  -qty,
				Alasan:   fmt.Sprintf("Verifikasi permintaan #%d", permintaan.ID),
				UserID:   in.VerifikatorID,
			}
			if err := tx.Create(&riwayat).Error; err != nil {
				return models.NewInternalError(err)
			}
			touchedBarang = append(touchedBarang, d.BarangID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range touchedBarang {
		cache.InvalidateBarang(ctx, id)
	}

	result, err := s.permintaanRepo.GetByID(ctx, in.PermintaanID)
	if err != nil {
		return nil, err
	}
	middleware.VerifikasiDecisions.WithLabelValues(string(result.Status)).Inc()
	return result, nil
}

// resolveKeputusan maps the decision onto per-line approved quantities.
// Every submitted line must belong to the request; lines not mentioned
// default to zero (or to full approval under setuju).
func resolveKeputusan(p *models.Permintaan, keputusan string, items []KeputusanItemInput) (map[uint]int, error) {
	if len(items) == 0 {
		return nil, models.NewValidationError("Keputusan harus menyertakan rincian per barang")
	}

	byID := make(map[uint]*models.DetailPermintaan, len(p.Detail))
	for i := range p.Detail {
		byID[p.Detail[i].ID] = &p.Detail[i]
	}
	for _, item := range items {
		if _, ok := byID[item.DetailID]; !ok {
			return nil, models.NewValidationError(fmt.Sprintf("Detail #%d bukan bagian dari permintaan ini", item.DetailID))
		}
	}

	approved := make(map[uint]int, len(p.Detail))

	switch keputusan {
	case KeputusanTolak:
		// Rejection zeroes every line regardless of the submitted quantities.
		for id := range byID {
			approved[id] = 0
		}
		return approved, nil

	case KeputusanSetuju:
		for id, d := range byID {
			approved[id] = d.JumlahDiminta
		}
		for _, item := range items {
			if item.JumlahDisetujui != byID[item.DetailID].JumlahDiminta {
				return nil, models.NewValidationError("Keputusan setuju harus menyetujui seluruh jumlah yang diminta")
			}
		}
		return approved, nil

	case KeputusanSebagian:
		for id := range byID {
			approved[id] = 0
		}
		for _, item := range items {
			d := byID[item.DetailID]
			if item.JumlahDisetujui < 0 || item.JumlahDisetujui > d.JumlahDiminta {
				return nil, models.NewValidationError(fmt.Sprintf("Jumlah disetujui detail #%d harus antara 0 dan %d", item.DetailID, d.JumlahDiminta))
			}
			approved[item.DetailID] = item.JumlahDisetujui
		}
		return approved, nil
	}
	return nil, models.NewValidationError("Keputusan tidak dikenal")
}

// finalStatusFor picks the stored status. A sebagian decision that ends up
// approving every line in full is recorded as Disetujui.
func finalStatusFor(p *models.Permintaan, keputusan string, approved map[uint]int) models.StatusPermintaan {
	switch keputusan {
	case KeputusanTolak:
		return models.StatusDitolak
	case KeputusanSetuju:
		return models.StatusDisetujui
	}

	full := true
	for i := range p.Detail {
		if approved[p.Detail[i].ID] != p.Detail[i].JumlahDiminta {
			full = false
			break
		}
	}
	if full {
		return models.StatusDisetujui
	}
	return models.StatusDisetujuiSebagian
}
