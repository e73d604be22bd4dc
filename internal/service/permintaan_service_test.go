package service

import (
	"context"
	"testing"

	"siap/internal/database"
	"siap/internal/models"
	"siap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newPermintaanFixture wires the service against an in-memory DB so the
// guarded updates run against real SQL.
func newPermintaanFixture(t *testing.T) (*PermintaanService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewPermintaanService(db,
		repository.NewPermintaanRepository(db),
		repository.NewBarangRepository(db))
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:    username,
		NamaLengkap: username,
		Password:    "hashed",
		Role:        role,
		StatusAktif: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBarang(t *testing.T, db *gorm.DB, nama string, stok int) *models.Barang {
	t.Helper()
	barang := &models.Barang{
		KodeBarang:        "ATK-" + nama,
		NamaBarang:        nama,
		Satuan:            "pcs",
		Stok:              stok,
		AmbangBatasKritis: 5,
		StatusAktif:       true,
	}
	require.NoError(t, db.Create(barang).Error)
	return barang
}

func TestBuatPermintaan_StartsMenunggu(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Catatan:   "Kebutuhan rapat",
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusMenunggu, p.Status)
	assert.Nil(t, p.UserVerifikatorID)
	assert.Nil(t, p.TanggalVerifikasi)
	require.Len(t, p.Detail, 1)
	assert.Equal(t, 10, p.Detail[0].JumlahDiminta)
	assert.Equal(t, 0, p.Detail[0].JumlahDisetujui)

	// Creation never touches stock.
	var reloaded models.Barang
	require.NoError(t, db.First(&reloaded, pulpen.ID).Error)
	assert.Equal(t, 100, reloaded.Stok)
}

func TestBuatPermintaan_Validation(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	nonaktif := seedBarang(t, db, "Lakban", 10)
	require.NoError(t, db.Model(nonaktif).Update("status_aktif", false).Error)

	tests := []struct {
		name  string
		items []PermintaanItemInput
	}{
		{"no items", nil},
		{"zero quantity", []PermintaanItemInput{{BarangID: 1, Jumlah: 0}}},
		{"inactive item", []PermintaanItemInput{{BarangID: nonaktif.ID, Jumlah: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
				PemohonID: pegawai.ID,
				Items:     tt.items,
			})
			requireAppError(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestVerifikasi_Setuju(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 30}},
	})
	require.NoError(t, err)

	out, err := svc.VerifikasiPermintaan(context.Background(), VerifikasiInput{
		PermintaanID:  p.ID,
		VerifikatorID: admin.ID,
		Keputusan:     KeputusanSetuju,
		Items:         []KeputusanItemInput{{DetailID: p.Detail[0].ID, JumlahDisetujui: 30}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDisetujui, out.Status)
	require.NotNil(t, out.UserVerifikatorID)
	assert.Equal(t, admin.ID, *out.UserVerifikatorID)
	assert.NotNil(t, out.TanggalVerifikasi)
	assert.Equal(t, 30, out.Detail[0].JumlahDisetujui)

	var barang models.Barang
	require.NoError(t, db.First(&barang, pulpen.ID).Error)
	assert.Equal(t, 70, barang.Stok)

	var riwayat []models.RiwayatStok
	require.NoError(t, db.Where("barang_id = ?", pulpen.ID).Find(&riwayat).Error)
	require.Len(t, riwayat, 1)
	assert.Equal(t, 100, riwayat[0].StokLama)
	assert.Equal(t, 70, riwayat[0].StokBaru)
	assert.Equal(t, -30, riwayat[0].Selisih)
	assert.Equal(t, admin.ID, riwayat[0].UserID)
}

func TestVerifikasi_SetujuRequiresFullQuantities(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 30}},
	})
	require.NoError(t, err)

	_, err = svc.VerifikasiPermintaan(context.Background(), VerifikasiInput{
		PermintaanID:  p.ID,
		VerifikatorID: admin.ID,
		Keputusan:     KeputusanSetuju,
		Items:         []KeputusanItemInput{{DetailID: p.Detail[0].ID, JumlahDisetujui: 20}},
	})
	requireAppError(t, err, "VALIDATION_ERROR")

	// Failed verification leaves the request pending and stock untouched.
	var header models.Permintaan
	require.NoError(t, db.First(&header, p.ID).Error)
	assert.Equal(t, models.StatusMenunggu, header.Status)
}

func TestVerifikasi_TolakZeroesLinesAndKeepsStock(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 30}},
	})
	require.NoError(t, err)

	// Submitted quantities are ignored on rejection.
	out, err := svc.VerifikasiPermintaan(context.Background(), VerifikasiInput{
		PermintaanID:  p.ID,
		VerifikatorID: admin.ID,
		Keputusan:     KeputusanTolak,
		Catatan:       "Stok dialihkan",
		Items:         []KeputusanItemInput{{DetailID: p.Detail[0].ID, JumlahDisetujui: 30}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDitolak, out.Status)
	assert.Equal(t, 0, out.Detail[0].JumlahDisetujui)
	assert.Equal(t, "Stok dialihkan", out.CatatanVerifikasi)

	var barang models.Barang
	require.NoError(t, db.First(&barang, pulpen.ID).Error)
	assert.Equal(t, 100, barang.Stok)

	var count int64
	require.NoError(t, db.Model(&models.RiwayatStok{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Five lines of one item, four approved at 10 and one zeroed. Mirrors the
// reference scenario for partial approval.
func TestVerifikasi_Sebagian(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	items := make([]PermintaanItemInput, 5)
	for i := range items {
		items[i] = PermintaanItemInput{BarangID: pulpen.ID, Jumlah: 10}
	}
	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items:     items,
	})
	require.NoError(t, err)
	require.Len(t, p.Detail, 5)

	decisions := make([]KeputusanItemInput, 5)
	for i, d := range p.Detail {
		qty := 10
		if i == 4 {
			qty = 0
		}
		decisions[i] = KeputusanItemInput{DetailID: d.ID, JumlahDisetujui: qty}
	}

	out, err := svc.VerifikasiPermintaan(context.Background(), VerifikasiInput{
		PermintaanID:  p.ID,
		VerifikatorID: admin.ID,
		Keputusan:     KeputusanSebagian,
		Items:         decisions,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDisetujuiSebagian, out.Status)
	assert.Equal(t, 0, out.Detail[4].JumlahDisetujui)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 10, out.Detail[i].JumlahDisetujui)
	}

	var barang models.Barang
	require.NoError(t, db.First(&barang, pulpen.ID).Error)
	assert.Equal(t, 60, barang.Stok)
}

func TestVerifikasi_SebagianFullyApprovedNormalizes(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 10}},
	})
	require.NoError(t, err)

	out, err := svc.VerifikasiPermintaan(context.Background(), VerifikasiInput{
		PermintaanID:  p.ID,
		VerifikatorID: admin.ID,
		Keputusan:     KeputusanSebagian,
		Items:         []KeputusanItemInput{{DetailID: p.Detail[0].ID, JumlahDisetujui: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisetujui, out.Status)
}

func TestVerifikasi_LineBoundsValidation(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 10}},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		items []KeputusanItemInput
	}{
		{"empty decisions", nil},
		{"over requested", []KeputusanItemInput{{DetailID: p.Detail[0].ID, JumlahDisetujui: 11}}},
		{"negative", []KeputusanItemInput{{DetailID: p.Detail[0].ID, JumlahDisetujui: -1}}},
		{"foreign line", []KeputusanItemInput{{DetailID: 9999, JumlahDisetujui: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifikasiPermintaan(context.Background(), VerifikasiInput{
				PermintaanID:  p.ID,
				VerifikatorID: admin.ID,
				Keputusan:     KeputusanSebagian,
				Items:         tt.items,
			})
			requireAppError(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestVerifikasi_TerminalIsImmutable(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 10}},
	})
	require.NoError(t, err)

	decision := VerifikasiInput{
		PermintaanID:  p.ID,
		VerifikatorID: admin.ID,
		Keputusan:     KeputusanSetuju,
		Items:         []KeputusanItemInput{{DetailID: p.Detail[0].ID, JumlahDisetujui: 10}},
	}
	_, err = svc.VerifikasiPermintaan(context.Background(), decision)
	require.NoError(t, err)

	_, err = svc.VerifikasiPermintaan(context.Background(), decision)
	requireAppError(t, err, "CONFLICT")

	// Stock was only decremented once.
	var barang models.Barang
	require.NoError(t, db.First(&barang, pulpen.ID).Error)
	assert.Equal(t, 90, barang.Stok)
}

func TestVerifikasi_InsufficientStockRollsBack(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	pegawai := seedUser(t, db, "budi", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)
	kertas := seedBarang(t, db, "Kertas", 3)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: pegawai.ID,
		Items: []PermintaanItemInput{
			{BarangID: pulpen.ID, Jumlah: 10},
			{BarangID: kertas.ID, Jumlah: 10},
		},
	})
	require.NoError(t, err)

	// Stock dropped after the request was created.
	_, err = svc.VerifikasiPermintaan(context.Background(), VerifikasiInput{
		PermintaanID:  p.ID,
		VerifikatorID: admin.ID,
		Keputusan:     KeputusanSetuju,
		Items: []KeputusanItemInput{
			{DetailID: p.Detail[0].ID, JumlahDisetujui: 10},
			{DetailID: p.Detail[1].ID, JumlahDisetujui: 10},
		},
	})
	requireAppError(t, err, "CONFLICT")

	// Nothing committed: header still pending, both stocks intact.
	var header models.Permintaan
	require.NoError(t, db.Preload("Detail").First(&header, p.ID).Error)
	assert.Equal(t, models.StatusMenunggu, header.Status)
	assert.Nil(t, header.UserVerifikatorID)
	for _, d := range header.Detail {
		assert.Equal(t, 0, d.JumlahDisetujui)
	}

	var b models.Barang
	require.NoError(t, db.First(&b, pulpen.ID).Error)
	assert.Equal(t, 100, b.Stok)
	b = models.Barang{}
	require.NoError(t, db.First(&b, kertas.ID).Error)
	assert.Equal(t, 3, b.Stok)
}

func TestGetPermintaan_OwnershipScoping(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	budi := seedUser(t, db, "budi", models.RolePegawai)
	siti := seedUser(t, db, "siti", models.RolePegawai)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	p, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
		PemohonID: budi.ID,
		Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 5}},
	})
	require.NoError(t, err)

	_, err = svc.GetPermintaan(context.Background(), p.ID, budi.ID, false)
	assert.NoError(t, err)

	// Another pegawai sees not-found, not forbidden.
	_, err = svc.GetPermintaan(context.Background(), p.ID, siti.ID, false)
	requireAppError(t, err, "NOT_FOUND")

	_, err = svc.GetPermintaan(context.Background(), p.ID, admin.ID, true)
	assert.NoError(t, err)
}

func TestRiwayatPermintaan_OnlyOwnRows(t *testing.T) {
	svc, db := newPermintaanFixture(t)
	budi := seedUser(t, db, "budi", models.RolePegawai)
	siti := seedUser(t, db, "siti", models.RolePegawai)
	pulpen := seedBarang(t, db, "Pulpen", 100)

	for _, u := range []*models.User{budi, budi, siti} {
		_, err := svc.BuatPermintaan(context.Background(), BuatPermintaanInput{
			PemohonID: u.ID,
			Items:     []PermintaanItemInput{{BarangID: pulpen.ID, Jumlah: 1}},
		})
		require.NoError(t, err)
	}

	rows, err := svc.RiwayatPermintaan(context.Background(), budi.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, budi.ID, r.UserPemohonID)
	}
}
