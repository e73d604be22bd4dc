// Package seed provides helpers to create demo data for the SIAP database.
// These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"siap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumPegawai    int
	NumPermintaan int
	// SkipBcrypt stores plaintext passwords; dev fast mode only.
	SkipBcrypt bool
}

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

var barangKatalog = []struct {
	Kode   string
	Nama   string
	Satuan string
}{
	{"ATK-001", "Pulpen Hitam", "pcs"},
	{"ATK-002", "Pulpen Biru", "pcs"},
	{"ATK-003", "Pensil 2B", "pcs"},
	{"ATK-004", "Kertas A4 80gr", "rim"},
	{"ATK-005", "Kertas F4 70gr", "rim"},
	{"ATK-006", "Map Ordner", "pcs"},
	{"ATK-007", "Stapler", "pcs"},
	{"ATK-008", "Isi Stapler No.10", "box"},
	{"ATK-009", "Amplop Coklat", "pak"},
	{"ATK-010", "Tinta Printer Hitam", "botol"},
	{"ATK-011", "Spidol Whiteboard", "lusin"},
	{"ATK-012", "Buku Agenda", "pcs"},
}

var unitKerjaList = []string{
	"Bagian Umum", "Kepegawaian", "Keuangan", "Perencanaan",
	"Hukum", "Humas", "Teknologi Informasi",
}

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes seeded tables in dependency order.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"riwayat_stok", "detail_permintaan", "permintaan", "barang", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("cleared existing data")
	return nil
}

func (s *Seeder) hashPassword() string {
	if s.opts.SkipBcrypt {
		return DefaultPassword
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	return string(hashed)
}

// SeedUsers creates one admin plus the configured number of pegawai.
func (s *Seeder) SeedUsers() ([]models.User, error) {
	password := s.hashPassword()

	admin := models.User{
		Username:    "admin",
		NamaLengkap: "Administrator SIAP",
		Password:    password,
		Role:        models.RoleAdmin,
		UnitKerja:   "Bagian Umum",
		StatusAktif: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	n := s.opts.NumPegawai
	if n <= 0 {
		n = 10
	}

	users := []models.User{admin}
	for i := 0; i < n; i++ {
		nama := gofakeit.Name()
		username := fmt.Sprintf("%s%d",
			strings.ToLower(strings.ReplaceAll(nama, " ", ".")), gofakeit.Number(10, 99))

		user := models.User{
			Username:    username,
			NamaLengkap: nama,
			Password:    password,
			Role:        models.RolePegawai,
			UnitKerja:   unitKerjaList[s.rng.Intn(len(unitKerjaList))],
			StatusAktif: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("seeded %d users (1 admin)", len(users))
	return users, nil
}

// SeedBarang creates the ATK catalogue with randomized stock levels.
func (s *Seeder) SeedBarang() ([]models.Barang, error) {
	items := make([]models.Barang, 0, len(barangKatalog))
	for _, b := range barangKatalog {
		item := models.Barang{
			KodeBarang:        b.Kode,
			NamaBarang:        b.Nama,
			Satuan:            b.Satuan,
			Stok:              gofakeit.Number(20, 300),
			AmbangBatasKritis: gofakeit.Number(5, 20),
			StatusAktif:       true,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	log.Printf("seeded %d barang", len(items))
	return items, nil
}

// SeedPermintaan creates historical requests across every lifecycle state.
// Terminal requests carry a verifier, a decision timestamp and matching
// audit rows; pending ones stay untouched.
func (s *Seeder) SeedPermintaan(users []models.User, barang []models.Barang) error {
	var admin *models.User
	var pegawai []models.User
	for i := range users {
		if users[i].IsAdmin() {
			admin = &users[i]
		} else {
			pegawai = append(pegawai, users[i])
		}
	}
	if admin == nil || len(pegawai) == 0 || len(barang) == 0 {
		return fmt.Errorf("seed users and barang first")
	}

	n := s.opts.NumPermintaan
	if n <= 0 {
		n = 30
	}

	statuses := []models.StatusPermintaan{
		models.StatusMenunggu,
		models.StatusDisetujui,
		models.StatusDisetujuiSebagian,
		models.StatusDitolak,
	}

	for i := 0; i < n; i++ {
		pemohon := pegawai[s.rng.Intn(len(pegawai))]
		status := statuses[s.rng.Intn(len(statuses))]
		tanggal := time.Now().AddDate(0, 0, -s.rng.Intn(60))

		permintaan := models.Permintaan{
			UserPemohonID:     pemohon.ID,
			TanggalPermintaan: tanggal,
			Status:            models.StatusMenunggu,
			Catatan:           gofakeit.Sentence(6),
		}

		lines := 1 + s.rng.Intn(3)
		for j := 0; j < lines; j++ {
			item := barang[s.rng.Intn(len(barang))]
			permintaan.Detail = append(permintaan.Detail, models.DetailPermintaan{
				BarangID:      item.ID,
				JumlahDiminta: 1 + s.rng.Intn(10),
			})
		}

		if err := s.db.Create(&permintaan).Error; err != nil {
			return err
		}
		if status == models.StatusMenunggu {
			continue
		}

		if err := s.decide(&permintaan, admin.ID, status, tanggal); err != nil {
			return err
		}
	}

	log.Printf("seeded %d permintaan", n)
	return nil
}

// decide replays a historical verification outcome onto a seeded request.
func (s *Seeder) decide(p *models.Permintaan, adminID uint, status models.StatusPermintaan, tanggal time.Time) error {
	verifiedAt := tanggal.Add(time.Duration(1+s.rng.Intn(48)) * time.Hour)

	for i := range p.Detail {
		d := &p.Detail[i]
		switch status {
		case models.StatusDitolak:
			d.JumlahDisetujui = 0
		case models.StatusDisetujui:
			d.JumlahDisetujui = d.JumlahDiminta
		case models.StatusDisetujuiSebagian:
			d.JumlahDisetujui = s.rng.Intn(d.JumlahDiminta)
		}

		if err := s.db.Model(&models.DetailPermintaan{}).
			Where("id = ?", d.ID).
			Update("jumlah_disetujui", d.JumlahDisetujui).Error; err != nil {
			return err
		}
		if d.JumlahDisetujui == 0 {
			continue
		}

		var item models.Barang
		if err := s.db.First(&item, d.BarangID).Error; err != nil {
			return err
		}
		if item.Stok < d.JumlahDisetujui {
			// Seeded history must not drive stock negative; skip the decrement.
			d.JumlahDisetujui = 0
			if err := s.db.Model(&models.DetailPermintaan{}).
				Where("id = ?", d.ID).
				Update("jumlah_disetujui", 0).Error; err != nil {
				return err
			}
			continue
		}

		if err := s.db.Model(&models.Barang{}).
			Where("id = ?", d.BarangID).
			Update("stok", gorm.Expr("stok - ?", d.JumlahDisetujui)).Error; err != nil {
			return err
		}
		riwayat := models.RiwayatStok{
			BarangID: d.BarangID,
			StokLama: item.Stok,
			StokBaru: item.Stok - d.JumlahDisetujui,
			Selisih:  -d.JumlahDisetujui,
			Alasan:   fmt.Sprintf("Verifikasi permintaan #%d", p.ID),
			UserID:   adminID,
		}
		riwayat.CreatedAt = verifiedAt
		if err := s.db.Create(&riwayat).Error; err != nil {
			return err
		}
	}

	return s.db.Model(&models.Permintaan{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":              status,
			"id_user_verifikator": adminID,
			"tanggal_verifikasi":  verifiedAt,
			"catatan_verifikasi":  gofakeit.Sentence(5),
		}).Error
}

// Run executes the full seeding pipeline.
func (s *Seeder) Run() error {
	users, err := s.SeedUsers()
	if err != nil {
		return err
	}
	barang, err := s.SeedBarang()
	if err != nil {
		return err
	}
	return s.SeedPermintaan(users, barang)
}
