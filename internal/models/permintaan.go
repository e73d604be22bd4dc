package models

import "time"

// StatusPermintaan is the lifecycle state of a goods request.
type StatusPermintaan string

const (
	// StatusMenunggu indicates the request is awaiting verification.
	StatusMenunggu StatusPermintaan = "Menunggu"
	// StatusDisetujui indicates every line was approved in full.
	StatusDisetujui StatusPermintaan = "Disetujui"
	// StatusDisetujuiSebagian indicates at least one line was reduced or zeroed.
	StatusDisetujuiSebagian StatusPermintaan = "Disetujui Sebagian"
	// StatusDitolak indicates the request was rejected outright.
	StatusDitolak StatusPermintaan = "Ditolak"
)

// Permintaan is a goods request submitted by a pegawai.
//
// UserVerifikatorID and TanggalVerifikasi are null exactly while the status
// is Menunggu; once set the request is terminal and immutable.
type Permintaan struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	UserPemohonID     uint               `gorm:"column:id_user_pemohon;not null;index" json:"id_user_pemohon"`
	Pemohon           *User              `gorm:"foreignKey:UserPemohonID" json:"pemohon,omitempty"`
	TanggalPermintaan time.Time          `gorm:"not null" json:"tanggal_permintaan"`
	Status            StatusPermintaan   `gorm:"type:varchar(30);not null;default:'Menunggu';index" json:"status"`
	Catatan           string             `gorm:"type:text" json:"catatan"`
	CatatanVerifikasi string             `gorm:"type:text" json:"catatan_verifikasi"`
	UserVerifikatorID *uint              `gorm:"column:id_user_verifikator" json:"id_user_verifikator"`
	Verifikator       *User              `gorm:"foreignKey:UserVerifikatorID" json:"verifikator,omitempty"`
	TanggalVerifikasi *time.Time         `json:"tanggal_verifikasi"`
	Detail            []DetailPermintaan `gorm:"foreignKey:PermintaanID;constraint:OnDelete:CASCADE" json:"detail,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// TableName keeps the legacy singular table name.
func (Permintaan) TableName() string { return "permintaan" }

// Terminal reports whether the request has received its final decision.
func (p *Permintaan) Terminal() bool {
	return p.Status != StatusMenunggu
}

// DetailPermintaan is one line item of a request. It is lifecycle-bound to
// its header (cascade delete). Invariant: 0 <= JumlahDisetujui <= JumlahDiminta.
type DetailPermintaan struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	PermintaanID    uint    `gorm:"column:id_permintaan;not null;index" json:"id_permintaan"`
	BarangID        uint    `gorm:"column:id_barang;not null;index" json:"id_barang"`
	Barang          *Barang `gorm:"foreignKey:BarangID" json:"barang,omitempty"`
	JumlahDiminta   int     `gorm:"not null" json:"jumlah_diminta"`
	JumlahDisetujui int     `gorm:"not null;default:0" json:"jumlah_disetujui"`
}

// TableName keeps the legacy singular table name.
func (DetailPermintaan) TableName() string { return "detail_permintaan" }
