package models

import "time"

// Barang is an inventory item. Stok is only ever decremented by approved
// verification quantities and must never go negative.
//
// KodeBarang intentionally carries no unique constraint: legacy stock
// batches were re-registered under existing codes, so lookups must never
// assume a code maps to a single row.
type Barang struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	KodeBarang        string    `gorm:"size:60;not null;index" json:"kode_barang"`
	NamaBarang        string    `gorm:"size:180;not null" json:"nama_barang"`
	Satuan            string    `gorm:"size:40;not null" json:"satuan"`
	Stok              int       `gorm:"not null;default:0" json:"stok"`
	AmbangBatasKritis int       `gorm:"not null;default:0" json:"ambang_batas_kritis"`
	StatusAktif       bool      `gorm:"not null;default:true" json:"status_aktif"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName keeps the legacy singular table name.
func (Barang) TableName() string { return "barang" }

// StokKritis reports whether the item is at or below its critical threshold.
func (b *Barang) StokKritis() bool {
	return b.Stok <= b.AmbangBatasKritis
}

// RiwayatStok is an audit row written for every stock mutation, both manual
// additions and verification decrements.
type RiwayatStok struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BarangID  uint      `gorm:"not null;index" json:"id_barang"`
	Barang    *Barang   `gorm:"foreignKey:BarangID" json:"barang,omitempty"`
	StokLama  int       `gorm:"not null" json:"stok_lama"`
	StokBaru  int       `gorm:"not null" json:"stok_baru"`
	Selisih   int       `gorm:"not null" json:"selisih"`
	Alasan    string    `gorm:"size:255" json:"alasan"`
	UserID    uint      `gorm:"not null;index" json:"id_user"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the legacy singular table name.
func (RiwayatStok) TableName() string { return "riwayat_stok" }
