// Package models contains the GORM entities and shared error types for SIAP.
package models

import "time"

// Role is the single capability a principal carries: admin or pegawai.
type Role string

const (
	// RoleAdmin manages inventory and users and verifies requests.
	RoleAdmin Role = "admin"
	// RolePegawai submits goods requests and sees only their own.
	RolePegawai Role = "pegawai"
)

// User is an account that can log in to SIAP. Accounts are created by an
// admin (or seed data) and deactivated rather than deleted, because
// permintaan rows keep referencing them.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:120;not null" json:"username"`
	NamaLengkap string    `gorm:"size:180;not null" json:"nama_lengkap"`
	Password    string    `gorm:"not null" json:"-"`
	Role        Role      `gorm:"type:varchar(20);not null;default:'pegawai';index" json:"role"`
	UnitKerja   string    `gorm:"size:120" json:"unit_kerja"`
	StatusAktif bool      `gorm:"not null;default:true" json:"status_aktif"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin capability.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
