package server

import (
	"siap/internal/models"
	"siap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBarangList handles GET /api/barang
func (s *Server) GetBarangList(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	includeInactive := c.QueryBool("semua", false)

	items, err := s.barangService.ListBarang(c.Context(), includeInactive, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}

// GetBarangKritis handles GET /api/barang/kritis
func (s *Server) GetBarangKritis(c *fiber.Ctx) error {
	items, err := s.barangService.ListBarangKritis(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}

// GetBarang handles GET /api/barang/:id
func (s *Server) GetBarang(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	barang, err := s.barangService.GetBarangByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(barang)
}

// CreateBarang handles POST /api/barang
func (s *Server) CreateBarang(c *fiber.Ctx) error {
	var req struct {
		KodeBarang        string `json:"kode_barang"`
		NamaBarang        string `json:"nama_barang"`
		Satuan            string `json:"satuan"`
		Stok              int    `json:"stok"`
		AmbangBatasKritis int    `json:"ambang_batas_kritis"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	barang, err := s.barangService.CreateBarang(c.Context(), service.CreateBarangInput{
		KodeBarang:        req.KodeBarang,
		NamaBarang:        req.NamaBarang,
		Satuan:            req.Satuan,
		Stok:              req.Stok,
		AmbangBatasKritis: req.AmbangBatasKritis,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(barang)
}

// UpdateBarang handles PUT /api/barang/:id
func (s *Server) UpdateBarang(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		KodeBarang        string `json:"kode_barang"`
		NamaBarang        string `json:"nama_barang"`
		Satuan            string `json:"satuan"`
		AmbangBatasKritis *int   `json:"ambang_batas_kritis"`
		StatusAktif       *bool  `json:"status_aktif"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	barang, err := s.barangService.UpdateBarang(c.Context(), service.UpdateBarangInput{
		BarangID:          id,
		KodeBarang:        req.KodeBarang,
		NamaBarang:        req.NamaBarang,
		Satuan:            req.Satuan,
		AmbangBatasKritis: req.AmbangBatasKritis,
		StatusAktif:       req.StatusAktif,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(barang)
}

// DeactivateBarang handles DELETE /api/barang/:id. Items are never hard
// deleted; detail lines keep referencing them.
func (s *Server) DeactivateBarang(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.barangService.DeactivateBarang(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Barang dinonaktifkan"})
}

// TambahStok handles POST /api/barang/:id/tambah-stok
func (s *Server) TambahStok(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Jumlah int    `json:"jumlah"`
		Alasan string `json:"alasan"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	barang, err := s.barangService.TambahStok(c.Context(), service.TambahStokInput{
		BarangID: id,
		Jumlah:   req.Jumlah,
		UserID:   currentUserID(c),
		Alasan:   req.Alasan,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(barang)
}

// GetRiwayatStok handles GET /api/barang/:id/riwayat-stok
func (s *Server) GetRiwayatStok(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	rows, err := s.barangService.RiwayatStok(c.Context(), id, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rows)
}
