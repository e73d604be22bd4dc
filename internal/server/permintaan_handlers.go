package server

import (
	"siap/internal/models"
	"siap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BuatPermintaan handles POST /api/permintaan
func (s *Server) BuatPermintaan(c *fiber.Ctx) error {
	var req struct {
		Catatan string                        `json:"catatan"`
		Items   []service.PermintaanItemInput `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	permintaan, err := s.permintaanService.BuatPermintaan(c.Context(), service.BuatPermintaanInput{
		PemohonID: currentUserID(c),
		Catatan:   req.Catatan,
		Items:     req.Items,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(permintaan)
}

// RiwayatPermintaan handles GET /api/permintaan/riwayat: the caller's own
// requests, newest first.
func (s *Server) RiwayatPermintaan(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	rows, err := s.permintaanService.RiwayatPermintaan(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rows)
}

// PermintaanMasuk handles GET /api/permintaan/masuk (admin). Defaults to
// pending requests; ?status= widens the view.
func (s *Server) PermintaanMasuk(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	status := models.StatusPermintaan(c.Query("status", string(models.StatusMenunggu)))
	if c.Query("status") == "semua" {
		status = ""
	}

	rows, err := s.permintaanService.PermintaanMasuk(c.Context(), status, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rows)
}

// GetPermintaan handles GET /api/permintaan/:id
func (s *Server) GetPermintaan(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	permintaan, err := s.permintaanService.GetPermintaan(c.Context(), id, caller.ID, caller.IsAdmin())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(permintaan)
}

// VerifikasiPermintaan handles PATCH /api/permintaan/:id/verifikasi
func (s *Server) VerifikasiPermintaan(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Keputusan         string                       `json:"keputusan"`
		Items             []service.KeputusanItemInput `json:"items"`
		CatatanVerifikasi string                       `json:"catatan_verifikasi"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	permintaan, err := s.permintaanService.VerifikasiPermintaan(c.Context(), service.VerifikasiInput{
		PermintaanID:  id,
		VerifikatorID: currentUserID(c),
		Keputusan:     req.Keputusan,
		Catatan:       req.CatatanVerifikasi,
		Items:         req.Items,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(permintaan)
}
