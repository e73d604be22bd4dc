package server

import (
	"time"

	"siap/internal/models"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// Dashboard handles GET /api/laporan/dashboard
func (s *Server) Dashboard(c *fiber.Ctx) error {
	stats, err := s.laporanService.Dashboard(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// LaporanPemakaian handles GET /api/laporan/pemakaian?dari=YYYY-MM-DD&sampai=YYYY-MM-DD.
// Defaults to the current month.
func (s *Server) LaporanPemakaian(c *fiber.Ctx) error {
	now := time.Now()
	dari := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	sampai := now

	if q := c.Query("dari"); q != "" {
		parsed, err := time.ParseInLocation(dateLayout, q, now.Location())
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Format tanggal 'dari' harus YYYY-MM-DD"))
		}
		dari = parsed
	}
	if q := c.Query("sampai"); q != "" {
		parsed, err := time.ParseInLocation(dateLayout, q, now.Location())
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Format tanggal 'sampai' harus YYYY-MM-DD"))
		}
		sampai = parsed
	}

	rows, err := s.laporanService.Pemakaian(c.Context(), dari, sampai)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"dari":    dari.Format(dateLayout),
		"sampai":  sampai.Format(dateLayout),
		"rincian": rows,
	})
}
