package server

import (
	"siap/internal/models"
	"siap/internal/service"
	"siap/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		NamaLengkap string `json:"nama_lengkap"`
		UnitKerja   string `json:"unit_kerja"`
		Password    string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Password != "" {
		if err := validation.ValidatePassword(req.Password); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	user, err := s.userService.UpdateUser(c.Context(), service.UpdateUserInput{
		UserID:      id,
		NamaLengkap: req.NamaLengkap,
		UnitKerja:   req.UnitKerja,
		Password:    req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// ActivateUser handles POST /api/users/:id/aktifkan
func (s *Server) ActivateUser(c *fiber.Ctx) error {
	return s.setUserStatus(c, true)
}

// DeactivateUser handles POST /api/users/:id/nonaktifkan
func (s *Server) DeactivateUser(c *fiber.Ctx) error {
	return s.setUserStatus(c, false)
}

func (s *Server) setUserStatus(c *fiber.Ctx, aktif bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Admins cannot deactivate themselves; that would lock the last door.
	if !aktif && id == currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Tidak dapat menonaktifkan akun sendiri"))
	}

	user, err := s.userService.SetStatusAktif(c.Context(), id, aktif)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
