package server

import (
	"fmt"
	"strconv"
	"time"

	"siap/internal/cache"
	"siap/internal/models"
	"siap/internal/service"
	"siap/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 8 * time.Hour

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Username atau password salah"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Username atau password salah"))
	}

	// Deactivated accounts keep their history but cannot sign in.
	if !user.StatusAktif {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Akun sudah dinonaktifkan"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Register handles POST /api/auth/register. Admin only: SIAP has no
// self-service signup, accounts are provisioned for staff.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username    string `json:"username"`
		NamaLengkap string `json:"nama_lengkap"`
		Password    string `json:"password"`
		Role        string `json:"role"`
		UnitKerja   string `json:"unit_kerja"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RolePegawai
	}

	user, err := s.userService.CreateUser(c.Context(), service.CreateUserInput{
		Username:    req.Username,
		NamaLengkap: req.NamaLengkap,
		Password:    req.Password,
		Role:        role,
		UnitKerja:   req.UnitKerja,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Logout handles POST /api/auth/logout by blacklisting the token's JTI for
// the remainder of its lifetime.
func (s *Server) Logout(c *fiber.Ctx) error {
	tokenString := extractBearer(c)
	if tokenString == "" || s.redis == nil {
		return c.JSON(fiber.Map{"message": "Logout berhasil"})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	})
	if err == nil && token.Valid {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if jti, ok := claims["jti"].(string); ok && jti != "" {
				ttl := tokenTTL
				if exp, ok := claims["exp"].(float64); ok {
					if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
						ttl = remaining
					}
				}
				s.redis.Set(c.Context(), cache.JTIBlacklistKey(jti), "1", ttl)
			}
		}
	}

	return c.JSON(fiber.Map{"message": "Logout berhasil"})
}

// Me handles GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

func extractBearer(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "siap-api",
		"aud":      "siap-client",
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
