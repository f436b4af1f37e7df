package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/expiry-monitor/internal/application/auth"
	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
	"github.com/tu-usuario/expiry-monitor/pkg/logger"
)

// AuthHandler maneja registro y login de usuarios.
type AuthHandler struct {
	useCase *auth.AuthUseCase
	log     *logger.Logger
}

func NewAuthHandler(useCase *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

// Register godoc
// @Summary Registrar un nuevo usuario
// @Description Crea una cuenta con username y password y devuelve un token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Credenciales"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/users/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	req.Username = strings.TrimSpace(req.Username)

	resp, err := h.useCase.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameAlreadyExists):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: "el nombre de usuario ya está en uso"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
		default:
			h.log.Error().Err(err).Msg("error registrando usuario")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno del servidor"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login godoc
// @Summary Iniciar sesión
// @Description Valida credenciales y devuelve un token JWT válido por 7 días
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/users/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	req.Username = strings.TrimSpace(req.Username)

	resp, err := h.useCase.Login(req)
	if err != nil {
		switch {
		// No se distingue usuario inexistente de password incorrecto.
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
		default:
			h.log.Error().Err(err).Msg("error en login")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno del servidor"})
		}
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
