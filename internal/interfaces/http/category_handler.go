package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/application/usecase"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
	"github.com/tu-usuario/expiry-monitor/pkg/logger"
)

// CategoryHandler maneja el CRUD de categorías del usuario autenticado.
type CategoryHandler struct {
	useCase *usecase.CategoryUseCase
	log     *logger.Logger
}

func NewCategoryHandler(useCase *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{useCase: useCase, log: log}
}

// Create godoc
// @Summary Crear categoría
// @Description Crea una categoría del usuario; el nombre debe ser único por usuario
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Categoría"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}

	resp, err := h.useCase.Create(userID, req)
	if err != nil {
		return h.mapError(c, err, "error creando categoría")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary Listar categorías
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Security BearerAuth
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)

	resp, err := h.useCase.List(userID)
	if err != nil {
		return h.mapError(c, err, "error listando categorías")
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Get godoc
// @Summary Obtener una categoría
// @Tags categories
// @Produce json
// @Param id path string true "ID de la categoría"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")

	resp, err := h.useCase.GetByID(userID, id)
	if err != nil {
		return h.mapError(c, err, "error consultando categoría")
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Update godoc
// @Summary Actualizar categoría
// @Description Actualización parcial; renombrar a un nombre ya usado falla
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "ID de la categoría"
// @Param request body dto.UpdateCategoryRequest true "Campos a actualizar"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}

	resp, err := h.useCase.Update(userID, id, req)
	if err != nil {
		return h.mapError(c, err, "error actualizando categoría")
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Delete godoc
// @Summary Eliminar categoría
// @Description Borra la categoría y desasocia sus productos (quedan sin categoría)
// @Tags categories
// @Produce json
// @Param id path string true "ID de la categoría"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")

	if err := h.useCase.Delete(userID, id); err != nil {
		return h.mapError(c, err, "error eliminando categoría")
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

func (h *CategoryHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: "ya existe una categoría con ese nombre"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno del servidor"})
	}
}
