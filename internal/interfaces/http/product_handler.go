package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/application/usecase"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
	"github.com/tu-usuario/expiry-monitor/pkg/logger"
)

// ProductHandler maneja el CRUD de productos, el probe de duplicados por mes,
// el append atómico de cantidad y la consulta de vencimientos.
type ProductHandler struct {
	useCase *usecase.ItemUseCase
	log     *logger.Logger
}

func NewProductHandler(useCase *usecase.ItemUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{useCase: useCase, log: log}
}

// Create godoc
// @Summary Crear producto
// @Description Crea un producto del usuario. No rechaza SKUs repetidos: la
// @Description detección de duplicados es el endpoint /check y la resolución
// @Description (append o crear otro lote) la decide el cliente.
// @Tags products
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Producto"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}

	resp, err := h.useCase.Create(userID, req)
	if err != nil {
		return h.mapError(c, err, "error creando producto")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary Listar productos
// @Description Lista los productos del usuario con la categoría poblada,
// @Description ordenados por fecha de vencimiento ascendente
// @Tags products
// @Produce json
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)

	resp, err := h.useCase.List(userID)
	if err != nil {
		return h.mapError(c, err, "error listando productos")
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Get godoc
// @Summary Obtener un producto
// @Tags products
// @Produce json
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")

	resp, err := h.useCase.GetByID(userID, id)
	if err != nil {
		return h.mapError(c, err, "error consultando producto")
	}
	if resp == nil {
		return h.notFound(c)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Update godoc
// @Summary Actualizar producto
// @Description Actualización parcial. El campo category es tri-estado:
// @Description ausente = sin cambio, null = quitar categoría, valor = asignar.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID del producto"
// @Param request body dto.UpdateItemRequest true "Campos a actualizar"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}

	resp, err := h.useCase.Update(userID, id, req)
	if err != nil {
		return h.mapError(c, err, "error actualizando producto")
	}
	if resp == nil {
		return h.notFound(c)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Append godoc
// @Summary Sumar cantidad a un producto existente
// @Description Suma la cantidad indicada a la cantidad actual en una sola
// @Description operación atómica (sin leer-modificar-escribir)
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID del producto"
// @Param request body dto.AppendQuantityRequest true "Cantidad a sumar"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products/{id}/append [put]
func (h *ProductHandler) Append(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")

	var req dto.AppendQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "quantity debe ser un entero positivo"})
	}

	resp, err := h.useCase.Append(userID, id, req.Quantity)
	if err != nil {
		return h.mapError(c, err, "error sumando cantidad")
	}
	if resp == nil {
		return h.notFound(c)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Delete godoc
// @Summary Eliminar producto
// @Tags products
// @Produce json
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")

	if err := h.useCase.Delete(userID, id); err != nil {
		return h.mapError(c, err, "error eliminando producto")
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// Expiring godoc
// @Summary Productos próximos a vencer
// @Description Devuelve los productos cuyo vencimiento cae entre hoy y
// @Description hoy+days inclusive. days=0 significa "vencen hoy"; si el
// @Description parámetro falta o no es numérico se usan 30 días.
// @Tags products
// @Produce json
// @Param days path string true "Ventana en días"
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /api/products/expiring/{days} [get]
func (h *ProductHandler) Expiring(c *fiber.Ctx) error {
	userID := GetUserID(c)

	days, err := strconv.Atoi(c.Params("days"))
	if err != nil || days < 0 {
		days = usecase.DefaultExpiringDays
	}

	resp, err := h.useCase.Expiring(userID, days)
	if err != nil {
		return h.mapError(c, err, "error consultando vencimientos")
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Check godoc
// @Summary Verificar duplicado por SKU y mes
// @Description Indica si el usuario ya tiene un producto con ese SKU cuyo
// @Description vencimiento cae en el mismo año y mes que la fecha dada. Si
// @Description existe, devuelve el producto para ofrecer append o reemplazo.
// @Tags products
// @Produce json
// @Param sku query string true "SKU del producto"
// @Param expiry query string true "Fecha de vencimiento (YYYY-MM-DD o RFC3339)"
// @Success 200 {object} dto.DuplicateCheckResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products/check [get]
func (h *ProductHandler) Check(c *fiber.Ctx) error {
	userID := GetUserID(c)
	sku := c.Query("sku")
	expiry := c.Query("expiry")

	resp, err := h.useCase.CheckDuplicate(userID, sku, expiry)
	if err != nil {
		return h.mapError(c, err, "error verificando duplicado")
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *ProductHandler) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
}

func (h *ProductHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return h.notFound(c)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "datos del producto inválidos"})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno del servidor"})
	}
}
