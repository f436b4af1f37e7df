package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
	"github.com/tu-usuario/expiry-monitor/internal/domain/entity"
	"github.com/tu-usuario/expiry-monitor/internal/domain/repository"
)

// DefaultExpiringDays ventana por defecto de GET /api/products/expiring/:days.
const DefaultExpiringDays = 30

// ItemUseCase casos de uso para productos: CRUD, probe de duplicados por mes,
// append atómico de cantidad y consulta de vencimientos.
//
// No hay rechazo de SKU duplicado en Create: la detección de duplicados es el
// probe CheckDuplicate y la resolución append/replace la decide el cliente.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, categoryRepo repository.CategoryRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto. La categoría, si viene, debe pertenecer al usuario.
func (uc *ItemUseCase) Create(userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	expiry, err := ParseExpiry(in.Expiry)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var categoryID *string
	if in.Category != nil && *in.Category != "" {
		if err := uc.ownCategory(userID, *in.Category); err != nil {
			return nil, err
		}
		categoryID = in.Category
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		UserID:      userID,
		SKU:         in.SKU,
		Description: in.Description,
		Expiry:      expiry,
		Quantity:    in.Quantity,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	// Releer con la categoría poblada para la respuesta.
	created, err := uc.repo.GetByIDAndUser(item.ID, userID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(created), nil
}

// GetByID obtiene un producto del usuario. nil si no existe o es ajeno.
func (uc *ItemUseCase) GetByID(userID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// List lista los productos del usuario con la categoría poblada, ordenados
// por expiry ascendente.
func (uc *ItemUseCase) List(userID string) ([]dto.ItemResponse, error) {
	list, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return items, nil
}

// Update actualiza parcialmente un producto: solo los campos presentes
// cambian. Category es tri-estado: ausente = sin cambio, null explícito =
// quitar la categoría, valor = asignar (verificando pertenencia).
func (uc *ItemUseCase) Update(userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.SKU != nil && *in.SKU != "" {
		item.SKU = *in.SKU
	}
	if in.Description != nil && *in.Description != "" {
		item.Description = *in.Description
	}
	if in.Expiry != nil {
		expiry, err := ParseExpiry(*in.Expiry)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		item.Expiry = expiry
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.Category.Set {
		if !in.Category.Valid || in.Category.Value == "" {
			item.CategoryID = nil
			item.Category = nil
		} else {
			if err := uc.ownCategory(userID, in.Category.Value); err != nil {
				return nil, err
			}
			v := in.Category.Value
			item.CategoryID = &v
		}
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	// Releer con la categoría poblada para la respuesta.
	updated, err := uc.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// Append suma delta a la cantidad actual en una sola sentencia atómica
// (sin read-modify-write). nil si el producto no existe o es ajeno.
func (uc *ItemUseCase) Append(userID, id string, delta int) (*dto.ItemResponse, error) {
	item, err := uc.repo.AppendQuantity(id, userID, delta)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Delete elimina un producto del usuario. ErrNotFound si no existe o es ajeno.
func (uc *ItemUseCase) Delete(userID, id string) error {
	item, err := uc.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Expiring devuelve los productos del usuario cuyo expiry cae en
// [hoy, hoy+days] inclusive (granularidad de día), ordenados ascendente.
// days=0 significa "vencen hoy"; el fallback a 30 lo aplica el handler solo
// ante valores ausentes o no numéricos.
func (uc *ItemUseCase) Expiring(userID string, days int) ([]dto.ItemResponse, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, days+1).Add(-time.Nanosecond)
	list, err := uc.repo.ListExpiring(userID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return items, nil
}

// CheckDuplicate busca entre los items del usuario con ese SKU el primero
// cuyo expiry cae en el mismo (año, mes) que la fecha objetivo. Recorrido
// O(n) sobre los items del mismo SKU; aceptable a esta escala.
func (uc *ItemUseCase) CheckDuplicate(userID, sku, expiryStr string) (*dto.DuplicateCheckResponse, error) {
	if sku == "" || expiryStr == "" {
		return nil, domain.ErrInvalidInput
	}
	target, err := ParseExpiry(expiryStr)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListBySKUAndUser(userID, sku)
	if err != nil {
		return nil, err
	}
	for _, it := range list {
		if it.Expiry.Year() == target.Year() && it.Expiry.Month() == target.Month() {
			return &dto.DuplicateCheckResponse{Exists: true, Item: toItemResponse(it)}, nil
		}
	}
	return &dto.DuplicateCheckResponse{Exists: false}, nil
}

// ParseExpiry acepta fechas "2006-01-02" o RFC3339.
func ParseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (uc *ItemUseCase) ownCategory(userID, categoryID string) error {
	category, err := uc.categoryRepo.GetByIDAndUser(categoryID, userID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	resp := &dto.ItemResponse{
		ID:          it.ID,
		SKU:         it.SKU,
		Description: it.Description,
		Expiry:      it.Expiry,
		Quantity:    it.Quantity,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if it.Category != nil {
		resp.Category = &dto.CategoryRef{
			ID:          it.Category.ID,
			Name:        it.Category.Name,
			Description: it.Category.Description,
		}
	}
	return resp
}
