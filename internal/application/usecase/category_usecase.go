package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
	"github.com/tu-usuario/expiry-monitor/internal/domain/entity"
	"github.com/tu-usuario/expiry-monitor/internal/domain/repository"
)

// CategoryTxRunner ejecuta fn dentro de una transacción con un repo de
// categorías atado a ella. Se usa para borrar una categoría y limpiar las
// referencias de los items en una sola unidad atómica.
type CategoryTxRunner interface {
	Run(fn func(categories repository.CategoryRepository) error) error
}

// CategoryUseCase casos de uso CRUD para categorías del usuario autenticado.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   CategoryTxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx CategoryTxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

// Create crea una categoría. (userID, name) es único: pre-check para el
// mensaje amable, índice único en DB como respaldo atómico.
func (uc *CategoryUseCase) Create(userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUserAndName(userID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría del usuario. nil si no existe o es ajena.
func (uc *CategoryUseCase) GetByID(userID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// List lista las categorías del usuario, ordenadas por nombre ascendente.
func (uc *CategoryUseCase) List(userID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Update actualiza parcialmente una categoría. Un cambio de nombre re-verifica
// unicidad excluyendo el propio registro; renombrar al mismo nombre es válido.
func (uc *CategoryUseCase) Update(userID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != category.Name {
		existing, err := uc.repo.GetByUserAndName(userID, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría del usuario y limpia la referencia en sus
// items (detach) dentro de una transacción. Devuelve ErrNotFound si la
// categoría no existe o es ajena.
func (uc *CategoryUseCase) Delete(userID, id string) error {
	category, err := uc.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.tx.Run(func(categories repository.CategoryRepository) error {
		if err := categories.DetachItems(id, userID); err != nil {
			return err
		}
		return categories.Delete(id)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
