package repository

import "github.com/tu-usuario/expiry-monitor/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las lecturas van acotadas por usuario: un registro ajeno se comporta
// igual que uno inexistente.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByIDAndUser(id, userID string) (*entity.Category, error)
	GetByUserAndName(userID, name string) (*entity.Category, error)
	ListByUser(userID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// DetachItems limpia category_id en los items del usuario que referencian la categoría.
	DetachItems(categoryID, userID string) error
}
