package repository

import (
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByIDAndUser(id, userID string) (*entity.Item, error)
	// ListByUser devuelve los items del usuario con la categoría poblada,
	// ordenados por expiry ascendente.
	ListByUser(userID string) ([]*entity.Item, error)
	// ListBySKUAndUser devuelve los items del usuario con ese SKU (para el
	// probe de duplicados por mes), ordenados por expiry ascendente.
	ListBySKUAndUser(userID, sku string) ([]*entity.Item, error)
	// ListExpiring devuelve los items del usuario con from <= expiry <= to,
	// ordenados por expiry ascendente.
	ListExpiring(userID string, from, to time.Time) ([]*entity.Item, error)
	Update(item *entity.Item) error
	// AppendQuantity suma delta a quantity en una sola sentencia atómica y
	// devuelve el item actualizado, o nil si no existe para ese usuario.
	AppendQuantity(id, userID string, delta int) (*entity.Item, error)
	Delete(id string) error
}
