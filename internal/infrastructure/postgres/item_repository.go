package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/expiry-monitor/internal/domain/entity"
	"github.com/tu-usuario/expiry-monitor/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `
	i.id, i.user_id, i.sku, i.description, i.expiry, i.quantity, i.category_id,
	i.created_at, i.updated_at, c.id, c.name, c.description`

const itemFrom = `
	FROM items i LEFT JOIN categories c ON c.id = i.category_id`

// Create persiste un nuevo item. No hay constraint de unicidad sobre SKU:
// la detección de duplicados por mes es responsabilidad del probe /check.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, user_id, sku, description, expiry, quantity, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UserID, item.SKU, item.Description, item.Expiry, item.Quantity,
		item.CategoryID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByIDAndUser obtiene un item por (id, user) con la categoría poblada.
// nil si no existe o es ajeno.
func (r *ItemRepo) GetByIDAndUser(id, userID string) (*entity.Item, error) {
	query := `SELECT` + itemColumns + itemFrom + ` WHERE i.id = $1 AND i.user_id = $2`
	row := r.q.QueryRow(context.Background(), query, id, userID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListByUser lista los items del usuario con la categoría poblada,
// ordenados por expiry ascendente.
func (r *ItemRepo) ListByUser(userID string) ([]*entity.Item, error) {
	query := `SELECT` + itemColumns + itemFrom + ` WHERE i.user_id = $1 ORDER BY i.expiry ASC`
	return r.list(query, userID)
}

// ListBySKUAndUser lista los items del usuario con ese SKU, ordenados por
// expiry ascendente (el probe de duplicados toma el primer match).
func (r *ItemRepo) ListBySKUAndUser(userID, sku string) ([]*entity.Item, error) {
	query := `SELECT` + itemColumns + itemFrom + ` WHERE i.user_id = $1 AND i.sku = $2 ORDER BY i.expiry ASC`
	return r.list(query, userID, sku)
}

// ListExpiring lista los items del usuario con from <= expiry <= to,
// ordenados por expiry ascendente. Ambas cotas explícitas: los items ya
// vencidos quedan fuera.
func (r *ItemRepo) ListExpiring(userID string, from, to time.Time) ([]*entity.Item, error) {
	query := `SELECT` + itemColumns + itemFrom + `
		WHERE i.user_id = $1 AND i.expiry BETWEEN $2 AND $3 ORDER BY i.expiry ASC`
	return r.list(query, userID, from, to)
}

// Update actualiza un item (todos los campos mutables).
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET sku = $2, description = $3, expiry = $4, quantity = $5, category_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Description, item.Expiry, item.Quantity, item.CategoryID, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// AppendQuantity suma delta a quantity en una sola sentencia (sin
// read-modify-write) y devuelve el item actualizado. nil si no existe para
// ese usuario.
func (r *ItemRepo) AppendQuantity(id, userID string, delta int) (*entity.Item, error) {
	query := `
		UPDATE items i SET quantity = quantity + $3, updated_at = $4
		WHERE i.id = $1 AND i.user_id = $2
		RETURNING i.id, i.user_id, i.sku, i.description, i.expiry, i.quantity, i.category_id, i.created_at, i.updated_at`
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id, userID, delta, time.Now()).Scan(
		&it.ID, &it.UserID, &it.SKU, &it.Description, &it.Expiry, &it.Quantity,
		&it.CategoryID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("append quantity: %w", err)
	}
	return &it, nil
}

// Delete elimina un item por ID.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// scanItem escanea un item con su categoría (LEFT JOIN: columnas de la
// categoría anulables).
func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var catID, catName, catDesc *string
	err := row.Scan(
		&it.ID, &it.UserID, &it.SKU, &it.Description, &it.Expiry, &it.Quantity,
		&it.CategoryID, &it.CreatedAt, &it.UpdatedAt,
		&catID, &catName, &catDesc,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		it.Category = &entity.Category{ID: *catID, Name: *catName}
		if catDesc != nil {
			it.Category.Description = *catDesc
		}
	}
	return &it, nil
}
