package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
	"github.com/tu-usuario/expiry-monitor/internal/domain/entity"
	"github.com/tu-usuario/expiry-monitor/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. El índice único (user_id, name)
// convierte el choque concurrente en ErrDuplicate.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.UserID, category.Name, category.Description,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByIDAndUser obtiene una categoría por (id, user). nil si no existe o es ajena.
func (r *CategoryRepo) GetByIDAndUser(id, userID string) (*entity.Category, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM categories WHERE id = $1 AND user_id = $2`
	return r.scanOne(query, id, userID)
}

// GetByUserAndName obtiene una categoría por (user, name). nil si no existe.
func (r *CategoryRepo) GetByUserAndName(userID, name string) (*entity.Category, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM categories WHERE user_id = $1 AND name = $2`
	return r.scanOne(query, userID, name)
}

// ListByUser lista las categorías del usuario ordenadas por nombre ascendente.
func (r *CategoryRepo) ListByUser(userID string) ([]*entity.Category, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM categories WHERE user_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DetachItems limpia category_id en los items del usuario que referencian la
// categoría, para que ninguna referencia quede colgando tras el borrado.
func (r *CategoryRepo) DetachItems(categoryID, userID string) error {
	query := `UPDATE items SET category_id = NULL WHERE category_id = $1 AND user_id = $2`
	_, err := r.q.Exec(context.Background(), query, categoryID, userID)
	if err != nil {
		return fmt.Errorf("detach items: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(query string, args ...any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
