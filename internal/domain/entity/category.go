package entity

import "time"

// Category representa una categoría de productos del usuario.
// El par (UserID, Name) es único.
type Category struct {
	ID          string
	UserID      string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
