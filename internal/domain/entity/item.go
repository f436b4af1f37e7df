package entity

import "time"

// Item representa un producto con fecha de vencimiento.
// CategoryID es opcional (nil = sin categoría); al borrar la categoría la
// referencia se limpia, nunca queda colgando.
type Item struct {
	ID          string
	UserID      string
	SKU         string
	Description string
	Expiry      time.Time
	Quantity    int // siempre >= 0 (CHECK en DB)
	CategoryID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Category se puebla en listados (solo id, nombre y descripción).
	Category *Category
}
