package dto

import "time"

// CreateItemRequest entrada para crear un producto. Expiry en formato
// "2006-01-02" o RFC3339; Category opcional (id de una categoría propia).
type CreateItemRequest struct {
	SKU         string  `json:"sku" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required"`
	Expiry      string  `json:"expiry" validate:"required"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	Category    *string `json:"category"`
}

// UpdateItemRequest entrada parcial: solo los campos presentes cambian.
// Category es tri-estado: ausente = sin cambio, null = quitar categoría.
type UpdateItemRequest struct {
	SKU         *string        `json:"sku"`
	Description *string        `json:"description"`
	Expiry      *string        `json:"expiry"`
	Quantity    *int           `json:"quantity" validate:"omitempty,min=0"`
	Category    OptionalString `json:"category,omitzero"`
}

// AppendQuantityRequest delta a sumar sobre la cantidad actual.
type AppendQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CategoryRef categoría poblada dentro de un item (solo id, nombre y descripción).
type CategoryRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemResponse salida de un producto.
type ItemResponse struct {
	ID          string       `json:"id"`
	SKU         string       `json:"sku"`
	Description string       `json:"description"`
	Expiry      time.Time    `json:"expiry"`
	Quantity    int          `json:"quantity"`
	Category    *CategoryRef `json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DuplicateCheckResponse salida del probe GET /api/products/check.
type DuplicateCheckResponse struct {
	Exists bool          `json:"exists"`
	Item   *ItemResponse `json:"item,omitempty"`
}
