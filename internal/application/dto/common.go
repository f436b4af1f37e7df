package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de confirmación simple (deletes).
type MessageResponse struct {
	Message string `json:"message"`
}

// OptionalString campo de patch con tres estados: ausente (sin cambio),
// null explícito (limpiar) y valor presente. Se usa para campos anulables
// como la categoría de un item.
type OptionalString struct {
	Set   bool   // la clave vino en el JSON
	Valid bool   // el valor no era null
	Value string // valor cuando Valid
}

// IsZero deja que omitzero omita la clave cuando el campo no fue tocado,
// para que el cliente pueda mandar el mismo DTO de vuelta.
func (o OptionalString) IsZero() bool { return !o.Set }

// MarshalJSON emite null para el estado "limpiar" y el string para el valor.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON marca Set y distingue null de un string.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
