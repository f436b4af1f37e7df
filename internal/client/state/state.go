package state

import (
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
)

// Filters filtros locales sobre la lista de productos en caché. Cada campo
// en cero significa "sin filtrar por ese criterio"; los presentes se
// combinan con AND.
type Filters struct {
	Month      time.Month // 0 = sin filtro
	Year       int        // 0 = sin filtro
	CategoryID string     // "" = sin filtro
}

// IsZero indica que no hay ningún filtro activo.
func (f Filters) IsZero() bool {
	return f.Month == 0 && f.Year == 0 && f.CategoryID == ""
}

// State caché local de productos y categorías del usuario. Se carga una vez
// por comando; los filtros y el dashboard se derivan en memoria sin volver
// al servidor.
type State struct {
	items      []dto.ItemResponse
	categories []dto.CategoryResponse
	filters    Filters
}

// New crea el estado a partir de las listas ya cargadas del API.
func New(items []dto.ItemResponse, categories []dto.CategoryResponse) *State {
	return &State{items: items, categories: categories}
}

// Items devuelve la lista completa en caché, sin filtros.
func (s *State) Items() []dto.ItemResponse { return s.items }

// Categories devuelve las categorías en caché.
func (s *State) Categories() []dto.CategoryResponse { return s.categories }

// SetFilters reemplaza los filtros activos.
func (s *State) SetFilters(f Filters) { s.filters = f }

// ClearFilters quita todos los filtros; Filtered vuelve a la lista completa.
func (s *State) ClearFilters() { s.filters = Filters{} }

// Filters devuelve los filtros activos.
func (s *State) Filters() Filters { return s.filters }

// Filtered devuelve la vista derivada: los productos que cumplen todos los
// filtros activos a la vez. Sin filtros devuelve la lista completa.
func (s *State) Filtered() []dto.ItemResponse {
	if s.filters.IsZero() {
		return s.items
	}
	out := make([]dto.ItemResponse, 0, len(s.items))
	for _, it := range s.items {
		if s.matches(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *State) matches(it dto.ItemResponse) bool {
	if s.filters.Month != 0 && it.Expiry.Month() != s.filters.Month {
		return false
	}
	if s.filters.Year != 0 && it.Expiry.Year() != s.filters.Year {
		return false
	}
	if s.filters.CategoryID != "" {
		if it.Category == nil || it.Category.ID != s.filters.CategoryID {
			return false
		}
	}
	return true
}

// CategoryName resuelve el nombre de una categoría en caché; "" si no está.
func (s *State) CategoryName(id string) string {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}
