package state_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/client/state"
)

// now fijo para que los contadores sean deterministas.
var ahora = time.Date(2026, time.October, 10, 15, 30, 0, 0, time.UTC)

func dash(offs []int, cats int) state.Dashboard {
	items := make([]dto.ItemResponse, 0, len(offs))
	for i, off := range offs {
		items = append(items, item(fmt.Sprintf("P%d", i), ahora.AddDate(0, 0, off), ""))
	}
	categories := make([]dto.CategoryResponse, cats)
	for i := range categories {
		categories[i] = dto.CategoryResponse{ID: fmt.Sprintf("c%d", i)}
	}
	return state.BuildDashboard(state.New(items, categories), ahora)
}

func TestDashboard_Contadores(t *testing.T) {
	// Dos vencidos, uno hoy, uno a 7 días, uno a 8, uno a 30, uno a 31.
	d := dash([]int{-10, -1, 0, 7, 8, 30, 31}, 3)

	assert.Equal(t, 7, d.Total)
	assert.Equal(t, 2, d.Expired)
	assert.Equal(t, 2, d.ExpiringWeek, "hoy y +7 entran; +8 no")
	assert.Equal(t, 4, d.ExpiringMonth, "hasta +30 inclusive")
	assert.Equal(t, 3, d.CategoryCount)
}

// Los vencidos no aparecen en los contadores de "por vencer".
func TestDashboard_VencidosNoCuentanComoPorVencer(t *testing.T) {
	d := dash([]int{-1, -2, -3}, 0)

	assert.Equal(t, 3, d.Expired)
	assert.Equal(t, 0, d.ExpiringWeek)
	assert.Equal(t, 0, d.ExpiringMonth)
	assert.Empty(t, d.TopExpiring)
}

// El top son los 10 no vencidos más próximos, en orden ascendente.
func TestDashboard_TopExpiring(t *testing.T) {
	offs := []int{-5, 40, 3, 25, 1, 90, 12, 60, 7, 33, 2, 18}
	d := dash(offs, 0)

	assert.Len(t, d.TopExpiring, state.TopExpiringLimit)
	assert.Equal(t, "P4", d.TopExpiring[0].SKU, "el más próximo primero (+1)")
	for i := 1; i < len(d.TopExpiring); i++ {
		assert.False(t, d.TopExpiring[i].Expiry.Before(d.TopExpiring[i-1].Expiry),
			"el top debe venir ordenado por vencimiento")
	}
	for _, it := range d.TopExpiring {
		assert.NotEqual(t, "P0", it.SKU, "los vencidos no entran al top")
	}
}

// El porcentaje de vencidos se redondea a dos decimales.
func TestDashboard_PorcentajeVencidos(t *testing.T) {
	d := dash([]int{-1, 5, 10}, 0) // 1 de 3
	assert.Equal(t, "33.33", d.ExpiredPercent.StringFixed(2))

	d = dash([]int{-1, -2}, 0)
	assert.Equal(t, "100.00", d.ExpiredPercent.StringFixed(2))
}

// Inventario vacío: todo cero, sin división por cero.
func TestDashboard_Vacio(t *testing.T) {
	d := dash(nil, 0)

	assert.Equal(t, 0, d.Total)
	assert.Equal(t, "0.00", d.ExpiredPercent.StringFixed(2))
	assert.Empty(t, d.TopExpiring)
}
