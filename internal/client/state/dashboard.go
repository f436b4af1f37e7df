package state

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
)

// TopExpiringLimit tamaño de la lista "próximos a vencer" del dashboard.
const TopExpiringLimit = 10

// Dashboard agregados derivados localmente de la caché de productos. No hay
// endpoint de agregación en el servidor: todo se calcula aquí.
type Dashboard struct {
	Total          int
	ExpiringWeek   int // vencen dentro de 7 días (sin contar ya vencidos)
	ExpiringMonth  int // vencen dentro de 30 días (sin contar ya vencidos)
	Expired        int
	CategoryCount  int
	TopExpiring    []dto.ItemResponse // hasta 10, no vencidos, por vencimiento ascendente
	ExpiredPercent decimal.Decimal    // % de vencidos sobre el total, 2 decimales
}

// BuildDashboard calcula los agregados a partir del estado, tomando now como
// referencia. Un producto cuenta como vencido si su fecha ya pasó a
// granularidad de día.
func BuildDashboard(s *State, now time.Time) Dashboard {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := today.AddDate(0, 0, 7)
	month := today.AddDate(0, 0, 30)

	d := Dashboard{
		Total:         len(s.items),
		CategoryCount: len(s.categories),
	}

	alive := make([]dto.ItemResponse, 0, len(s.items))
	for _, it := range s.items {
		day := time.Date(it.Expiry.Year(), it.Expiry.Month(), it.Expiry.Day(), 0, 0, 0, 0, now.Location())
		switch {
		case day.Before(today):
			d.Expired++
		default:
			alive = append(alive, it)
			if !day.After(week) {
				d.ExpiringWeek++
			}
			if !day.After(month) {
				d.ExpiringMonth++
			}
		}
	}

	sort.SliceStable(alive, func(i, j int) bool {
		return alive[i].Expiry.Before(alive[j].Expiry)
	})
	if len(alive) > TopExpiringLimit {
		alive = alive[:TopExpiringLimit]
	}
	d.TopExpiring = alive

	if d.Total > 0 {
		d.ExpiredPercent = decimal.NewFromInt(int64(d.Expired)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(d.Total))).
			Round(2)
	} else {
		d.ExpiredPercent = decimal.Zero
	}
	return d
}
