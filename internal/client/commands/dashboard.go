package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tu-usuario/expiry-monitor/internal/client/state"
)

// ── expiring ────────────────────────────────────────────────────────────

type expiringCmd struct{}

func (expiringCmd) Name() string        { return "expiring" }
func (expiringCmd) Description() string { return "Productos que vencen dentro de N días" }
func (expiringCmd) Usage() string       { return "expiring [días]" }

// Sin argumento el servidor aplica su ventana por defecto de 30 días;
// "expiring 0" pregunta por los que vencen hoy.
func (expiringCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	days := 30
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			return ErrUsage
		}
		days = d
	}
	items, err := deps.API.Expiring(ctx, days)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(deps.Out, "Nada vence en los próximos %d días\n", days)
		return nil
	}
	printItems(deps.Out, items, deps.Now())
	return nil
}

// ── dashboard ───────────────────────────────────────────────────────────

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Resumen local del inventario" }
func (dashboardCmd) Usage() string       { return "dashboard" }

// Todos los agregados se calculan en local sobre la caché; el servidor no
// tiene endpoint de agregación.
func (dashboardCmd) Run(ctx context.Context, deps *Deps, _ []string) error {
	st, err := loadState(ctx, deps)
	if err != nil {
		return err
	}
	d := state.BuildDashboard(st, deps.Now())

	fmt.Fprintf(deps.Out, "Productos:        %d\n", d.Total)
	fmt.Fprintf(deps.Out, "Vencidos:         %d (%s%%)\n", d.Expired, d.ExpiredPercent.StringFixed(2))
	fmt.Fprintf(deps.Out, "Vencen en 7 días:  %d\n", d.ExpiringWeek)
	fmt.Fprintf(deps.Out, "Vencen en 30 días: %d\n", d.ExpiringMonth)
	fmt.Fprintf(deps.Out, "Categorías:       %d\n", d.CategoryCount)

	if len(d.TopExpiring) > 0 {
		fmt.Fprintln(deps.Out, "\nPróximos a vencer:")
		printItems(deps.Out, d.TopExpiring, deps.Now())
	}
	return nil
}

func init() {
	RegisterCmd(expiringCmd{})
	RegisterCmd(dashboardCmd{})
}
