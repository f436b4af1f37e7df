package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/client/state"
)

// ── products ────────────────────────────────────────────────────────────

type productsCmd struct{}

func (productsCmd) Name() string { return "products" }
func (productsCmd) Description() string {
	return "Lista los productos, con filtros locales opcionales"
}
func (productsCmd) Usage() string {
	return "products [-month 1-12] [-year YYYY] [-category id]"
}

// Los filtros se aplican en local sobre la lista ya descargada, combinados
// con AND; sin flags se muestra la lista completa.
func (productsCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	month := fs.Int("month", 0, "mes de vencimiento (1-12)")
	year := fs.Int("year", 0, "año de vencimiento")
	category := fs.String("category", "", "id de categoría")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *month < 0 || *month > 12 {
		return ErrUsage
	}

	st, err := loadState(ctx, deps)
	if err != nil {
		return err
	}
	st.SetFilters(state.Filters{
		Month:      time.Month(*month),
		Year:       *year,
		CategoryID: *category,
	})

	items := st.Filtered()
	if len(items) == 0 {
		fmt.Fprintln(deps.Out, "Sin productos")
		return nil
	}
	printItems(deps.Out, items, deps.Now())
	return nil
}

// ── product-edit ────────────────────────────────────────────────────────

type productEditCmd struct{}

func (productEditCmd) Name() string        { return "product-edit" }
func (productEditCmd) Description() string { return "Actualiza campos de un producto" }
func (productEditCmd) Usage() string {
	return "product-edit <id> [-sku s] [-desc d] [-expiry YYYY-MM-DD] [-qty n] [-category id|none]"
}

func (productEditCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id := args[0]

	fs := flag.NewFlagSet("product-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sku := fs.String("sku", "", "nuevo SKU")
	desc := fs.String("desc", "", "nueva descripción")
	expiry := fs.String("expiry", "", "nueva fecha de vencimiento")
	qty := fs.Int("qty", -1, "nueva cantidad")
	category := fs.String("category", "", "id de categoría, o \"none\" para quitarla")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	var req dto.UpdateItemRequest
	if *sku != "" {
		req.SKU = sku
	}
	if *desc != "" {
		req.Description = desc
	}
	if *expiry != "" {
		req.Expiry = expiry
	}
	if *qty >= 0 {
		req.Quantity = qty
	}
	if *category != "" {
		if *category == "none" {
			req.Category = dto.OptionalString{Set: true, Valid: false}
		} else {
			req.Category = dto.OptionalString{Set: true, Valid: true, Value: *category}
		}
	}
	if req.SKU == nil && req.Description == nil && req.Expiry == nil && req.Quantity == nil && !req.Category.Set {
		return ErrUsage
	}

	it, err := deps.API.UpdateProduct(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Producto actualizado: %s (cantidad %d, vence %s)\n",
		it.SKU, it.Quantity, it.Expiry.Format("02/01/2006"))
	return nil
}

// ── product-rm ──────────────────────────────────────────────────────────

type productRmCmd struct{}

func (productRmCmd) Name() string        { return "product-rm" }
func (productRmCmd) Description() string { return "Elimina un producto" }
func (productRmCmd) Usage() string       { return "product-rm <id>" }

func (productRmCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	if err := deps.API.DeleteProduct(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(deps.Out, "Producto eliminado")
	return nil
}

// ── helpers ─────────────────────────────────────────────────────────────

// loadState descarga productos y categorías una vez y arma el estado local.
func loadState(ctx context.Context, deps *Deps) (*state.State, error) {
	items, err := deps.API.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := deps.API.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return state.New(items, categories), nil
}

func printItems(out io.Writer, items []dto.ItemResponse, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tDESCRIPCIÓN\tCATEGORÍA\tVENCE\tCANT\tDÍAS")
	for _, it := range items {
		cat := "—"
		if it.Category != nil {
			cat = it.Category.Name
		}
		day := time.Date(it.Expiry.Year(), it.Expiry.Month(), it.Expiry.Day(), 0, 0, 0, 0, now.Location())
		days := "VENCIDO"
		if !day.Before(today) {
			days = fmt.Sprintf("%d", int(day.Sub(today).Hours()/24))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			it.ID, it.SKU, it.Description, cat, it.Expiry.Format("02/01/2006"), it.Quantity, days)
	}
	w.Flush()
}

func init() {
	RegisterCmd(productsCmd{})
	RegisterCmd(productEditCmd{})
	RegisterCmd(productRmCmd{})
}
