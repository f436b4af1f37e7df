package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
)

// Resoluciones del flag -on-duplicate para uso no interactivo.
const (
	onDupAsk     = "ask"
	onDupAppend  = "append"
	onDupReplace = "replace"
	onDupFail    = "fail"
)

type addCmd struct{}

func (addCmd) Name() string { return "add" }
func (addCmd) Description() string {
	return "Agrega un producto, detectando duplicados por SKU y mes"
}
func (addCmd) Usage() string {
	return "add -sku s -desc d -expiry YYYY-MM-DD -qty n [-category id] [-on-duplicate ask|append|replace|fail]"
}

// Run consulta primero el probe de duplicados. Si ya existe un producto con
// el mismo SKU venciendo en el mismo año y mes, el usuario elige: sumar la
// cantidad al lote existente (append) o reemplazar cantidad y descripción
// (replace). Si no hay duplicado se crea normalmente.
func (addCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sku := fs.String("sku", "", "SKU del producto")
	desc := fs.String("desc", "", "descripción")
	expiry := fs.String("expiry", "", "fecha de vencimiento")
	qty := fs.Int("qty", -1, "cantidad")
	category := fs.String("category", "", "id de categoría")
	onDup := fs.String("on-duplicate", onDupAsk, "resolución ante duplicado")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *sku == "" || *desc == "" || *expiry == "" || *qty < 0 {
		return ErrUsage
	}
	switch *onDup {
	case onDupAsk, onDupAppend, onDupReplace, onDupFail:
	default:
		return ErrUsage
	}

	check, err := deps.API.CheckDuplicate(ctx, *sku, *expiry)
	if err != nil {
		return err
	}

	if check.Exists {
		return resolveDuplicate(ctx, deps, check.Item, *desc, *qty, *onDup)
	}

	req := dto.CreateItemRequest{
		SKU:         *sku,
		Description: *desc,
		Expiry:      *expiry,
		Quantity:    *qty,
	}
	if *category != "" {
		req.Category = category
	}
	it, err := deps.API.CreateProduct(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Producto creado: %s (cantidad %d, vence %s)\n",
		it.SKU, it.Quantity, it.Expiry.Format("02/01/2006"))
	return nil
}

// resolveDuplicate aplica la resolución elegida sobre el lote existente.
func resolveDuplicate(ctx context.Context, deps *Deps, existing *dto.ItemResponse, desc string, qty int, mode string) error {
	fmt.Fprintf(deps.Out, "Ya existe %s venciendo en %s con cantidad %d\n",
		existing.SKU, existing.Expiry.Format("01/2006"), existing.Quantity)

	if mode == onDupAsk {
		choice, err := promptChoice(deps)
		if err != nil {
			return err
		}
		mode = choice
	}

	switch mode {
	case onDupAppend:
		it, err := deps.API.AppendQuantity(ctx, existing.ID, qty)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Out, "Cantidad sumada: %s ahora tiene %d\n", it.SKU, it.Quantity)
		return nil
	case onDupReplace:
		req := dto.UpdateItemRequest{Description: &desc, Quantity: &qty}
		it, err := deps.API.UpdateProduct(ctx, existing.ID, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Out, "Producto reemplazado: %s cantidad %d\n", it.SKU, it.Quantity)
		return nil
	default:
		return errors.New("ya existe un producto con ese SKU en ese mes")
	}
}

// promptChoice pregunta interactivamente la resolución: [a]gregar cantidad,
// [r]eemplazar o [c]ancelar.
func promptChoice(deps *Deps) (string, error) {
	if deps.In == nil {
		return onDupFail, nil
	}
	fmt.Fprint(deps.Out, "¿[a]gregar cantidad, [r]eemplazar o [c]ancelar? ")
	reader := bufio.NewReader(deps.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return onDupFail, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "a":
		return onDupAppend, nil
	case "r":
		return onDupReplace, nil
	default:
		return onDupFail, nil
	}
}

func init() { RegisterCmd(addCmd{}) }
