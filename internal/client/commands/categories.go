package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
)

// ── categories ──────────────────────────────────────────────────────────

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "Lista las categorías" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, deps *Deps, _ []string) error {
	list, err := deps.API.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(deps.Out, "Sin categorías")
		return nil
	}
	w := tabwriter.NewWriter(deps.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tDESCRIPCIÓN")
	for _, c := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	return w.Flush()
}

// ── category-add ────────────────────────────────────────────────────────

type categoryAddCmd struct{}

func (categoryAddCmd) Name() string        { return "category-add" }
func (categoryAddCmd) Description() string { return "Crea una categoría" }
func (categoryAddCmd) Usage() string       { return "category-add <nombre> [descripción]" }

func (categoryAddCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	req := dto.CreateCategoryRequest{Name: args[0]}
	if len(args) > 1 {
		req.Description = strings.Join(args[1:], " ")
	}
	c, err := deps.API.CreateCategory(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Categoría creada: %s (%s)\n", c.Name, c.ID)
	return nil
}

// ── category-edit ───────────────────────────────────────────────────────

type categoryEditCmd struct{}

func (categoryEditCmd) Name() string        { return "category-edit" }
func (categoryEditCmd) Description() string { return "Actualiza nombre o descripción" }
func (categoryEditCmd) Usage() string {
	return "category-edit <id> [-name nombre] [-desc descripción]"
}

func (categoryEditCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id := args[0]

	fs := flag.NewFlagSet("category-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "nuevo nombre")
	desc := fs.String("desc", "", "nueva descripción")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	var req dto.UpdateCategoryRequest
	if *name != "" {
		req.Name = name
	}
	if flagProvided(fs, "desc") {
		req.Description = desc
	}
	if req.Name == nil && req.Description == nil {
		return ErrUsage
	}

	c, err := deps.API.UpdateCategory(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Categoría actualizada: %s\n", c.Name)
	return nil
}

// ── category-rm ─────────────────────────────────────────────────────────

type categoryRmCmd struct{}

func (categoryRmCmd) Name() string { return "category-rm" }
func (categoryRmCmd) Description() string {
	return "Elimina una categoría (sus productos quedan sin categoría)"
}
func (categoryRmCmd) Usage() string { return "category-rm <id>" }

func (categoryRmCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	if err := deps.API.DeleteCategory(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(deps.Out, "Categoría eliminada")
	return nil
}

// flagProvided indica si el flag fue pasado explícitamente, para distinguir
// "no tocar" de "dejar vacío".
func flagProvided(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func init() {
	RegisterCmd(categoriesCmd{})
	RegisterCmd(categoryAddCmd{})
	RegisterCmd(categoryEditCmd{})
	RegisterCmd(categoryRmCmd{})
}
