package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tu-usuario/expiry-monitor/internal/client/api"
)

// Dispatch punto de entrada único para ejecutar comandos del CLI. Imprime
// ayuda y mensajes de uso, y devuelve el código de salida del proceso.
func Dispatch(ctx context.Context, deps *Deps, args []string) int {
	if deps.Out == nil {
		deps.Out = Out
	}

	if len(args) == 0 {
		fmt.Fprint(deps.Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" || name == "--help" || name == "-h" {
		if len(args) > 1 {
			if c, ok := Get(args[1]); ok {
				fmt.Fprintf(deps.Out, "Uso: %s\n", c.Usage())
				return 0
			}
			fmt.Fprintf(deps.Out, "Comando desconocido: %s\n\n", args[1])
			fmt.Fprint(deps.Out, FormatGlobalUsage())
			return 2
		}
		fmt.Fprint(deps.Out, FormatGlobalUsage())
		return 0
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(deps.Out, "Comando desconocido: %s\n\n", name)
		fmt.Fprint(deps.Out, FormatGlobalUsage())
		return 2
	}

	err := c.Run(ctx, deps, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(deps.Out, "Uso: %s\n", c.Usage())
		return 2
	case errors.Is(err, api.ErrSessionExpired), errors.Is(err, api.ErrNoSession):
		fmt.Fprintf(deps.Out, "%v\n", err)
		return 1
	default:
		fmt.Fprintf(deps.Out, "%s: %v\n", name, err)
		return 1
	}
}
