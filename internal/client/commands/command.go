package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/client/api"
	"github.com/tu-usuario/expiry-monitor/internal/client/session"
)

// ErrUsage lo devuelve un comando cuando los argumentos son inválidos y hay
// que mostrar su uso.
var ErrUsage = errors.New("usage")

// Deps dependencias compartidas por todos los comandos.
type Deps struct {
	API   *api.Client
	Store *session.Store
	Out   io.Writer
	In    io.Reader // entrada interactiva (prompt de duplicados)
	Now   func() time.Time
}

// Command representa un subcomando del CLI.
type Command interface {
	// Name nombre tal como lo escribe el usuario, ej. "login".
	Name() string
	// Description descripción corta para la ayuda.
	Description() string
	// Usage línea de uso exacta, ej. "login <usuario> <password>".
	Usage() string
	// Run ejecuta el comando con sus argumentos (sin el nombre).
	Run(ctx context.Context, deps *Deps, args []string) error
}

// registry comandos disponibles por nombre.
var registry = map[string]Command{}

// Out writer por defecto del CLI; los tests lo redirigen vía Deps.
var Out io.Writer = os.Stdout

// RegisterCmd añade un comando al registro. Se llama desde init() de cada comando.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get devuelve un comando por nombre.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List devuelve todos los comandos ordenados por nombre.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage arma la ayuda global con todos los comandos.
func FormatGlobalUsage() string {
	lines := []string{
		"Expiry Monitor CLI",
		"",
		"Uso:",
		"  expiry [--server URL] <comando> [args]",
		"",
		"Comandos:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-42s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}
