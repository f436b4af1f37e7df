package commands

import (
	"context"
	"fmt"
)

// ── register ────────────────────────────────────────────────────────────

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Crea una cuenta e inicia sesión" }
func (registerCmd) Usage() string       { return "register <usuario> <password>" }

func (registerCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	sess, err := deps.API.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Cuenta creada. Sesión iniciada como %s\n", sess.Username)
	return nil
}

// ── login ───────────────────────────────────────────────────────────────

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Inicia sesión y guarda el token" }
func (loginCmd) Usage() string       { return "login <usuario> <password>" }

func (loginCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	sess, err := deps.API.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Sesión iniciada como %s\n", sess.Username)
	return nil
}

// ── logout ──────────────────────────────────────────────────────────────

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Cierra la sesión local" }
func (logoutCmd) Usage() string       { return "logout" }

// El logout es solo local: se elimina el archivo de sesión, el token no se
// revoca en el servidor.
func (logoutCmd) Run(_ context.Context, deps *Deps, _ []string) error {
	if err := deps.API.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(deps.Out, "Sesión cerrada")
	return nil
}

// ── status ──────────────────────────────────────────────────────────────

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Muestra la sesión activa" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(_ context.Context, deps *Deps, _ []string) error {
	sess, err := deps.Store.Load()
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Fprintln(deps.Out, "Sin sesión activa")
		return nil
	}
	fmt.Fprintf(deps.Out, "Sesión activa: %s (desde %s)\n",
		sess.Username, sess.SavedAt.Format("02/01/2006 15:04"))
	return nil
}

func init() {
	RegisterCmd(registerCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(statusCmd{})
}
