package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/client/api"
	"github.com/tu-usuario/expiry-monitor/internal/client/commands"
	"github.com/tu-usuario/expiry-monitor/internal/client/session"
	"github.com/tu-usuario/expiry-monitor/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("cargar configuración: " + err.Error() + "\n")
		os.Exit(1)
	}

	serverURL := flag.String("server", cfg.Client.ServerURL, "URL base del API")
	flag.Parse()

	store, err := session.NewStore(cfg.Client.SessionFile)
	if err != nil {
		os.Stderr.WriteString("sesión: " + err.Error() + "\n")
		os.Exit(1)
	}

	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	client := api.New(*serverURL, timeout, store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := &commands.Deps{
		API:   client,
		Store: store,
		Out:   os.Stdout,
		In:    os.Stdin,
		Now:   time.Now,
	}
	os.Exit(commands.Dispatch(ctx, deps, flag.Args()))
}
