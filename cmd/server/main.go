package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/mhgaber/branchbank/infra/initializer"
	"github.com/mhgaber/branchbank/pkg/config"
	"github.com/mhgaber/branchbank/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	app := webapi.NewApp(webapi.Deps{
		Ledger:    deps.Ledger,
		Customers: deps.Customers,
		Audit:     deps.Audit,
		Auth:      deps.Auth,
		Jwt:       cfg.Jwt,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
