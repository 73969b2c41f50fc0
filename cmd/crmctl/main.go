package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/crmauth/internal/admin/cli"
	"github.com/dmitrijs2005/crmauth/internal/logging"
	"github.com/dmitrijs2005/crmauth/internal/server/config"
	"github.com/dmitrijs2005/crmauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/crmauth/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Printf("migration error: %v", err)
		return
	}

	us := services.NewUserService(db, rm, cfg, logging.NewJSONLogger(os.Stderr, slog.LevelWarn))
	cli.NewApp(us, os.Stdin, os.Stdout).Run(ctx)

}
