package main

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"studiopulse/adapters/excel"
	"studiopulse/adapters/postgres"
	"studiopulse/internal/config"
	"studiopulse/internal/engine"
	"studiopulse/internal/testkit"
	"studiopulse/ports"
	"studiopulse/ui"
)

func main() {
	// .env is optional; real deployments configure the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	source, err := buildClientSource(cfg)
	if err != nil {
		log.Fatal("Failed to initialize client source:", err)
	}

	server := ui.NewServer(ui.Config{
		Port:    cfg.Server.Port,
		GinMode: cfg.Server.GinMode,
	}, engine.NewEngine(ports.SystemClock{}), source)

	log.Printf("Starting StudioPulse dashboard API on :%s (source=%s)", cfg.Server.Port, cfg.Data.Source)
	log.Fatal(server.Start())
}

func buildClientSource(cfg *config.Config) (ports.ClientSourcePort, error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		return postgres.NewClientRepository(db), nil
	case config.SourceExcel:
		return excel.NewRosterSource(cfg.Data.RosterFile), nil
	default:
		genConfig := testkit.DefaultClientConfig()
		genConfig.ReferenceDay = time.Now()
		genConfig.Seed = cfg.Data.DemoSeed
		genConfig.ClientCount = cfg.Data.DemoCount
		return testkit.NewTestKitWithConfig(genConfig)
	}
}
