// eldvard is the Eldvar combat engine server. It owns battle resolution and
// skill progression; accounts, rendering, and the rest of the game live in
// other services that call this one.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/HuntleyOG/eldvar-engine/internal/battle"
	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/config"
	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/logger"
	"github.com/HuntleyOG/eldvar-engine/internal/monster"
	"github.com/HuntleyOG/eldvar-engine/internal/server"
)

func main() {
	configFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	dbFile := flag.String("db", "", "SQLite database path (overrides config)")
	monstersFile := flag.String("monsters", "", "Monsters YAML path (overrides config)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	createCharacter := flag.String("create-character", "", "Create a character with the given name and exit")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load server config: %v", err)
	}
	if *dbFile != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.SQLitePath = *dbFile
	}
	if *monstersFile != "" {
		cfg.Data.MonstersFile = *monstersFile
	}
	if *addr != "" {
		cfg.Listen.Addr = *addr
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *createCharacter != "" {
		handleCreateCharacter(db, *createCharacter)
		return
	}

	logger.Info("Starting Eldvar combat engine", "driver", cfg.Database.Driver)

	if cfg.Data.MonstersFile != "" {
		if _, err := monster.Seed(db, cfg.Data.MonstersFile); err != nil {
			log.Fatalf("Failed to seed monsters: %v", err)
		}
	}

	svc := battle.NewService(db, combat.NewRandomRoller())
	srv := server.NewServer(svc, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Listen.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	}
}

// openDatabase builds the store from the configured driver.
func openDatabase(cfg *config.ServerConfig) (*database.Database, error) {
	if cfg.Database.Driver == "postgres" {
		pgCfg := database.DefaultPostgresConfig()
		pgCfg.Host = cfg.Database.Postgres.Host
		pgCfg.Port = cfg.Database.Postgres.Port
		pgCfg.User = cfg.Database.Postgres.User
		pgCfg.Password = cfg.Database.Postgres.Password
		pgCfg.Database = cfg.Database.Postgres.Database
		pgCfg.SSLMode = cfg.Database.Postgres.SSLMode
		return database.OpenWithConfig(database.Config{
			Driver:   "postgres",
			Postgres: pgCfg,
		})
	}
	return database.Open(cfg.Database.SQLitePath)
}

// handleCreateCharacter creates a character row and prints its id. Meant
// for local development; real character creation happens upstream.
func handleCreateCharacter(db *database.Database, name string) {
	c, err := db.CreateCharacter(name)
	if err != nil {
		log.Fatalf("Failed to create character: %v", err)
	}
	fmt.Printf("Created character %q with id %d\n", c.Name, c.ID)
}
