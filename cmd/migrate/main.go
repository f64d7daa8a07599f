// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate -cmd up
//	migrate -cmd down
//	migrate -cmd steps -n -1
//	migrate -cmd version
//	migrate -cmd force -n 2
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"jobkit-backend/config"
	"jobkit-backend/migrations"
	"jobkit-backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cmd := flag.String("cmd", "up", "up, down, steps, version or force")
	n := flag.Int("n", 0, "step count for steps, version for force")
	dbURL := flag.String("database-url", "", "overrides DATABASE_URL")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Env)
	defer logger.Sync()

	url := cfg.DBUrl
	if *dbURL != "" {
		url = *dbURL
	}
	if url == "" {
		logger.Log.Fatal("DATABASE_URL is required")
	}

	if err := run(url, *cmd, *n); err != nil {
		logger.Log.Error("Migration failed", zap.String("cmd", *cmd), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(url, cmd string, n int) error {
	runner, err := migrations.NewRunner(url, logger.Log)
	if err != nil {
		return err
	}
	defer runner.Close()

	switch cmd {
	case "up":
		return runner.Up()
	case "down":
		return runner.Down()
	case "steps":
		if n == 0 {
			return fmt.Errorf("steps needs a non-zero -n")
		}
		return runner.Steps(n)
	case "version":
		version, dirty, ok, err := runner.Version()
		if err != nil {
			return err
		}
		if !ok {
			logger.Log.Info("No migrations applied")
			return nil
		}
		logger.Log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	case "force":
		return runner.Force(n)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
