package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/example/shoe-store/internal/config"
	"github.com/example/shoe-store/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	envFileFlag       = "env-file"
	migrationPathFlag = "migrations-path"
	downFlag          = "down"
)

// MigrationLogger adapts zap to migrate.Logger.
type MigrationLogger struct {
	logger  *zap.SugaredLogger
	verbose bool
}

func NewMigrationLogger(logger *zap.Logger, verbose bool) *MigrationLogger {
	return &MigrationLogger{logger: logger.Sugar(), verbose: verbose}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Infof(format, v...)
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func main() {
	envFile := pflag.String(envFileFlag, "", "optional .env file to load before reading the environment")
	migrationsPath := pflag.StringP(migrationPathFlag, "m", "migrations", "directory with *.up.sql / *.down.sql files")
	down := pflag.Bool(downFlag, false, "roll back every migration instead of applying them")
	verbose := pflag.BoolP("verbose", "v", false, "log every migration step")
	pflag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("load env file: %v", err)
		}
	}

	cfg := config.LoadEnv()
	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(zl, cfg.Postgres.URL, *migrationsPath, *down, *verbose); err != nil {
		zl.Error("migration failed", zap.Error(err))
		_ = zl.Sync()
		os.Exit(2)
	}
}

func run(zl *zap.Logger, databaseURL, migrationsPath string, down, verbose bool) error {
	if databaseURL == "" {
		return errors.New("DATABASE_URL: required")
	}
	if migrationsPath == "" {
		return fmt.Errorf("--%s flag: required", migrationPathFlag)
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), databaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	m.Log = NewMigrationLogger(zl, verbose)

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return nil
		}
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	zl.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
