package migrator

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	// ErrMigrate возвращается, когда не удалось применить миграции
	ErrMigrate = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Up применяет все миграции из каталога migrationsPath
// Отсутствие новых миграций ошибкой не считается
func Up(db *sql.DB, migrationsPath string, log Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("%w: create postgres driver: %v", ErrMigrate, err)
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("%w: resolve path %s: %v", ErrMigrate, migrationsPath, err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL(absPath), "postgres", driver)
	if err != nil {
		return fmt.Errorf("%w: create migrate instance: %v", ErrMigrate, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Migrations: schema is up to date")
			return nil
		}
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("%w: read version: %v", ErrMigrate, err)
	}

	log.Info("Migrations applied: version=%d, dirty=%v", version, dirty)
	return nil
}

func sourceURL(absPath string) string {
	return "file://" + filepath.ToSlash(absPath)
}
