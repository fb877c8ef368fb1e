package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

// Run применяет все миграции для указанного драйвера (postgres или sqlite3)
func Run(db *sql.DB, driver string) error {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	log.Printf("Running %s migrations", dialect)
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func dialectFor(driver string) (dialect, dir string, err error) {
	switch driver {
	case "postgres":
		return "postgres", "postgres", nil
	case "sqlite3":
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
