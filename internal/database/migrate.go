package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hungrybaby/recipes-api/backend/internal/models"
	"gorm.io/gorm"
)

const rollbackSuffix = "_rollback.sql"

// RunMigrations executes all SQL migration files in the migrations directory
func RunMigrations(db *gorm.DB, migrationsDir string) error {
	if db.Dialector.Name() == "sqlite" {
		slog.Info("using gorm auto-migration for sqlite")
		return db.AutoMigrate(models.All()...)
	}

	files, err := migrationFiles(migrationsDir)
	if err != nil {
		return err
	}

	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	// Execute each migration file
	for _, name := range files {
		// Check if migration has already been applied
		var count int64
		if err := db.Table("migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			slog.Debug("skipping migration (already applied)", "name", name)
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		slog.Info("applied migration", "name", name)
	}

	return nil
}

// RollbackLastMigration reverts the most recently applied migration using its
// companion <name>_rollback.sql file. It returns the name of the reverted
// migration, or "" when nothing was applied.
func RollbackLastMigration(db *gorm.DB, migrationsDir string) (string, error) {
	if db.Dialector.Name() == "sqlite" {
		slog.Info("dropping auto-migrated tables for sqlite")
		all := models.All()
		for i := len(all) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(all[i]); err != nil {
				return "", fmt.Errorf("failed to drop table: %w", err)
			}
		}
		return "automigrate", nil
	}

	if err := ensureMigrationsTable(db); err != nil {
		return "", err
	}

	var names []string
	if err := db.Table("migrations").Order("id DESC").Limit(1).Pluck("name", &names).Error; err != nil {
		return "", fmt.Errorf("failed to read applied migrations: %w", err)
	}
	if len(names) == 0 {
		return "", nil
	}
	name := names[0]

	rollback := strings.TrimSuffix(name, ".sql") + rollbackSuffix
	content, err := os.ReadFile(filepath.Join(migrationsDir, rollback))
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file %s: %w", rollback, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute rollback %s: %w", rollback, err)
		}
		if err := tx.Exec("DELETE FROM migrations WHERE name = ?", name).Error; err != nil {
			return fmt.Errorf("failed to unrecord migration %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("rolled back migration", "name", name)
	return name, nil
}

// migrationFiles lists forward migrations sorted by name.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func ensureMigrationsTable(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}
