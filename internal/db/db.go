package db

import (
	"fmt"

	"nearnote/internal/auth"
	"nearnote/internal/jobs"
	"nearnote/internal/note"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database. SQLite is the default local
// store; Postgres is available for hosted deployments.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "sqlite", "":
		dial = sqlite.Open(dsn)
	case "postgres":
		dial = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

var tables = []any{
	&note.Note{},
	&jobs.Job{},
	&auth.Account{},
}

// AutoMigrateAndIndexes brings the schema up to date. Migration is
// destructive: on an incompatible schema the tables are dropped and
// recreated rather than forward-migrated. The store is a local cache of
// one user's notes, not a contract with external consumers.
func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(tables...); err != nil {
		if derr := gdb.Migrator().DropTable(tables...); derr != nil {
			return fmt.Errorf("automigrate failed: %w (drop also failed: %v)", err, derr)
		}
		if err := gdb.AutoMigrate(tables...); err != nil {
			return err
		}
	}

	// Participation-predicate query support and job due scans.
	stmts := []string{
		`create index if not exists idx_notes_active_location on notes(is_active, latitude, longitude);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
