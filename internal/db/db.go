package db

import (
	"fmt"

	"dreamlog/internal/auth"
	"dreamlog/internal/jobs"
	"dreamlog/internal/journal"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&journal.Journal{},
		&journal.EntryProjection{},
		&jobs.Job{},
		&auth.Owner{},
	); err != nil {
		return err
	}

	// Projection tag filter (GIN for text[])
	if err := gdb.Exec(`create index if not exists idx_proj_tags on entry_projections using gin (tags);`).Error; err != nil {
		return err
	}

	// Full-text search on projection content
	if err := gdb.Exec(`create index if not exists idx_proj_fts on entry_projections using gin (to_tsvector('simple', content));`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_proj_key_date on entry_projections(journal_key, occurred_at desc);`,
		`create index if not exists idx_proj_key_type on entry_projections(journal_key, type);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
		`create index if not exists idx_jobs_reminder_key on jobs((payload->>'journal_key')) where type = 'REMINDER_DISPATCH';`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
