// Package migrate применяет встроенные SQL миграции при старте.
package migrate

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"videotube-server/migrations"
)

// Up накатывает все непримененные миграции на db.
func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
