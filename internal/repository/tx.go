package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"videotube-server/config"
	"videotube-server/internal/util"
)

// withTx : fn выполняется в транзакции, при ошибке транзакция откатывается
func withTx(ctx context.Context, database *config.Database, fn func(tx *sqlx.Tx) error) error {
	tx, err := database.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("не удалось начать транзакцию", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			zap.L().Warn("не удалось откатить транзакцию", zap.Error(rollbackErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("не удалось зафиксировать транзакцию", err)
	}
	return nil
}
