package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Database struct {
	*sqlx.DB
}

func NewDatabaseConnection(dbDriver string, cfg *DatabaseConfig) (*Database, error) {
	database, err := sqlx.Connect(dbDriver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		database.SetMaxOpenConns(cfg.MaxOpenConns)
		database.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	zap.L().Info("подключение к БД успешно выполнено", zap.String("driver", dbDriver))
	return &Database{
		database,
	}, nil
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
