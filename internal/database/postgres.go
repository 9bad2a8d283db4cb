package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Job-Wilhelm/course-booking/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var DB *pgxpool.Pool

// ConnectDB opens the shared pool. Admission transactions hold row locks for
// their whole duration, so maxConns bounds concurrent bookings as well.
func ConnectDB(ctx context.Context, dbURL string, maxConns int32) error {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return fmt.Errorf("unable to parse database config: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = 2
	if config.MinConns > maxConns {
		config.MinConns = maxConns
	}
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("unable to ping database: %w", err)
	}

	DB = pool
	logger.Log.Info("connected to PostgreSQL", zap.Int32("max_conns", maxConns))
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
