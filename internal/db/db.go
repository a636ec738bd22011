// internal/db/db.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to postgres and verifies the connection.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("cannot open db, %w", err)
	}

	if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(opts.MaxIdleConns)
	}
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot connect to db, %w", err)
	}

	logger.Info("connected to database", zap.Int("max_open_conns", opts.MaxOpenConns))
	return conn, nil
}
