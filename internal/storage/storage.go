// Package storage opens the document store selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"hotel_finder/internal/domain"
	"hotel_finder/internal/shared"
	"hotel_finder/internal/storage/mongostore"
	mysqlrepo "hotel_finder/internal/storage/mysql"
)

// Open connects to the configured backend and verifies it is reachable.
// The caller owns the returned store and must Close it.
func Open(ctx context.Context, cfg shared.Config) (domain.Store, error) {
	switch cfg.StoreDriver {
	case "mongo", "":
		return mongostore.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db.Ping: %w", err)
		}
		repo := mysqlrepo.New(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
