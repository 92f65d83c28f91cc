// Package catalog stores parsed records in PostgreSQL.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dhamidi/esdata/config"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("esdata.catalog")

type Catalog struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// Open connects to the database described by cfg and checks that it
// answers.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Catalog, error) {
	log.Infof("connecting to database (max %d open connections)", cfg.MaxOpenConns)

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Errorf("close database after failed ping: %s", closeErr)
		}
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return New(db), nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
