package whatsapp

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mau.fi/whatsmeow/store/sqlstore"
	_ "modernc.org/sqlite"
)

// openContainer opens the device store shared by every tenant. Postgres is
// used when a store URL is configured, a local SQLite file otherwise.
func openContainer(ctx context.Context, cfg Config) (*sqlstore.Container, error) {
	dbLog := newLogger("Database", zerolog.ErrorLevel)

	if cfg.StoreURL != "" {
		container, err := sqlstore.New(ctx, "postgres", cfg.StoreURL, dbLog)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		if err := container.Upgrade(ctx); err != nil {
			return nil, fmt.Errorf("upgrade postgres store: %w", err)
		}
		log.Info().Msg("📦 WhatsApp store ready (PostgreSQL)")
		return container, nil
	}

	path := cfg.SQLitePath
	if path == "" {
		path = "store.db"
	}
	rawDB, err := sql.Open("sqlite", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := rawDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to enable foreign_keys pragma")
	}

	container := sqlstore.NewWithDB(rawDB, "sqlite", dbLog)
	if err := container.Upgrade(ctx); err != nil {
		return nil, fmt.Errorf("upgrade sqlite store: %w", err)
	}
	log.Info().Str("path", path).Msg("💾 WhatsApp store ready (SQLite)")
	return container, nil
}
