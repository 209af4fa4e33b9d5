// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-visit-sync/internal/config"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
)

// NewConnectSQLite opens the SQLite database described by cfg and checks the
// connection. The pool is limited to one connection: SQLite allows a single
// writer and the client never needs parallel queries.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBDirIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	conn, err := sql.Open("sqlite3", withConnectionParams(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("%w: error opening connection to DB: %w", ErrStorage, err)
	}
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrStorage, err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}, nil
}

// connectionParams are go-sqlite3 DSN options applied to every connection.
// Each entry lists the accepted spellings of one option; an option already
// present in the DSN is left as is.
var connectionParams = []struct {
	names []string
	value string
}{
	{names: []string{"_journal_mode", "_journal"}, value: "WAL"},
	{names: []string{"_busy_timeout", "_timeout"}, value: "5000"},
	{names: []string{"_foreign_keys", "_fk"}, value: "on"},
}

// withConnectionParams adds the missing connectionParams to dsn.
func withConnectionParams(dsn string) string {
	present := map[string]bool{}
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		for _, pair := range strings.Split(dsn[i+1:], "&") {
			key, _, _ := strings.Cut(pair, "=")
			present[key] = true
		}
	}

	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.IndexByte(dsn, '?') >= 0 {
		sep = "&"
		if strings.HasSuffix(dsn, "?") || strings.HasSuffix(dsn, "&") {
			sep = ""
		}
	}

	for _, p := range connectionParams {
		if slices.ContainsFunc(p.names, func(n string) bool { return present[n] }) {
			continue
		}
		b.WriteString(sep)
		b.WriteString(p.names[0])
		b.WriteByte('=')
		b.WriteString(p.value)
		sep = "&"
	}
	return b.String()
}

// createLocalDBDirIfNotExists makes sure the directory of a file DSN exists.
// The database file itself is created by the driver.
func createLocalDBDirIfNotExists(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating DB directory: %w", err)
	}
	return nil
}
