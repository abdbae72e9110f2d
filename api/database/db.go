package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Open connects to the run report database and verifies the connection.
// postgres:// and postgresql:// URLs use lib/pq; sqlite://<path> uses SQLite,
// with sqlite://:memory: for a throwaway in-process database.
func Open(url string) (*sql.DB, error) {
	driver, dsn, err := driverFor(url)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// A single connection keeps :memory: SQLite databases alive and avoids
	// prepared statement issues behind PgBouncer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func driverFor(url string) (driver, dsn string, err error) {
	lower := strings.ToLower(url)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres", withBinaryParameters(url), nil
	case strings.HasPrefix(lower, "sqlite://"):
		path := url[len("sqlite://"):]
		if path == "" {
			return "", "", fmt.Errorf("sqlite URL %q has no path", url)
		}
		return "sqlite", path, nil
	}
	return "", "", fmt.Errorf("unsupported results database URL %q (want postgres:// or sqlite://)", url)
}

// withBinaryParameters appends binary_parameters=yes to the DSN if not present.
// This makes lib/pq skip the separate prepare round trip, which can break with
// PgBouncer transaction pooling.
func withBinaryParameters(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.Contains(lower, "binary_parameters=") || strings.Contains(lower, "prefer_simple_protocol=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "binary_parameters=yes"
}
