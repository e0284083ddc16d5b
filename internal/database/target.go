package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/xelth-com/gluereport/internal/config"
)

// Driver names a database backend compiled into the binary
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// SupportedSchemes lists the DATABASE_URL prefixes that resolve to a driver
var SupportedSchemes = []string{"postgres://", "postgresql://", "sqlite://", "file:"}

// DriverError is returned when DATABASE_URL names a backend with no driver in this build
type DriverError struct {
	Scheme string
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("no database driver for scheme %q (supported: %s)", e.Scheme, strings.Join(SupportedSchemes, ", "))
}

// Target is a parsed DATABASE_URL
type Target struct {
	Driver Driver
	// Path is the SQLite file or URI. Empty for PostgreSQL.
	Path string

	pg *pgx.ConnConfig
}

// String describes the target without credentials
func (t Target) String() string {
	if t.Driver == DriverPostgres && t.pg != nil {
		return fmt.Sprintf("%s:%d/%s", t.pg.Host, t.pg.Port, t.pg.Database)
	}
	return t.Path
}

// ParseTarget resolves a connection string to a driver.
// PostgreSQL URLs and keyword/value DSNs are validated with pgx.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, config.ErrDatabaseURLMissing
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"),
		!strings.Contains(raw, "://") && !strings.HasPrefix(raw, "file:") && strings.Contains(raw, "="):
		pgCfg, err := pgx.ParseConfig(raw)
		if err != nil {
			return Target{}, &config.Error{Key: "DATABASE_URL", Err: err}
		}
		return Target{Driver: DriverPostgres, pg: pgCfg}, nil

	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return Target{}, &config.Error{Key: "DATABASE_URL", Err: errors.New("sqlite URL has no path")}
		}
		return Target{Driver: DriverSQLite, Path: path}, nil

	case strings.HasPrefix(raw, "file:"):
		return Target{Driver: DriverSQLite, Path: raw}, nil
	}

	scheme, _, found := strings.Cut(raw, "://")
	if !found {
		scheme, _, _ = strings.Cut(raw, ":")
	}
	return Target{}, &DriverError{Scheme: scheme}
}
