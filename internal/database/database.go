package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/xelth-com/gluereport/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps gorm.DB together with the target it was opened against
type DB struct {
	*gorm.DB
	Target Target
}

func newLogger(verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}

// Connect opens a single-connection pool to the database named by cfg.URL
// and verifies it with a ping bounded by ctx.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	target, err := ParseTarget(cfg.URL)
	if err != nil {
		return nil, err
	}

	lg := newLogger(cfg.Verbose)

	var (
		dialector gorm.Dialector
		pool      *sql.DB
	)
	switch target.Driver {
	case DriverPostgres:
		lg.Printf("🌐 Mode: [External PostgreSQL] - Connecting to %s\n", target)
		connCfg := target.pg.Copy()
		if cfg.ReadOnly {
			if connCfg.RuntimeParams == nil {
				connCfg.RuntimeParams = map[string]string{}
			}
			connCfg.RuntimeParams["default_transaction_read_only"] = "on"
		}
		pool = stdlib.OpenDB(*connCfg)
		dialector = postgres.New(postgres.Config{Conn: pool})

	case DriverSQLite:
		lg.Printf("📁 Mode: [SQLite] - Opening %s\n", target)
		if err := checkSQLiteFile(target.Path); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		dialector = sqlite.Open(target.Path)

	default:
		return nil, &DriverError{Scheme: string(target.Driver)}
	}

	// Configure GORM
	logLevel := logger.Silent
	if cfg.Verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logLevel,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableAutomaticPing: true,
	})
	if err != nil {
		if pool != nil {
			_ = pool.Close()
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.ReadOnly && target.Driver == DriverSQLite {
		if err := db.WithContext(ctx).Exec("PRAGMA query_only = ON").Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	lg.Println("✅ Database connection established")

	return &DB{
		DB:     db,
		Target: target,
	}, nil
}

// checkSQLiteFile refuses to let the driver create a missing database file
func checkSQLiteFile(dsn string) error {
	path, query, _ := strings.Cut(dsn, "?")
	if strings.HasPrefix(path, "file:") {
		path = strings.TrimPrefix(path, "file:")
		// file:///abs/path carries an empty authority
		path = strings.TrimPrefix(path, "//")
	}
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("sqlite database %s does not exist", path)
		}
		return err
	}
	return nil
}

// Close releases the connection pool
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate triggers GORM schema synchronization
func (db *DB) AutoMigrate(models ...interface{}) error {
	return db.DB.AutoMigrate(models...)
}
