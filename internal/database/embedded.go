package database

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

// EmbeddedConfig describes a throwaway PostgreSQL instance for integration tests
type EmbeddedConfig struct {
	DataPath string
	Port     uint32
	Database string
	Username string
	Password string
}

// DefaultEmbeddedConfig returns test settings on a port the kernel reports free,
// so a developer's own embedded server on 5433 does not collide.
func DefaultEmbeddedConfig(dataPath string) (EmbeddedConfig, error) {
	port, err := freePort()
	if err != nil {
		return EmbeddedConfig{}, err
	}
	return EmbeddedConfig{
		DataPath: dataPath,
		Port:     port,
		Database: "glue",
		Username: "postgres",
		Password: "postgres",
	}, nil
}

func freePort() (uint32, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find free port: %w", err)
	}
	defer l.Close()
	return uint32(l.Addr().(*net.TCPAddr).Port), nil
}

// Embedded is a running embedded PostgreSQL process
type Embedded struct {
	cfg EmbeddedConfig
	pg  *embeddedpostgres.EmbeddedPostgres
}

// StartEmbedded launches PostgreSQL in cfg.DataPath
func StartEmbedded(cfg EmbeddedConfig) (*Embedded, error) {
	log.Println("📦 Mode: [Embedded PostgreSQL] - Initializing internal database...")

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(cfg.DataPath).
		RuntimePath(filepath.Join(cfg.DataPath, "..", "runtime")).
		Port(cfg.Port).
		Database(cfg.Database).
		Username(cfg.Username).
		Password(cfg.Password).
		StartTimeout(45 * time.Second))

	if err := pg.Start(); err != nil {
		return nil, fmt.Errorf("failed to start embedded database: %w", err)
	}

	log.Printf("✅ Embedded PostgreSQL process started on port %d", cfg.Port)
	return &Embedded{cfg: cfg, pg: pg}, nil
}

// URL is the DATABASE_URL for the embedded instance
func (e *Embedded) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.cfg.Username, e.cfg.Password),
		Host:     net.JoinHostPort("localhost", strconv.Itoa(int(e.cfg.Port))),
		Path:     "/" + e.cfg.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Stop shuts the embedded process down
func (e *Embedded) Stop() error {
	log.Println("🛑 Stopping Embedded PostgreSQL process...")
	return e.pg.Stop()
}
