package database

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"

	"github.com/jackc/pgx/v5"
)

// maintenanceDB is connected to while the campaign database is created or dropped
const maintenanceDB = "postgres"

// Server addresses a Postgres server independently of any one database
type Server struct {
	User     string
	Password string
	Host     string
	Port     string
}

// ServerFromEnv reads the DB_* variables shared with the app
func ServerFromEnv() Server {
	return Server{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
}

// ConnString addresses db on this server
func (s Server) ConnString(db string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     net.JoinHostPort(s.Host, s.Port),
		Path:     "/" + db,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (s Server) maintenance(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, s.ConnString(maintenanceDB))
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", maintenanceDB, err)
	}
	return conn, nil
}

// CreateIfMissing creates name unless it exists and reports whether it did
func (s Server) CreateIfMissing(ctx context.Context, name string) (bool, error) {
	conn, err := s.maintenance(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close(ctx)

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
		return false, fmt.Errorf("look up database %s: %w", name, err)
	}
	if exists {
		return false, nil
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return false, fmt.Errorf("create database %s: %w", name, err)
	}
	return true, nil
}

// Recreate drops name, disconnecting any sessions on it, and creates it empty
func (s Server) Recreate(ctx context.Context, name string) error {
	conn, err := s.maintenance(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, name)
	if err != nil {
		slog.Warn("Failed to terminate sessions", "database", name, "error", err)
	}

	ident := pgx.Identifier{name}.Sanitize()
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("drop database %s: %w", name, err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}

// MigrateDatabase applies every pending migration to name and returns the resulting version
func (s Server) MigrateDatabase(ctx context.Context, name string) (int64, error) {
	pool, err := NewPool(ctx, ToolPoolConfig(s.ConnString(name)))
	if err != nil {
		return 0, err
	}
	defer pool.Close()

	if err := Migrate(ctx, pool); err != nil {
		return 0, err
	}
	return MigrationVersion(ctx, pool)
}
