package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB implementation of Store.
//
// Useful when progress should survive the host, e.g. a kiosk that is
// re-imaged nightly. Uses the same kv_entries layout as SQLiteStore.
type MySQLStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLStore creates a new MySQL-backed store.
//
// The DSN format is:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...]
//
// Example:
//
//	dsn := os.Getenv("CURRICULUM_MYSQL_DSN")
//	st, err := store.NewMySQLStore(dsn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
// Never hardcode credentials; read the DSN from the environment.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	st, err := NewMySQLStoreFromDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

// NewMySQLStoreFromDB wraps an already-open database handle and creates the
// schema if needed. The store takes ownership of db.
func NewMySQLStoreFromDB(ctx context.Context, db *sql.DB) (*MySQLStore, error) {
	m := &MySQLStore{db: db}
	if err := m.createTables(ctx); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return m, nil
}

func (m *MySQLStore) createTables(ctx context.Context) error {
	table := `
		CREATE TABLE IF NOT EXISTS kv_entries (
			entry_key VARCHAR(255) NOT NULL PRIMARY KEY,
			entry_value MEDIUMTEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := m.db.ExecContext(ctx, table); err != nil {
		return fmt.Errorf("failed to create kv_entries table: %w", err)
	}
	return nil
}

func (m *MySQLStore) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Get returns the value for key or ErrNotFound.
func (m *MySQLStore) Get(ctx context.Context, key string) (string, error) {
	if err := m.checkOpen(); err != nil {
		return "", err
	}

	var value string
	err := m.db.QueryRowContext(ctx, "SELECT entry_value FROM kv_entries WHERE entry_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load entry: %w", err)
	}
	return value, nil
}

// Put inserts or replaces the value for key.
func (m *MySQLStore) Put(ctx context.Context, key, value string) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	query := `
		INSERT INTO kv_entries (entry_key, entry_value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)
	`
	if _, err := m.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// Delete removes key if present.
func (m *MySQLStore) Delete(ctx context.Context, key string) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	if _, err := m.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE entry_key = ?", key); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// Close closes the connection pool. Double-close is a no-op.
func (m *MySQLStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	return m.db.Close()
}

// Ping verifies the database connection is alive.
func (m *MySQLStore) Ping(ctx context.Context) error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	return m.db.PingContext(ctx)
}

// Stats returns database connection pool statistics.
func (m *MySQLStore) Stats() sql.DBStats {
	return m.db.Stats()
}
