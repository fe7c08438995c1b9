// Package database provides the MySQL dataset source for gomissing:
// ordered JSON row documents read from one column of one table.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/dbsmedya/gomissing/internal/config"
	"github.com/dbsmedya/gomissing/internal/sqlutil"
)

// Source manages the connection to the dataset database.
type Source struct {
	DB     *sql.DB
	config *config.Database
}

// NewSource creates a Source from configuration.
func NewSource(cfg *config.Database) *Source {
	return &Source{config: cfg}
}

// Connect opens the connection pool and verifies it with a ping.
func (s *Source) Connect(ctx context.Context) error {
	db, err := sql.Open("mysql", BuildDSN(s.config))
	if err != nil {
		return fmt.Errorf("failed to open dataset database: %w", err)
	}

	if s.config.MaxConnections > 0 {
		db.SetMaxOpenConns(s.config.MaxConnections)
	}
	if s.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(s.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping dataset database: %w", err)
	}

	s.DB = db
	return nil
}

// Close releases the connection pool.
func (s *Source) Close() error {
	if s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("dataset database close: %w", err)
	}
	return nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.Database) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	params := "?parseTime=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// LoadRows reads every row document from the configured table, ordered
// by the order column so the report's key lists are deterministic. Each
// document is one JSON object.
func (s *Source) LoadRows(ctx context.Context) ([]map[string]any, error) {
	query, err := s.buildQuery()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []map[string]any
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode row document %d: %w", len(docs), err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataset row iteration failed: %w", err)
	}
	return docs, nil
}

func (s *Source) buildQuery() (string, error) {
	table, err := sqlutil.QuoteIdentifierSafe(s.config.Table)
	if err != nil {
		return "", err
	}
	doc, err := sqlutil.QuoteIdentifierSafe(s.config.DocColumn)
	if err != nil {
		return "", err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", doc, table)
	if s.config.OrderColumn != "" {
		order, err := sqlutil.QuoteIdentifierSafe(s.config.OrderColumn)
		if err != nil {
			return "", err
		}
		query += fmt.Sprintf(" ORDER BY %s ASC", order)
	}
	return query, nil
}
