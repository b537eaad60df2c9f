// Package warehouse manages the analytical database inside the
// cluster: schema setup, the staged COPY/INSERT load, and read-only
// queries against the star schema.
package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/imamik/dwhctl/internal/config"
)

// DB is a single connection to the warehouse database.
type DB struct {
	conn *pgx.Conn
}

// Connect opens a connection to the warehouse database. The simple
// query protocol is used because the cluster's Postgres dialect rejects
// server-side prepares for COPY and catalog statements.
func Connect(ctx context.Context, cfg config.Database) (*DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse warehouse DSN: %w", err)
	}
	connCfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to warehouse at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &DB{conn: conn}, nil
}

// BuildDSN assembles the connection string from the database
// configuration. The host must already be recorded.
func BuildDSN(cfg config.Database) (string, error) {
	if cfg.Host == "" {
		return "", errors.New("cluster host not recorded, provision the cluster first")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   cfg.Name,
	}
	return u.String(), nil
}

// Close closes the underlying connection.
func (db *DB) Close(ctx context.Context) error {
	return db.conn.Close(ctx)
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.Ping(ctx)
}

// Exec runs a statement that returns no rows.
func (db *DB) Exec(ctx context.Context, stmt string) error {
	_, err := db.conn.Exec(ctx, stmt)
	return err
}

// Rows is a fully materialized, stringified query result.
type Rows struct {
	Columns []string
	Records [][]string
}

// Select runs a query and materializes every row as strings, ready for
// table rendering.
func (db *DB) Select(ctx context.Context, query string) (*Rows, error) {
	rows, err := db.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &Rows{}
	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, fd.Name)
	}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make([]string, len(vals))
		for i, v := range vals {
			record[i] = formatValue(v)
		}
		result.Records = append(result.Records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// IsDuplicateTable reports whether err is the duplicate_table error
// returned when creating a table that already exists.
func IsDuplicateTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P07"
}
