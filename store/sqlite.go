package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iulianpascalau/ts-cache-doctor/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("store")

// TimeLayout is the textual datetime layout used by the ts column
const TimeLayout = "2006-01-02 15:04:05"

// sqliteConnector opens short-lived read-only connections towards the cache file
type sqliteConnector struct {
	path string
}

// NewSQLiteConnector creates a new read-only connector for the provided cache file path
func NewSQLiteConnector(path string) *sqliteConnector {
	return &sqliteConnector{
		path: path,
	}
}

// Exists returns true if the cache file is present on disk
func (connector *sqliteConnector) Exists() bool {
	_, err := os.Stat(connector.path)

	return err == nil
}

// Path returns the configured cache file path
func (connector *sqliteConnector) Path() string {
	return connector.path
}

// Open opens a fresh read-only connection. mode=ro makes the driver refuse writes and,
// just as important, refuse to create the file when it is missing.
func (connector *sqliteConnector) Open(ctx context.Context) (Conn, error) {
	db, err := sql.Open("sqlite3", "file:"+connector.path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, errOpenFailed{inner: err}
	}

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, errOpenFailed{inner: err}
	}

	log.Debug("opened read-only connection", "path", connector.path)

	return &sqliteConn{db: db}, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (connector *sqliteConnector) IsInterfaceNil() bool {
	return connector == nil
}

// sqliteConn is one read-only connection towards the cache file
type sqliteConn struct {
	db *sql.DB
}

// TableNames enumerates the tables present in the cache
func (conn *sqliteConn) TableNames(ctx context.Context) ([]string, error) {
	rows, err := conn.db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var names []string
	for rows.Next() {
		var name string
		err = rows.Scan(&name)
		if err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

// Columns returns the name and declared type of each column of the provided table
func (conn *sqliteConn) Columns(ctx context.Context, table string) ([]common.ColumnInfo, error) {
	rows, err := conn.db.QueryContext(ctx, "SELECT name, type FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var columns []common.ColumnInfo
	for rows.Next() {
		var info common.ColumnInfo
		err = rows.Scan(&info.Name, &info.Type)
		if err != nil {
			return nil, err
		}

		columns = append(columns, info)
	}

	return columns, rows.Err()
}

// CountRows returns the total number of rows in the provided table
func (conn *sqliteConn) CountRows(ctx context.Context, table string) (int64, error) {
	var count int64
	err := conn.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdentifier(table)).Scan(&count)

	return count, err
}

// TimeBounds returns the minimum and maximum ts values, as stored
func (conn *sqliteConn) TimeBounds(ctx context.Context, table string) (string, string, error) {
	var minTs, maxTs sql.NullString
	err := conn.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM "+quoteIdentifier(table)).Scan(&minTs, &maxTs)
	if err != nil {
		return "", "", err
	}

	return minTs.String, maxTs.String, nil
}

// TagCounts returns the per-tag row counts, descending, truncated to limit entries
func (conn *sqliteConn) TagCounts(ctx context.Context, table string, limit int) ([]common.TagCount, error) {
	query := "SELECT tag_name, COUNT(*) AS cnt FROM " + quoteIdentifier(table) + " GROUP BY tag_name ORDER BY cnt DESC LIMIT ?"
	rows, err := conn.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var counts []common.TagCount
	for rows.Next() {
		var tc common.TagCount
		err = rows.Scan(&tc.TagName, &tc.Count)
		if err != nil {
			return nil, err
		}

		counts = append(counts, tc)
	}

	return counts, rows.Err()
}

// SampleRows returns the limit most recent rows ordered by ts descending. Columns beyond
// ts and tag_name are opaque to this tool, so everything is scanned generically and
// rendered as text.
func (conn *sqliteConn) SampleRows(ctx context.Context, table string, limit int) (*common.Sample, error) {
	query := "SELECT * FROM " + quoteIdentifier(table) + " ORDER BY ts DESC LIMIT ?"
	rows, err := conn.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	sample := &common.Sample{
		Columns: columns,
	}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		err = rows.Scan(pointers...)
		if err != nil {
			return nil, err
		}

		rendered := make([]string, len(columns))
		for i, value := range values {
			rendered[i] = renderValue(value)
		}

		sample.Rows = append(sample.Rows, rendered)
	}

	return sample, rows.Err()
}

// CountSince returns the number of rows with ts at or after the provided instant. The
// bound is always passed as a query parameter, never interpolated.
func (conn *sqliteConn) CountSince(ctx context.Context, table string, since time.Time) (int64, error) {
	query := "SELECT COUNT(*) FROM " + quoteIdentifier(table) + " WHERE ts >= ?"

	var count int64
	err := conn.db.QueryRowContext(ctx, query, since.Format(TimeLayout)).Scan(&count)

	return count, err
}

// Close closes the underlying database handle
func (conn *sqliteConn) Close() error {
	return conn.db.Close()
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(TimeLayout)
	default:
		return fmt.Sprintf("%v", v)
	}
}
