package store

import (
	"context"
	"time"

	"github.com/iulianpascalau/ts-cache-doctor/common"
)

// Connector defines the access point towards the cache file. Implementations must not
// create or mutate the file in any way.
type Connector interface {
	// Exists returns true if the cache file is present on disk
	Exists() bool

	// Path returns the configured cache file path
	Path() string

	// Open opens a fresh read-only connection towards the cache file
	Open(ctx context.Context) (Conn, error)

	IsInterfaceNil() bool
}

// Conn is one short-lived, read-only connection. Callers own the Close call.
type Conn interface {
	// TableNames enumerates the tables present in the cache
	TableNames(ctx context.Context) ([]string, error)

	// Columns returns the name and declared type of each column of the provided table
	Columns(ctx context.Context, table string) ([]common.ColumnInfo, error)

	// CountRows returns the total number of rows in the provided table
	CountRows(ctx context.Context, table string) (int64, error)

	// TimeBounds returns the minimum and maximum ts values, as stored
	TimeBounds(ctx context.Context, table string) (string, string, error)

	// TagCounts returns the per-tag row counts, descending, truncated to limit entries
	TagCounts(ctx context.Context, table string, limit int) ([]common.TagCount, error)

	// SampleRows returns the limit most recent rows ordered by ts descending
	SampleRows(ctx context.Context, table string, limit int) (*common.Sample, error)

	// CountSince returns the number of rows with ts at or after the provided instant
	CountSince(ctx context.Context, table string, since time.Time) (int64, error)

	Close() error
}
