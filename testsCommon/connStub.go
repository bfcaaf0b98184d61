package testsCommon

import (
	"context"
	"time"

	"github.com/iulianpascalau/ts-cache-doctor/common"
)

// ConnStub -
type ConnStub struct {
	TableNamesHandler func(ctx context.Context) ([]string, error)
	ColumnsHandler    func(ctx context.Context, table string) ([]common.ColumnInfo, error)
	CountRowsHandler  func(ctx context.Context, table string) (int64, error)
	TimeBoundsHandler func(ctx context.Context, table string) (string, string, error)
	TagCountsHandler  func(ctx context.Context, table string, limit int) ([]common.TagCount, error)
	SampleRowsHandler func(ctx context.Context, table string, limit int) (*common.Sample, error)
	CountSinceHandler func(ctx context.Context, table string, since time.Time) (int64, error)
	CloseHandler      func() error
}

// TableNames -
func (stub *ConnStub) TableNames(ctx context.Context) ([]string, error) {
	if stub.TableNamesHandler != nil {
		return stub.TableNamesHandler(ctx)
	}

	return []string{"ts_data"}, nil
}

// Columns -
func (stub *ConnStub) Columns(ctx context.Context, table string) ([]common.ColumnInfo, error) {
	if stub.ColumnsHandler != nil {
		return stub.ColumnsHandler(ctx, table)
	}

	return []common.ColumnInfo{
		{Name: "ts", Type: "TEXT"},
		{Name: "tag_name", Type: "TEXT"},
	}, nil
}

// CountRows -
func (stub *ConnStub) CountRows(ctx context.Context, table string) (int64, error) {
	if stub.CountRowsHandler != nil {
		return stub.CountRowsHandler(ctx, table)
	}

	return 0, nil
}

// TimeBounds -
func (stub *ConnStub) TimeBounds(ctx context.Context, table string) (string, string, error) {
	if stub.TimeBoundsHandler != nil {
		return stub.TimeBoundsHandler(ctx, table)
	}

	return "", "", nil
}

// TagCounts -
func (stub *ConnStub) TagCounts(ctx context.Context, table string, limit int) ([]common.TagCount, error) {
	if stub.TagCountsHandler != nil {
		return stub.TagCountsHandler(ctx, table, limit)
	}

	return nil, nil
}

// SampleRows -
func (stub *ConnStub) SampleRows(ctx context.Context, table string, limit int) (*common.Sample, error) {
	if stub.SampleRowsHandler != nil {
		return stub.SampleRowsHandler(ctx, table, limit)
	}

	return &common.Sample{}, nil
}

// CountSince -
func (stub *ConnStub) CountSince(ctx context.Context, table string, since time.Time) (int64, error) {
	if stub.CountSinceHandler != nil {
		return stub.CountSinceHandler(ctx, table, since)
	}

	return 0, nil
}

// Close -
func (stub *ConnStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}
