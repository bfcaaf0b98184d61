package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/iulianpascalau/ts-cache-doctor/common"
	"github.com/iulianpascalau/ts-cache-doctor/config"
	"github.com/iulianpascalau/ts-cache-doctor/store"
	"github.com/iulianpascalau/ts-cache-doctor/testsCommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		Path:      "realtime_data.db",
		TableName: "ts_data",
	}
}

func testVerifierConfig() config.VerifierConfig {
	return config.VerifierConfig{
		RecencyWindowSeconds: 3600,
		TopTags:              10,
		SampleRows:           5,
	}
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	t.Run("nil connector should error", func(t *testing.T) {
		v, err := NewVerifier(testStoreConfig(), testVerifierConfig(), nil, &bytes.Buffer{})

		assert.Nil(t, v)
		assert.True(t, v.IsInterfaceNil())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil connector")
	})
	t.Run("nil output writer should error", func(t *testing.T) {
		v, err := NewVerifier(testStoreConfig(), testVerifierConfig(), &testsCommon.ConnectorStub{}, nil)

		assert.Nil(t, v)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil output writer")
	})
	t.Run("should work", func(t *testing.T) {
		v, err := NewVerifier(testStoreConfig(), testVerifierConfig(), &testsCommon.ConnectorStub{}, &bytes.Buffer{})

		assert.NotNil(t, v)
		assert.False(t, v.IsInterfaceNil())
		assert.Nil(t, err)
	})
}

func TestVerifier_Run(t *testing.T) {
	t.Parallel()

	t.Run("missing cache file should fail without opening a connection", func(t *testing.T) {
		t.Parallel()

		opened := false
		connector := &testsCommon.ConnectorStub{
			ExistsHandler: func() bool {
				return false
			},
			OpenHandler: func(ctx context.Context) (store.Conn, error) {
				opened = true
				return &testsCommon.ConnStub{}, nil
			},
		}

		out := &bytes.Buffer{}
		v, _ := NewVerifier(testStoreConfig(), testVerifierConfig(), connector, out)

		_, verdict := v.Run(context.Background())
		assert.False(t, verdict.Success)
		assert.Equal(t, common.FailureStoreNotFound, verdict.Kind)
		assert.False(t, opened)
		assert.Contains(t, out.String(), "❌")
		assert.Contains(t, out.String(), "ingestion service")
	})
	t.Run("open error should fail with connection kind", func(t *testing.T) {
		t.Parallel()

		connector := &testsCommon.ConnectorStub{
			OpenHandler: func(ctx context.Context) (store.Conn, error) {
				return nil, errors.New("file is locked")
			},
		}

		out := &bytes.Buffer{}
		v, _ := NewVerifier(testStoreConfig(), testVerifierConfig(), connector, out)

		_, verdict := v.Run(context.Background())
		assert.False(t, verdict.Success)
		assert.Equal(t, common.FailureConnection, verdict.Kind)
		assert.Contains(t, verdict.Detail, "file is locked")
	})
	t.Run("missing table should fail after the schema check and close the connection", func(t *testing.T) {
		t.Parallel()

		closed := false
		countCalled := false
		conn := &testsCommon.ConnStub{
			TableNamesHandler: func(ctx context.Context) ([]string, error) {
				return []string{"some_other_table"}, nil
			},
			CountRowsHandler: func(ctx context.Context, table string) (int64, error) {
				countCalled = true
				return 0, nil
			},
			CloseHandler: func() error {
				closed = true
				return nil
			},
		}
		connector := &testsCommon.ConnectorStub{
			OpenHandler: func(ctx context.Context) (store.Conn, error) {
				return conn, nil
			},
		}

		out := &bytes.Buffer{}
		v, _ := NewVerifier(testStoreConfig(), testVerifierConfig(), connector, out)

		_, verdict := v.Run(context.Background())
		assert.False(t, verdict.Success)
		assert.Equal(t, common.FailureSchemaMissing, verdict.Kind)
		assert.False(t, countCalled)
		assert.True(t, closed)
	})
	t.Run("empty table should succeed with a warning and skip data checks", func(t *testing.T) {
		t.Parallel()

		boundsCalled := false
		conn := &testsCommon.ConnStub{
			CountRowsHandler: func(ctx context.Context, table string) (int64, error) {
				return 0, nil
			},
			TimeBoundsHandler: func(ctx context.Context, table string) (string, string, error) {
				boundsCalled = true
				return "", "", nil
			},
		}
		connector := &testsCommon.ConnectorStub{
			OpenHandler: func(ctx context.Context) (store.Conn, error) {
				return conn, nil
			},
		}

		out := &bytes.Buffer{}
		v, _ := NewVerifier(testStoreConfig(), testVerifierConfig(), connector, out)

		report, verdict := v.Run(context.Background())
		assert.True(t, verdict.Success)
		assert.True(t, verdict.Warning)
		assert.True(t, report.Empty)
		assert.False(t, boundsCalled)
		assert.Contains(t, out.String(), "⚠️")
	})
	t.Run("query error should fail with query kind and close the connection", func(t *testing.T) {
		t.Parallel()

		closed := false
		conn := &testsCommon.ConnStub{
			CountRowsHandler: func(ctx context.Context, table string) (int64, error) {
				return 0, errors.New("disk I/O error")
			},
			CloseHandler: func() error {
				closed = true
				return nil
			},
		}
		connector := &testsCommon.ConnectorStub{
			OpenHandler: func(ctx context.Context) (store.Conn, error) {
				return conn, nil
			},
		}

		out := &bytes.Buffer{}
		v, _ := NewVerifier(testStoreConfig(), testVerifierConfig(), connector, out)

		_, verdict := v.Run(context.Background())
		assert.False(t, verdict.Success)
		assert.Equal(t, common.FailureQuery, verdict.Kind)
		assert.Contains(t, verdict.Detail, "disk I/O error")
		assert.True(t, closed)
	})
	t.Run("populated table should produce the full report", func(t *testing.T) {
		t.Parallel()

		conn := &testsCommon.ConnStub{
			CountRowsHandler: func(ctx context.Context, table string) (int64, error) {
				return 1234567, nil
			},
			TimeBoundsHandler: func(ctx context.Context, table string) (string, string, error) {
				return "2026-08-30 10:00:00", "2026-08-30 11:30:00", nil
			},
			TagCountsHandler: func(ctx context.Context, table string, limit int) ([]common.TagCount, error) {
				require.Equal(t, 10, limit)
				return []common.TagCount{
					{TagName: "boiler.temperature", Count: 900000},
					{TagName: "boiler.pressure", Count: 334567},
				}, nil
			},
			SampleRowsHandler: func(ctx context.Context, table string, limit int) (*common.Sample, error) {
				require.Equal(t, 5, limit)
				return &common.Sample{
					Columns: []string{"ts", "tag_name", "value"},
					Rows: [][]string{
						{"2026-08-30 11:30:00", "boiler.pressure", "1.19"},
					},
				}, nil
			},
			CountSinceHandler: func(ctx context.Context, table string, since time.Time) (int64, error) {
				return 4200, nil
			},
		}
		connector := &testsCommon.ConnectorStub{
			OpenHandler: func(ctx context.Context) (store.Conn, error) {
				return conn, nil
			},
		}

		out := &bytes.Buffer{}
		v, _ := NewVerifier(testStoreConfig(), testVerifierConfig(), connector, out)

		report, verdict := v.Run(context.Background())
		assert.True(t, verdict.Success)
		assert.False(t, verdict.Warning)

		buff, err := json.Marshal(report)
		require.NoError(t, err)
		assert.Equal(t, int64(1234567), gjson.GetBytes(buff, "totalRows").Int())
		assert.Equal(t, "boiler.temperature", gjson.GetBytes(buff, "tagCounts.0.tagName").String())
		assert.Equal(t, int64(4200), gjson.GetBytes(buff, "recentRows").Int())
		assert.Equal(t, "ts", gjson.GetBytes(buff, "columns.0.name").String())

		output := out.String()
		assert.Contains(t, output, "1,234,567")
		assert.Contains(t, output, "boiler.pressure")
		assert.Contains(t, output, "✅ cache verification completed")
	})
}
