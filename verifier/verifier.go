package verifier

import (
	"context"
	"errors"
	"io"
	"text/tabwriter"
	"time"

	"github.com/iulianpascalau/ts-cache-doctor/common"
	"github.com/iulianpascalau/ts-cache-doctor/config"
	"github.com/iulianpascalau/ts-cache-doctor/store"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var log = logger.GetOrCreate("verifier")

// verifier runs the read-only diagnostic check sequence against the cache file
type verifier struct {
	storeCfg  config.StoreConfig
	cfg       config.VerifierConfig
	connector store.Connector
	out       io.Writer
	printer   *message.Printer
}

// NewVerifier creates a new verifier instance
func NewVerifier(
	storeCfg config.StoreConfig,
	cfg config.VerifierConfig,
	connector store.Connector,
	out io.Writer,
) (*verifier, error) {
	if check.IfNil(connector) {
		return nil, errors.New("nil connector")
	}
	if out == nil {
		return nil, errors.New("nil output writer")
	}

	return &verifier{
		storeCfg:  storeCfg,
		cfg:       cfg,
		connector: connector,
		out:       out,
		printer:   message.NewPrinter(language.English),
	}, nil
}

// Run executes the whole check sequence and returns the gathered report along with the
// verdict. Expected conditions (missing file, missing table, empty table) come back as
// verdict data, never as errors.
func (v *verifier) Run(ctx context.Context) (*common.Report, common.Verdict) {
	report := &common.Report{
		StorePath: v.storeCfg.Path,
	}

	if !v.connector.Exists() {
		v.printf("❌ cache file does not exist: %s\n", v.storeCfg.Path)
		v.printf("   make sure the ingestion service is running\n")
		return report, common.FailureVerdict(common.FailureStoreNotFound, "cache file does not exist: "+v.storeCfg.Path)
	}

	conn, err := v.connector.Open(ctx)
	if err != nil {
		v.printf("❌ %s\n", err.Error())
		return report, common.FailureVerdict(common.FailureConnection, err.Error())
	}
	defer func() {
		_ = conn.Close()
	}()

	v.printf("✅ connected to cache: %s\n", v.storeCfg.Path)

	return report, v.runChecks(ctx, conn, report)
}

func (v *verifier) runChecks(ctx context.Context, conn store.Conn, report *common.Report) common.Verdict {
	tables, err := conn.TableNames(ctx)
	if err != nil {
		return v.queryFailure("failed to list tables", err)
	}
	report.Tables = tables
	v.printf("📋 tables in cache: %v\n", tables)

	if !contains(tables, v.storeCfg.TableName) {
		v.printf("❌ table %s does not exist\n", v.storeCfg.TableName)
		return common.FailureVerdict(common.FailureSchemaMissing, "table "+v.storeCfg.TableName+" does not exist")
	}

	columns, err := conn.Columns(ctx, v.storeCfg.TableName)
	if err != nil {
		return v.queryFailure("failed to read table columns", err)
	}
	report.Columns = columns
	v.printf("🧱 columns of %s:\n", v.storeCfg.TableName)
	for _, column := range columns {
		v.printf("   %s: %s\n", column.Name, column.Type)
	}

	totalRows, err := conn.CountRows(ctx, v.storeCfg.TableName)
	if err != nil {
		return v.queryFailure("failed to count rows", err)
	}
	report.TotalRows = totalRows
	v.printf("📊 total rows: %s\n", v.printer.Sprintf("%d", totalRows))

	if totalRows == 0 {
		report.Empty = true
		v.printf("⚠️  the cache holds no data yet\n")
		return common.WarningVerdict("the cache holds no data yet")
	}

	minTs, maxTs, err := conn.TimeBounds(ctx, v.storeCfg.TableName)
	if err != nil {
		return v.queryFailure("failed to compute time bounds", err)
	}
	report.MinTimestamp = minTs
	report.MaxTimestamp = maxTs
	v.printf("⏰ data time range: %s to %s\n", minTs, maxTs)

	tagCounts, err := conn.TagCounts(ctx, v.storeCfg.TableName, v.cfg.TopTags)
	if err != nil {
		return v.queryFailure("failed to compute tag statistics", err)
	}
	report.TagCounts = tagCounts
	v.printf("🏷️  top %d tags:\n", v.cfg.TopTags)
	for _, tc := range tagCounts {
		v.printf("   %s: %s rows\n", tc.TagName, v.printer.Sprintf("%d", tc.Count))
	}

	sample, err := conn.SampleRows(ctx, v.storeCfg.TableName, v.cfg.SampleRows)
	if err != nil {
		return v.queryFailure("failed to fetch sample rows", err)
	}
	report.Sample = sample
	v.printf("🕐 most recent %d rows:\n", v.cfg.SampleRows)
	v.printSample(sample)

	recencyWindow := time.Duration(v.cfg.RecencyWindowSeconds) * time.Second
	recentRows, err := conn.CountSince(ctx, v.storeCfg.TableName, time.Now().Add(-recencyWindow))
	if err != nil {
		return v.queryFailure("failed to count recent rows", err)
	}
	report.RecentRows = recentRows
	v.printf("📈 rows in the last %s: %s\n", recencyWindow, v.printer.Sprintf("%d", recentRows))

	v.printf("✅ cache verification completed\n")

	return common.SuccessVerdict()
}

func (v *verifier) queryFailure(message string, err error) common.Verdict {
	detail := message + ": " + err.Error()
	v.printf("❌ %s\n", detail)
	log.Debug("verification query failed", "error", err)

	return common.FailureVerdict(common.FailureQuery, detail)
}

func (v *verifier) printSample(sample *common.Sample) {
	writer := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	printRow(writer, sample.Columns)
	for _, row := range sample.Rows {
		printRow(writer, row)
	}
	_ = writer.Flush()
}

func printRow(writer io.Writer, cells []string) {
	line := "  "
	for i, cell := range cells {
		if i > 0 {
			line += "\t"
		}
		line += cell
	}
	_, _ = io.WriteString(writer, line+"\n")
}

func (v *verifier) printf(format string, args ...any) {
	_, _ = v.printer.Fprintf(v.out, format, args...)
}

func contains(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}

	return false
}

// IsInterfaceNil returns true if the value under the interface is nil
func (v *verifier) IsInterfaceNil() bool {
	return v == nil
}
