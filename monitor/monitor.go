package monitor

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/iulianpascalau/ts-cache-doctor/common"
	"github.com/iulianpascalau/ts-cache-doctor/config"
	"github.com/iulianpascalau/ts-cache-doctor/store"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var log = logger.GetOrCreate("monitor")

// monitor observes row-count changes over a bounded wall-clock session
type monitor struct {
	storeCfg  config.StoreConfig
	budget    time.Duration
	interval  time.Duration
	connector store.Connector
	out       io.Writer
	printer   *message.Printer
}

// NewMonitor creates a new monitor instance
func NewMonitor(
	storeCfg config.StoreConfig,
	cfg config.MonitorConfig,
	connector store.Connector,
	out io.Writer,
) (*monitor, error) {
	if check.IfNil(connector) {
		return nil, errors.New("nil connector")
	}
	if out == nil {
		return nil, errors.New("nil output writer")
	}

	return &monitor{
		storeCfg:  storeCfg,
		budget:    time.Duration(cfg.SessionSeconds) * time.Second,
		interval:  time.Duration(cfg.PollIntervalSeconds) * time.Second,
		connector: connector,
		out:       out,
		printer:   message.NewPrinter(language.English),
	}, nil
}

// Run polls the cache until the session budget elapses or the context is cancelled. One
// fresh read-only connection is opened and closed per tick. Every failure is handled
// here and converted into printed output.
func (m *monitor) Run(ctx context.Context) {
	if !m.connector.Exists() {
		m.printf("❌ cache file does not exist: %s\n", m.storeCfg.Path)
		m.printf("   make sure the ingestion service is running\n")
		return
	}

	m.printf("🔍 monitoring data updates for %s (one check every %s)\n", m.budget, m.interval)

	var lastCount int64
	haveBaseline := false
	var sessionErr error

	common.RunBounded(ctx, m.budget, m.interval, func(tickCtx context.Context) bool {
		count, err := m.readCount(tickCtx)
		if err != nil {
			sessionErr = err
			return false
		}

		if !haveBaseline {
			haveBaseline = true
			lastCount = count
			log.Debug("baseline row count established", "count", count)
			return true
		}

		if count != lastCount {
			m.printDelta(lastCount, count)
		}
		lastCount = count

		return true
	})

	switch {
	case ctx.Err() != nil:
		m.printf("⏹  monitoring stopped\n")
	case sessionErr != nil:
		m.printf("❌ monitoring session failed: %s\n", sessionErr.Error())
	default:
		m.printf("✅ monitoring session completed\n")
	}
}

func (m *monitor) readCount(ctx context.Context) (int64, error) {
	conn, err := m.connector.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = conn.Close()
	}()

	return conn.CountRows(ctx, m.storeCfg.TableName)
}

func (m *monitor) printDelta(oldCount int64, newCount int64) {
	delta := m.printer.Sprintf("%d", newCount-oldCount)
	if newCount > oldCount {
		delta = "+" + delta
	}

	m.printf("[%s] 📊 row count changed: %s → %s (%s)\n",
		time.Now().Format("15:04:05"),
		m.printer.Sprintf("%d", oldCount),
		m.printer.Sprintf("%d", newCount),
		delta,
	)
}

func (m *monitor) printf(format string, args ...any) {
	_, _ = m.printer.Fprintf(m.out, format, args...)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (m *monitor) IsInterfaceNil() bool {
	return m == nil
}
