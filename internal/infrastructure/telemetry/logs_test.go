package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type exportedRecord struct {
	body     string
	severity otellog.Severity
}

// recordingExporter keeps what the provider exports
type recordingExporter struct {
	mu      sync.Mutex
	records []exportedRecord
}

func (e *recordingExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, exportedRecord{body: r.Body().AsString(), severity: r.Severity()})
	}
	return nil
}

func (e *recordingExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingExporter) ForceFlush(context.Context) error { return nil }

func (e *recordingExporter) exported() []exportedRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]exportedRecord(nil), e.records...)
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.False(t, lp.Core(zapcore.DebugLevel).Enabled(zapcore.ErrorLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestLoggerProvider_Core(t *testing.T) {
	exporter := &recordingExporter{}
	lp := &LoggerProvider{
		provider: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter))),
		logger:   zap.NewNop(),
		config:   LogsConfig{Enabled: true, ServiceName: "storefront"},
	}
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })

	local := zap.NewNop()
	log := zap.New(zapcore.NewTee(local.Core(), lp.Core(zapcore.InfoLevel)))
	log.Debug("cart resolved")
	log.Info("order placed", zap.String("order_id", "000123"))
	log.With(zap.String("session", "s1")).Warn("lookup failed")

	records := exporter.exported()
	require.Len(t, records, 2)
	assert.Equal(t, "order placed", records[0].body)
	assert.Equal(t, otellog.SeverityInfo, records[0].severity)
	assert.Equal(t, "lookup failed", records[1].body)
	assert.Equal(t, otellog.SeverityWarn, records[1].severity)
}
