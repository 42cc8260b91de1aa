package logx

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core)).With(zap.String("system", "grid"))

	l.Info("placed", zap.Int("x", 3))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["system"] != "grid" {
		t.Errorf("Expected system field, got %v", fields)
	}
	if fields["x"] != int64(3) {
		t.Errorf("Expected x=3, got %v", fields["x"])
	}
}

func TestNopAndOrNop(t *testing.T) {
	// 不应 panic
	Nop().Error("ignored")
	OrNop(nil).Warn("ignored")

	var z *ZapLogger
	if z.With() == nil {
		t.Error("With on nil ZapLogger should return a usable logger")
	}

	core, logs := observer.New(zapcore.InfoLevel)
	custom := NewZapLogger(zap.New(core))
	OrNop(custom).Info("kept")
	if logs.Len() != 1 {
		t.Errorf("OrNop should keep a non-nil logger")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("test", Config{Level: "WARN"}, &buf)

	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
	if !strings.Contains(out, "test") {
		t.Errorf("logger name missing: %q", out)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("test", Config{Level: "loud"}, &buf)

	l.Debug("debug-line")
	l.Info("info-line")
	_ = l.Sync()

	if strings.Contains(buf.String(), "debug-line") {
		t.Error("debug should be filtered when level falls back to info")
	}
	if !strings.Contains(buf.String(), "info-line") {
		t.Error("info line missing")
	}
}
