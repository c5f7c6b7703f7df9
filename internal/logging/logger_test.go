package logging

import (
	"bytes"
	"log"
	"testing"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Logger{level: level, out: log.New(&buf, "", 0)}, &buf
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	l, buf := newTestLogger(Warn)
	l.Debug("should not appear")
	l.Info("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below the configured level, got %q", buf.String())
	}

	l.Warn("boundary")
	if buf.Len() == 0 {
		t.Fatal("expected output at the configured level")
	}
}

func TestLoggerFormatsArgs(t *testing.T) {
	l, buf := newTestLogger(Debug)
	l.Info("count=%d name=%s", 3, "cat")
	if !bytes.Contains(buf.Bytes(), []byte("count=3 name=cat")) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"info":    Info,
		"warn":    Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetFallsBackWhenUninitialized(t *testing.T) {
	l := Get()
	if l == nil {
		t.Fatal("Get() returned nil without Init having been called")
	}
}
