package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"  INFO  ", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), logger)
	l := Ctx(ctx)
	l.Info().Str("k", "v").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"k":"v"`) || !strings.Contains(out, "hello") {
		t.Errorf("context logger output = %q", out)
	}
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	// A context without a logger yields a usable logger value.
	l := Ctx(context.Background())
	if l.GetLevel() == zerolog.Disabled {
		t.Error("fallback logger is disabled")
	}
}
