package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("wrote 2 files")

	out := buf.String()
	if !strings.Contains(out, "wrote 2 files (") {
		t.Errorf("progress output %q should contain message and duration", out)
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}

func TestLogHooks(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(h *logHooks)
		want  string
	}{
		{
			name:  "load complete",
			level: log.DebugLevel,
			emit: func(h *logHooks) {
				h.OnLoadComplete(context.Background(), "trace.folded", 6, time.Millisecond, nil)
			},
			want: "load finished",
		},
		{
			name:  "render failure",
			level: log.DebugLevel,
			emit: func(h *logHooks) {
				h.OnRenderComplete(context.Background(), []string{"png"}, 0, errors.New("boom"))
			},
			want: "render failed",
		},
		{
			name:  "frame",
			level: log.DebugLevel,
			emit:  func(h *logHooks) { h.OnFrame("spring", 16*time.Millisecond, 0.5, 3) },
			want:  "max_error=0.5",
		},
		{
			name:  "converged",
			level: log.DebugLevel,
			emit:  func(h *logHooks) { h.OnConverged("incremental", 42) },
			want:  "frames=42",
		},
		{
			name:  "quiet at info",
			level: log.InfoLevel,
			emit:  func(h *logHooks) { h.OnFrame("spring", time.Millisecond, 1, 1) },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogHooks(newLogger(&buf, tt.level)))
			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q should contain %q", out, tt.want)
			}
		})
	}
}
