package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "carmesh.log")

	if err := InitWithFileConfig("info", DefaultFileConfig(logFile), false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	t.Cleanup(func() {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
	})

	Named("builder").Info("section committed", zap.Int("section", 3))
	Log.Debug("filtered out at info level")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "section committed") {
		t.Errorf("log file missing message: %s", content)
	}
	if !strings.Contains(content, `"logger":"builder"`) {
		t.Errorf("log file missing logger name: %s", content)
	}
	if strings.Contains(content, "filtered out") {
		t.Error("debug message written at info level")
	}
}

func TestDefaultIsNop(t *testing.T) {
	// Logging before Init must not panic.
	Log.Info("before init")
	Sugar.Infof("before init %d", 1)
}
