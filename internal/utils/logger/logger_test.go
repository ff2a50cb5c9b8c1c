package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")
	if log.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("level = %s, want warn", log.GetLevel())
	}

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info line written at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn line missing: %s", buf.String())
	}
}

func TestNewWithWriter_UnknownLevel(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "loud")
	if log.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info", log.GetLevel())
	}
}
