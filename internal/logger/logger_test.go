package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestForSession(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	l := ForSession("abc")
	l.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"session":"abc"`) {
		t.Errorf("output: %s", buf.String())
	}

	buf.Reset()
	l = ForSession("")
	l.Info().Msg("plain")
	if strings.Contains(buf.String(), "session") {
		t.Errorf("empty session should not be tagged: %s", buf.String())
	}
}
