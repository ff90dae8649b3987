// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{" debug ", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("user_id", "u1").Msg("hello")
	Err(errors.New("boom")).Msg("failed")
	Debug().Msg("debug line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3: %q", len(lines), buf.String())
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if first["message"] != "hello" || first["user_id"] != "u1" || first["service"] != "adinterest" {
		t.Errorf("first line = %v", first)
	}
	if _, ok := first["time"]; ok {
		t.Error("timestamp should be absent when Timestamp is false")
	}
	if !strings.Contains(lines[1], `"error":"boom"`) {
		t.Errorf("Err() line = %s", lines[1])
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf, Timestamp: true})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("dropped")
	Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, `"time"`) {
		t.Errorf("output = %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("console line")
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("console output should not be JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "console line") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestComponentAndSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := Component("classifier")
	logger.Info().Msg("trained")

	if !strings.Contains(buf.String(), `"component":"classifier"`) {
		t.Errorf("output = %s", buf.String())
	}
}
