package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	type spec struct {
		name   string
		exp    Level
		expErr bool
	}
	specs := []spec{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{" warning", Warning, false},
		{"error", Error, false},
		{"verbose", Notice, true},
	}

	for index, s := range specs {
		got, err := ParseLevel(s.name)
		if (err != nil) != s.expErr {
			t.Errorf("[spec %d] expected error to be %t; got %v", index, s.expErr, err)
			continue
		}
		if got != s.exp {
			t.Errorf("[spec %d] expected level %s; got %s", index, s.exp, got)
		}
	}
}

func TestLevelForVerbosity(t *testing.T) {
	exp := []Level{Notice, Info, Debug, Debug}
	for count, level := range exp {
		if got := LevelForVerbosity(count); got != level {
			t.Errorf("expected %d -v flags to map to %s; got %s", count, level, got)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(GetLevel())

	logger := New("test")

	SetLevel(Warning)
	logger.Info("hidden message")
	logger.Warning("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Fatalf("expected info message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "[test]") {
		t.Fatalf("expected warning message with module name; got %q", out)
	}

	// SetSink keeps the active level
	SetSink(&buf)
	if GetLevel() != Warning {
		t.Fatalf("expected level to survive a sink change; got %s", GetLevel())
	}
}
