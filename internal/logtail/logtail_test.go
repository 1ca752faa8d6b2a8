package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"zero lines", 0, nil},
		{"negative lines", -1, nil},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse_JSON(t *testing.T) {
	line := `{"level":"error","time":"2026-03-01T10:15:30.250Z","logger":"api","caller":"api/auth.go:52","msg":"fetch user info failed","error":"dial tcp: refused","status":401}`

	e := Parse(line)
	if !e.Structured {
		t.Fatalf("Structured = false, want true")
	}
	if e.Level != zapcore.ErrorLevel {
		t.Errorf("Level = %v, want error", e.Level)
	}
	want := time.Date(2026, 3, 1, 10, 15, 30, 250_000_000, time.UTC)
	if !e.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", e.Time, want)
	}
	if e.Logger != "api" || e.Caller != "api/auth.go:52" || e.Message != "fetch user info failed" {
		t.Errorf("unexpected header fields: %+v", e)
	}
	if e.Fields["error"] != "dial tcp: refused" || e.Fields["status"] != "401" {
		t.Errorf("Fields = %v", e.Fields)
	}
	if got := e.FieldKeys(); !reflect.DeepEqual(got, []string{"error", "status"}) {
		t.Errorf("FieldKeys() = %v", got)
	}
}

func TestParse_PlainText(t *testing.T) {
	tests := []string{"plain line", "{not json", ""}
	for _, line := range tests {
		e := Parse(line)
		if e.Structured {
			t.Errorf("Parse(%q).Structured = true", line)
		}
		if e.Message != line || e.Level != zapcore.InfoLevel {
			t.Errorf("Parse(%q) = %+v", line, e)
		}
	}
}

func TestParseLinesAndFilter(t *testing.T) {
	lines := []string{
		`{"level":"debug","msg":"request finished","path":"/mood/notes"}`,
		"",
		`{"level":"info","msg":"signed in","user":"alice"}`,
		`{"level":"warn","msg":"refresh failed","error":"timeout"}`,
		"stray text",
	}
	entries := ParseLines(lines)
	if len(entries) != 4 {
		t.Fatalf("ParseLines() returned %d entries, want 4", len(entries))
	}

	if got := Filter(entries, zapcore.InfoLevel, ""); len(got) != 3 {
		t.Errorf("Filter(info) = %d entries, want 3", len(got))
	}
	if got := Filter(entries, zapcore.WarnLevel, ""); len(got) != 1 || got[0].Message != "refresh failed" {
		t.Errorf("Filter(warn) = %+v", got)
	}
	got := Filter(entries, zapcore.DebugLevel, "NOTES")
	if len(got) != 1 || got[0].Fields["path"] != "/mood/notes" {
		t.Errorf("Filter(query) = %+v", got)
	}
}
