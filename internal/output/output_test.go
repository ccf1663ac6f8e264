package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"ifcore/internal/checker"
	"ifcore/internal/engine"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func annotated(name string, status checker.Status, comment string) engine.AnnotatedResult {
	r := checker.NewResult("IfcDoor", name, status, "0.7m", ">= 0.8m")
	if comment != "" {
		r.Comment = checker.Str(comment)
	}
	return engine.AnnotatedResult{
		Result:      r,
		CheckerFile: "checker_doors.yaml",
		CheckerName: "check_door_accessibility",
	}
}

func TestConsoleTextFormat(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text", nil)

	if err := s.Write(Event{Type: "run.started", Checkers: 1}); err != nil {
		t.Fatalf("event write failed: %v", err)
	}
	if err := s.Write(annotated("Door-01", checker.StatusFail, "too narrow")); err != nil {
		t.Fatalf("result write failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	out := buf.String()
	if out != "[FAIL] IfcDoor: Door-01 - too narrow\n" {
		t.Errorf("text output = %q", out)
	}
}

func TestConsoleTextStatusFilter(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text", []string{"FAIL", "warning"})

	s.Write(annotated("Door-01", checker.StatusPass, ""))
	s.Write(annotated("Door-02", checker.StatusFail, ""))
	s.Write(annotated("Door-03", checker.StatusWarning, ""))
	s.Close()

	out := buf.String()
	if strings.Contains(out, "Door-01") {
		t.Error("pass result must be filtered out")
	}
	if !strings.Contains(out, "Door-02") || !strings.Contains(out, "Door-03") {
		t.Errorf("filtered statuses missing: %q", out)
	}
}

func TestConsoleJSONAggregatesAtClose(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "json", nil)

	s.Write(Event{Type: "run.started"})
	s.Write(annotated("Door-01", checker.StatusFail, ""))
	s.Write(annotated("Door-02", checker.StatusPass, ""))

	if buf.Len() != 0 {
		t.Errorf("json mode must not emit before Close, got %q", buf.String())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var results []engine.AnnotatedResult
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(results) != 2 || results[0].ElementName != "Door-01" {
		t.Errorf("aggregate = %+v", results)
	}
	if results[0].CheckerFile != "checker_doors.yaml" {
		t.Errorf("provenance not serialized: %+v", results[0])
	}
}

func TestConsoleNDJSONStreams(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "ndjson", nil)

	s.Write(Event{Type: "run.started", Checkers: 2})
	s.Write(annotated("Door-01", checker.StatusFail, ""))
	s.Write(Event{Type: "run.finished", Results: 1, ExitCode: 1})
	s.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	var types []string
	for _, line := range lines {
		var ev struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("line %q is not JSON: %v", line, err)
		}
		types = append(types, ev.Type)
	}
	want := []string{"run.started", "checker.result", "run.finished"}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("line %d type = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestConsoleUnsupportedFormat(t *testing.T) {
	s := NewConsoleSink(&bytes.Buffer{}, "xml", nil)
	if err := s.Write(annotated("Door-01", checker.StatusPass, "")); err == nil {
		t.Error("unsupported format must error on write")
	}
}

func TestFileSinkFormatInference(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewFileSink(filepath.Join(dir, "out.csv"), ""); err == nil {
		t.Error("unknown extension without explicit format must fail")
	}
	if _, err := NewFileSink("", "json"); err == nil {
		t.Error("empty path must fail")
	}

	s, err := NewFileSink(filepath.Join(dir, "out.jsonl"), "")
	if err != nil {
		t.Fatalf("jsonl inference failed: %v", err)
	}
	s.Close()
}

func TestFileSinkJSONRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	s.Write(Event{Type: "run.started"})
	s.Write(annotated("Door-01", checker.StatusFail, ""))
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var results []engine.AnnotatedResult
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if len(results) != 1 || results[0].ElementName != "Door-01" {
		t.Errorf("results = %+v", results)
	}
}

func TestFileSinkNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	s.Write(annotated("Door-01", checker.StatusPass, ""))
	s.Write(annotated("Door-02", checker.StatusFail, ""))
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

type failingSink struct{ closed bool }

func (s *failingSink) Write(v any) error { return errors.New("sink broken") }
func (s *failingSink) Close() error      { s.closed = true; return nil }

func TestManagerFanOutContinuesPastFailure(t *testing.T) {
	var buf bytes.Buffer
	broken := &failingSink{}
	console := NewConsoleSink(&buf, "text", nil)

	m := NewManager()
	if err := m.AddSink(nil); err == nil {
		t.Error("nil sink must be rejected")
	}
	if err := m.AddSink(broken); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSink(console); err != nil {
		t.Fatal(err)
	}

	err := m.Write(annotated("Door-01", checker.StatusFail, ""))
	if err == nil {
		t.Error("failing sink error must surface")
	}
	if !strings.Contains(buf.String(), "Door-01") {
		t.Error("healthy sink must still receive the write")
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if !broken.closed {
		t.Error("Close must reach every sink")
	}
}
