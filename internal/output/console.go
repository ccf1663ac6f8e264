package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"ifcore/internal/checker"
	"ifcore/internal/engine"
)

var statusColors = map[checker.Status]*color.Color{
	checker.StatusPass:    color.New(color.FgGreen),
	checker.StatusFail:    color.New(color.FgRed),
	checker.StatusWarning: color.New(color.FgYellow),
	checker.StatusBlocked: color.New(color.FgMagenta),
	checker.StatusLog:     color.New(color.FgCyan),
}

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	results         []engine.AnnotatedResult // for JSON array output
	allowedStatuses map[checker.Status]bool
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}
	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[checker.Status]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[checker.Status(strings.ToLower(st))] = true
		}
	}
	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	if len(s.allowedStatuses) > 0 {
		if r, ok := v.(engine.AnnotatedResult); ok && !s.allowedStatuses[r.CheckStatus] {
			return nil
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(engine.AnnotatedResult)
		if !ok {
			// Ignore lifecycle events in JSON console mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case engine.AnnotatedResult:
			if err := encoder.Encode(eventFromResult(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		r, ok := v.(engine.AnnotatedResult)
		if !ok {
			// Ignore events in text mode.
			return nil
		}
		status := strings.ToUpper(string(r.CheckStatus))
		if c, ok := statusColors[r.CheckStatus]; ok {
			status = c.Sprint(status)
		}
		line := fmt.Sprintf("[%s] %s: %s", status, r.ElementType, r.ElementName)
		if r.Comment != nil && *r.Comment != "" {
			line += " - " + *r.Comment
		}
		if _, err := fmt.Fprintln(s.writer, line); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
