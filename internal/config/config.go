package config

import (
	"fmt"
	"strings"
)

type Config struct {
	// MAINTAINER NOTE: if you add/change/remove config fields that affect run
	// behavior, keep the CLI flags in internal/cli/check.go in sync.
	Discovery Discovery
	Params    Params
	Output    Output
	Runtime   Runtime
}

type Discovery struct {
	// CheckersDir is the directory scanned for checker manifests (see --checkers-dir).
	CheckersDir string

	// Filter restricts execution to checker sources whose file name contains
	// this substring, case-insensitively (see --filter).
	Filter string

	// RequireCheckers makes an empty discovery result a fatal error (see --require-checkers).
	RequireCheckers bool
}

type Params struct {
	// Set provides parameter overrides forwarded to every check function.
	// Entries are of the form key=value (repeatable; comma-separated accepted;
	// see --set). Check functions ignore keys they do not recognize.
	Set []string
}

type Output struct {
	// ConsoleFormat controls the console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by check status (see --console-filter-status).
	// Allowed values: pass, fail, warning, blocked, log.
	ConsoleFilterStatus []string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out
	// file extension.
	OutFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool

	// Archive is the path of the bbolt run archive to append this run to
	// (see --archive). Empty disables archiving.
	Archive string
}

type Runtime struct {
	// Concurrency bounds parallel checker invocation (see --concurrency).
	// 1 means strictly sequential; higher values preserve result order.
	Concurrency int

	// Verbose prints the full execution log after the run (see --verbose).
	Verbose bool
}

func New() *Config {
	return &Config{
		Discovery: Discovery{CheckersDir: "./checkers"},
		Output:    Output{ConsoleFormat: "text"},
		Runtime:   Runtime{Concurrency: 1},
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Discovery.CheckersDir) == "" {
		return fmt.Errorf("checkers directory must not be empty")
	}

	switch normalizeEnumValue(c.Output.ConsoleFormat) {
	case "", "text", "json", "ndjson":
	default:
		return fmt.Errorf("invalid --console-format %q: allowed values are text, json, ndjson", c.Output.ConsoleFormat)
	}

	switch normalizeEnumValue(c.Output.OutFormat) {
	case "", "json", "ndjson":
	default:
		return fmt.Errorf("invalid --out-format %q: allowed values are json, ndjson", c.Output.OutFormat)
	}

	for _, st := range c.Output.ConsoleFilterStatus {
		switch normalizeEnumValue(st) {
		case "pass", "fail", "warning", "blocked", "log":
		default:
			return fmt.Errorf("invalid --console-filter-status %q: allowed values are pass, fail, warning, blocked, log", st)
		}
	}

	if c.Runtime.Concurrency < 1 {
		return fmt.Errorf("--concurrency must be >= 1, got %d", c.Runtime.Concurrency)
	}

	if len(c.Params.Set) > 0 {
		if _, err := ParseParamAssignments(c.Params.Set); err != nil {
			return err
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseParamAssignments parses values of the form "key=value" into the
// parameter bag forwarded to check functions.
//
// Notes:
// - Entries may be provided via repeated flags and/or comma-delimited lists.
// - Empty values are allowed ("key=").
// - Later entries override earlier ones for the same key.
func ParseParamAssignments(values []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, raw := range splitCommaList(values) {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected key=value", raw)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty key", raw)
		}
		out[key] = value
	}
	return out, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
