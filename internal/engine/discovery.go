package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ifcore/internal/checker"
	"ifcore/internal/runlog"
)

const (
	sourcePrefix   = "checker_"
	sourceSuffix   = ".yaml"
	templateSource = "checker_template.yaml"
)

// Registration is one discovered checker source: the manifest file it came
// from and the entry points it binds, in manifest order. Registrations are
// read-only after discovery and rebuilt wholesale on each discovery pass.
type Registration struct {
	// Source is the manifest file name, e.g. "checker_doors.yaml".
	Source      string
	Name        string
	Description string
	// EntryPoints are the bound check_ function names in manifest order.
	EntryPoints []string
	// Defaults are the manifest-declared parameter defaults for this source.
	Defaults checker.Params
}

// manifest is the on-disk shape of a checker source.
type manifest struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Checks      []string          `yaml:"checks"`
	Params      map[string]string `yaml:"params"`
}

// Discover scans dir for checker manifests and binds their entry points
// against the compiled-in registry.
//
// Qualification rules: only files named checker_*.yaml are considered, the
// template manifest is excluded even though it matches, and only entry points
// with the check_ prefix qualify. A source that fails to load (unreadable
// file, bad YAML, an entry point the binary does not provide) is logged and
// skipped without aborting the rest. A missing directory yields an empty set.
func Discover(dir string, log *runlog.Log) ([]Registration, error) {
	log.Infof("scanning checkers directory: %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("checkers directory does not exist: %s", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("read checkers directory: %w", err)
	}

	var sources []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, sourcePrefix) || !strings.HasSuffix(name, sourceSuffix) {
			continue
		}
		if name == templateSource {
			continue
		}
		sources = append(sources, name)
	}
	sort.Strings(sources)
	log.Infof("found %d checker source(s)", len(sources))

	var regs []Registration
	for _, source := range sources {
		reg, err := loadSource(dir, source)
		if err != nil {
			log.Errorf("%s: %v", source, err)
			continue
		}
		if len(reg.EntryPoints) == 0 {
			log.Warnf("%s: no check_ entry points found", source)
			continue
		}
		log.Infof("%s: bound %d entry point(s): %s", source, len(reg.EntryPoints), strings.Join(reg.EntryPoints, ", "))
		regs = append(regs, reg)
	}
	return regs, nil
}

func loadSource(dir, source string) (Registration, error) {
	raw, err := os.ReadFile(filepath.Join(dir, source))
	if err != nil {
		return Registration{}, fmt.Errorf("read manifest: %w", err)
	}

	var mf manifest
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return Registration{}, fmt.Errorf("parse manifest: %w", err)
	}
	if strings.TrimSpace(mf.Name) == "" {
		return Registration{}, fmt.Errorf("manifest has no name")
	}

	reg := Registration{
		Source:      source,
		Name:        mf.Name,
		Description: mf.Description,
		Defaults:    checker.Params(mf.Params),
	}
	for _, entry := range mf.Checks {
		entry = strings.TrimSpace(entry)
		if !strings.HasPrefix(entry, checker.EntryPrefix) {
			// Names outside the convention never qualify as entry points.
			continue
		}
		if _, ok := checker.Lookup(entry); !ok {
			return Registration{}, fmt.Errorf("entry point %q is not provided by this build", entry)
		}
		reg.EntryPoints = append(reg.EntryPoints, entry)
	}
	return reg, nil
}
