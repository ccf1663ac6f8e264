// Package model loads IFC (STEP physical file) building models into a
// queryable in-memory form.
//
// The orchestrator treats the *Model as an opaque handle: it is produced
// here, passed unchanged to every check function, and never inspected by the
// engine itself. Check functions query elements by IFC type and read element
// attributes and property-set values.
package model

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Ref is a reference to another entity instance (#123 in STEP syntax).
type Ref int64

// Enum is a STEP enumeration literal (.NOTDEFINED. without the dots).
type Enum string

// Typed is a wrapped simple value such as IFCLABEL('F60') or IFCREAL(1.2).
type Typed struct {
	Type  string
	Value any
}

// Entity is one instance from the DATA section. Args holds the parsed
// parameter list: nil for $ and *, string, float64, Ref, Enum, Typed, or
// []any for aggregates.
type Entity struct {
	ID   int64
	Type string
	Args []any

	m *Model
}

// Model is a parsed IFC file.
type Model struct {
	path   string
	schema string

	entities map[int64]*Entity
	byType   map[string][]*Entity
	psetsOf  map[int64][]int64
}

// Subtypes folded into their supertype for ByType queries.
var typeAliases = map[string][]string{
	"IFCWALL": {"IFCWALLSTANDARDCASE"},
	"IFCDOOR": {"IFCDOORSTANDARDCASE"},
}

// Load reads and parses an IFC file from disk.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("model file not found: %s", path)
		}
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads an IFC file from r. The path is informational only.
func Parse(r io.Reader, path string) (*Model, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	m := &Model{
		path:     path,
		entities: make(map[int64]*Entity),
		byType:   make(map[string][]*Entity),
		psetsOf:  make(map[int64][]int64),
	}

	for _, stmt := range splitStatements(string(raw)) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if strings.HasPrefix(stmt, "FILE_SCHEMA") {
			m.schema = firstQuoted(stmt)
			continue
		}
		if !strings.HasPrefix(stmt, "#") {
			continue
		}
		ent, err := parseInstance(stmt)
		if err != nil {
			return nil, fmt.Errorf("parse model %s: %w", path, err)
		}
		ent.m = m
		if _, dup := m.entities[ent.ID]; dup {
			return nil, fmt.Errorf("parse model %s: duplicate instance #%d", path, ent.ID)
		}
		m.entities[ent.ID] = ent
		m.byType[ent.Type] = append(m.byType[ent.Type], ent)
	}

	if len(m.entities) == 0 {
		return nil, fmt.Errorf("parse model %s: no instances found", path)
	}

	m.indexPropertySets()
	return m, nil
}

// indexPropertySets maps each related object to the property sets attached to
// it through IfcRelDefinesByProperties.
func (m *Model) indexPropertySets() {
	for _, rel := range m.byType["IFCRELDEFINESBYPROPERTIES"] {
		related, ok := argList(rel.Args, 4)
		if !ok {
			continue
		}
		psetRef, ok := argRef(rel.Args, 5)
		if !ok {
			continue
		}
		for _, v := range related {
			if ref, ok := v.(Ref); ok {
				m.psetsOf[int64(ref)] = append(m.psetsOf[int64(ref)], int64(psetRef))
			}
		}
	}
}

func (m *Model) Path() string   { return m.path }
func (m *Model) Schema() string { return m.schema }

// EntityCount reports the number of parsed instances.
func (m *Model) EntityCount() int { return len(m.entities) }

// ByID looks up one instance.
func (m *Model) ByID(id int64) (*Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// ByType returns all instances of the given IFC type, case-insensitively,
// including folded subtypes (IfcWallStandardCase under IfcWall). The slice is
// ordered by instance ID so repeated queries are deterministic.
func (m *Model) ByType(name string) []*Entity {
	key := strings.ToUpper(strings.TrimSpace(name))
	out := append([]*Entity(nil), m.byType[key]...)
	for _, alias := range typeAliases[key] {
		out = append(out, m.byType[alias]...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GlobalID returns the instance GUID (first attribute of every rooted entity).
func (e *Entity) GlobalID() string {
	s, _ := argString(e.Args, 0)
	return s
}

// Name returns the Name attribute common to all IfcRoot subtypes.
func (e *Entity) Name() string {
	s, _ := argString(e.Args, 2)
	return s
}

// LongName returns the LongName attribute for the spatial element types that
// carry one; other types return the empty string.
func (e *Entity) LongName() string {
	switch e.Type {
	case "IFCSPACE", "IFCBUILDINGSTOREY", "IFCBUILDING":
		s, _ := argString(e.Args, 7)
		return s
	}
	return ""
}

// FloatAttr reads a direct numeric attribute (e.g. IfcDoor.OverallWidth at
// index 9), unwrapping typed values.
func (e *Entity) FloatAttr(i int) (float64, bool) {
	return argFloat(e.Args, i)
}

// StringAttr reads a direct string attribute.
func (e *Entity) StringAttr(i int) (string, bool) {
	return argString(e.Args, i)
}

// PropertyValue searches the entity's attached property sets for a single
// value property. psetSubstr and propSubstr match case-insensitively as
// substrings of the set and property names; an empty psetSubstr matches every
// set.
func (e *Entity) PropertyValue(psetSubstr, propSubstr string) (any, bool) {
	if e.m == nil {
		return nil, false
	}
	for _, psetID := range e.m.psetsOf[e.ID] {
		pset, ok := e.m.entities[psetID]
		if !ok || pset.Type != "IFCPROPERTYSET" {
			continue
		}
		if psetSubstr != "" && !containsFold(pset.Name(), psetSubstr) {
			continue
		}
		props, ok := argList(pset.Args, 4)
		if !ok {
			continue
		}
		for _, v := range props {
			ref, ok := v.(Ref)
			if !ok {
				continue
			}
			prop, ok := e.m.entities[int64(ref)]
			if !ok || prop.Type != "IFCPROPERTYSINGLEVALUE" {
				continue
			}
			name, _ := argString(prop.Args, 0)
			if !containsFold(name, propSubstr) {
				continue
			}
			if len(prop.Args) > 2 && prop.Args[2] != nil {
				return unwrap(prop.Args[2]), true
			}
		}
	}
	return nil, false
}

// PropertyString reads a property value rendered as a string.
func (e *Entity) PropertyString(psetSubstr, propSubstr string) (string, bool) {
	v, ok := e.PropertyValue(psetSubstr, propSubstr)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case Enum:
		return string(t), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	}
	return "", false
}

// PropertyFloat reads a numeric property value, accepting numeric strings.
func (e *Entity) PropertyFloat(psetSubstr, propSubstr string) (float64, bool) {
	v, ok := e.PropertyValue(psetSubstr, propSubstr)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func unwrap(v any) any {
	if t, ok := v.(Typed); ok {
		return t.Value
	}
	return v
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func argString(args []any, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := unwrap(args[i]).(string)
	return s, ok
}

func argFloat(args []any, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	f, ok := unwrap(args[i]).(float64)
	return f, ok
}

func argRef(args []any, i int) (Ref, bool) {
	if i >= len(args) {
		return 0, false
	}
	r, ok := args[i].(Ref)
	return r, ok
}

func argList(args []any, i int) ([]any, bool) {
	if i >= len(args) {
		return nil, false
	}
	l, ok := args[i].([]any)
	return l, ok
}
