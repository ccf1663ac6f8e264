package model

import (
	"strings"
	"testing"
)

const fixture = `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
/* a comment; with a semicolon */
#1=IFCDOOR('guid-door-1',$,'Door-01',$,$,$,$,$,$,0.915);
#2=IFCWALLSTANDARDCASE('guid-wall-1',$,'Wall; 01');
#3=IFCPROPERTYSINGLEVALUE('FireRating',$,IFCLABEL('F60'),$);
#4=IFCPROPERTYSET('guid-pset-1',$,'Pset_WallFire',$,(#3));
#5=IFCRELDEFINESBYPROPERTIES('guid-rel-1',$,$,$,(#2),#4);
#6=IFCSPACE('guid-space-1',$,'Room-101',$,$,$,$,'Meeting Room',.ELEMENT.);
#7=IFCPROPERTYSINGLEVALUE('Height',$,IFCREAL(2.6),$);
#8=IFCPROPERTYSET('guid-pset-2',$,'Dimensions',$,(#7));
#9=IFCRELDEFINESBYPROPERTIES('guid-rel-2',$,$,$,(#6),#8);
#10=IFCWALL('guid-wall-2',$,'Wall-02');
ENDSEC;
END-ISO-10303-21;
`

func parseFixture(t *testing.T) *Model {
	t.Helper()
	m, err := Parse(strings.NewReader(fixture), "fixture.ifc")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m
}

func TestParseBasics(t *testing.T) {
	m := parseFixture(t)
	if m.Schema() != "IFC4" {
		t.Errorf("Schema = %q, want IFC4", m.Schema())
	}
	if m.EntityCount() != 10 {
		t.Errorf("EntityCount = %d, want 10", m.EntityCount())
	}
	if m.Path() != "fixture.ifc" {
		t.Errorf("Path = %q", m.Path())
	}
}

func TestByTypeFoldsSubtypesAndCase(t *testing.T) {
	m := parseFixture(t)

	walls := m.ByType("IfcWall")
	if len(walls) != 2 {
		t.Fatalf("ByType(IfcWall) returned %d entities, want 2", len(walls))
	}
	if walls[0].ID != 2 || walls[1].ID != 10 {
		t.Errorf("walls not ordered by ID: %d, %d", walls[0].ID, walls[1].ID)
	}

	if got := len(m.ByType("ifcdoor")); got != 1 {
		t.Errorf("ByType(ifcdoor) = %d entities, want 1", got)
	}
	if got := len(m.ByType("IfcSlab")); got != 0 {
		t.Errorf("ByType(IfcSlab) = %d entities, want 0", got)
	}
}

func TestEntityAttributes(t *testing.T) {
	m := parseFixture(t)

	door := m.ByType("IfcDoor")[0]
	if door.GlobalID() != "guid-door-1" {
		t.Errorf("GlobalID = %q", door.GlobalID())
	}
	if door.Name() != "Door-01" {
		t.Errorf("Name = %q", door.Name())
	}
	if w, ok := door.FloatAttr(9); !ok || w != 0.915 {
		t.Errorf("FloatAttr(9) = %v, %v; want 0.915, true", w, ok)
	}

	space := m.ByType("IfcSpace")[0]
	if space.LongName() != "Meeting Room" {
		t.Errorf("LongName = %q, want Meeting Room", space.LongName())
	}
	if door.LongName() != "" {
		t.Errorf("door LongName = %q, want empty", door.LongName())
	}
}

func TestQuotedSemicolonSurvivesSplitting(t *testing.T) {
	m := parseFixture(t)
	wall, ok := m.ByID(2)
	if !ok {
		t.Fatal("instance #2 missing")
	}
	if wall.Name() != "Wall; 01" {
		t.Errorf("Name = %q, want \"Wall; 01\"", wall.Name())
	}
}

func TestPropertyLookup(t *testing.T) {
	m := parseFixture(t)

	wall, _ := m.ByID(2)
	rating, ok := wall.PropertyString("Fire", "Rating")
	if !ok || rating != "F60" {
		t.Errorf("PropertyString(Fire, Rating) = %q, %v; want F60, true", rating, ok)
	}

	// Empty pset substring matches any set.
	if _, ok := wall.PropertyString("", "Rating"); !ok {
		t.Error("empty pset substring did not match")
	}
	if _, ok := wall.PropertyString("Acoustic", "Rating"); ok {
		t.Error("non-matching pset substring matched")
	}

	space, _ := m.ByID(6)
	h, ok := space.PropertyFloat("", "Height")
	if !ok || h != 2.6 {
		t.Errorf("PropertyFloat(Height) = %v, %v; want 2.6, true", h, ok)
	}

	door, _ := m.ByID(1)
	if _, ok := door.PropertyFloat("", "Height"); ok {
		t.Error("door has no Height property but lookup succeeded")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("HEADER;\nENDSEC;"), "empty.ifc"); err == nil {
		t.Error("model without instances must fail to parse")
	}
	dup := "#1=IFCDOOR('a',$,'D');\n#1=IFCDOOR('b',$,'D');"
	if _, err := Parse(strings.NewReader(dup), "dup.ifc"); err == nil {
		t.Error("duplicate instance id must fail to parse")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/model.ifc")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "model file not found") {
		t.Errorf("error = %q, want it to mention the missing file", err)
	}
}

func TestParseValueKinds(t *testing.T) {
	src := `#1=IFCTEST('str',$,*,#42,.ENUM.,(1.5,2.5),IFCLABEL('wrapped'),-3.25,'it''s');`
	m, err := Parse(strings.NewReader(src), "kinds.ifc")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	e, _ := m.ByID(1)
	args := e.Args
	if len(args) != 9 {
		t.Fatalf("got %d args, want 9", len(args))
	}
	if args[0] != "str" || args[1] != nil || args[2] != nil {
		t.Errorf("args[0..2] = %v, %v, %v", args[0], args[1], args[2])
	}
	if ref, ok := args[3].(Ref); !ok || ref != 42 {
		t.Errorf("args[3] = %v, want Ref(42)", args[3])
	}
	if en, ok := args[4].(Enum); !ok || en != "ENUM" {
		t.Errorf("args[4] = %v, want Enum(ENUM)", args[4])
	}
	list, ok := args[5].([]any)
	if !ok || len(list) != 2 || list[0] != 1.5 || list[1] != 2.5 {
		t.Errorf("args[5] = %v, want [1.5 2.5]", args[5])
	}
	typed, ok := args[6].(Typed)
	if !ok || typed.Type != "IFCLABEL" || typed.Value != "wrapped" {
		t.Errorf("args[6] = %v, want IFCLABEL(wrapped)", args[6])
	}
	if args[7] != -3.25 {
		t.Errorf("args[7] = %v, want -3.25", args[7])
	}
	if args[8] != "it's" {
		t.Errorf("args[8] = %v, want it's", args[8])
	}
}
