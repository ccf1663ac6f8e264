package checker

import (
	"context"
	"testing"

	"ifcore/internal/model"
)

func noopCheck(ctx context.Context, m *model.Model, params Params) ([]Result, error) {
	return nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	Register("check_registry_lookup", noopCheck)

	fn, ok := Lookup("check_registry_lookup")
	if !ok {
		t.Fatal("registered check not found")
	}
	if fn == nil {
		t.Fatal("Lookup returned nil function")
	}
	if _, ok := Lookup("check_registry_absent"); ok {
		t.Error("Lookup found a check that was never registered")
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	Register("check_registry_dup", noopCheck)
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("check_registry_dup", noopCheck)
}

func TestRegisterPanicsOnBadName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register without check_ prefix did not panic")
		}
	}()
	Register("verify_registry_prefix", noopCheck)
}

func TestRegisterPanicsOnNilFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register with nil function did not panic")
		}
	}()
	Register("check_registry_nil", nil)
}

func TestNamesSorted(t *testing.T) {
	Register("check_registry_names_b", noopCheck)
	Register("check_registry_names_a", noopCheck)

	names := Names()
	posA, posB := -1, -1
	for i, n := range names {
		switch n {
		case "check_registry_names_a":
			posA = i
		case "check_registry_names_b":
			posB = i
		}
	}
	if posA < 0 || posB < 0 {
		t.Fatalf("registered names missing from Names(): %v", names)
	}
	if posA > posB {
		t.Errorf("Names() not sorted: a at %d, b at %d", posA, posB)
	}
}
