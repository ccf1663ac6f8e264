package checker

import "fmt"

// ViolationKind classifies why a returned record failed the result contract.
type ViolationKind string

const (
	ViolationMissingValue  ViolationKind = "missing_value"
	ViolationInvalidStatus ViolationKind = "invalid_status"
)

// ContractViolation describes one way a record broke the result contract.
// The record index refers to the position within the slice a check function
// returned; it is -1 when a single record was validated on its own.
type ContractViolation struct {
	Index int
	Field string
	Kind  ViolationKind
	Value string
}

func (v *ContractViolation) Error() string {
	where := "result"
	if v.Index >= 0 {
		where = fmt.Sprintf("result %d", v.Index)
	}
	switch v.Kind {
	case ViolationInvalidStatus:
		return fmt.Sprintf("%s: invalid check_status %q (expected pass|fail|warning|blocked|log)", where, v.Value)
	default:
		return fmt.Sprintf("%s: missing value for required field %q", where, v.Field)
	}
}

var validStatuses = map[Status]struct{}{
	StatusPass:    {},
	StatusFail:    {},
	StatusWarning: {},
	StatusBlocked: {},
	StatusLog:     {},
}

// Validate checks one record against the result contract.
//
// The fixed shape of Result already guarantees that exactly the nine keys
// exist with the right kinds; what remains checkable at runtime is that the
// status belongs to the closed enum and that required string fields carry a
// value. A nil error means the record may be merged into a report.
func Validate(r Result) error {
	return validateAt(r, -1)
}

// ValidateAll applies Validate to every record of one check call. The first
// violation rejects the whole slice: a call's output is trusted all-or-nothing.
func ValidateAll(results []Result) error {
	for i, r := range results {
		if err := validateAt(r, i); err != nil {
			return err
		}
	}
	return nil
}

func validateAt(r Result, index int) error {
	if _, ok := validStatuses[r.CheckStatus]; !ok {
		return &ContractViolation{Index: index, Field: "check_status", Kind: ViolationInvalidStatus, Value: string(r.CheckStatus)}
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"element_type", r.ElementType},
		{"element_name", r.ElementName},
	} {
		if f.value == "" {
			return &ContractViolation{Index: index, Field: f.name, Kind: ViolationMissingValue}
		}
	}
	return nil
}
