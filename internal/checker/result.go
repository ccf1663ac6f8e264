package checker

// Status is the closed set of outcomes a single finding can carry.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarning Status = "warning"
	StatusBlocked Status = "blocked"
	StatusLog     Status = "log"
)

// SummaryElementType marks a roll-up finding that is not tied to one element.
const SummaryElementType = "Summary"

// Result is one finding emitted by a check function.
//
// All nine fields are always serialized. Optional fields use a pointer; a nil
// pointer marshals as JSON null, never as a missing key. A Result is immutable
// once returned by a check function: the engine attaches provenance by wrapping
// it, not by mutating it.
type Result struct {
	ElementID       *string `json:"element_id"`
	ElementType     string  `json:"element_type"`
	ElementName     string  `json:"element_name"`
	ElementNameLong *string `json:"element_name_long"`
	CheckStatus     Status  `json:"check_status"`
	ActualValue     string  `json:"actual_value"`
	RequiredValue   string  `json:"required_value"`
	Comment         *string `json:"comment"`
	Log             *string `json:"log"`
}

// Str returns a pointer to s, for filling optional Result fields.
func Str(s string) *string {
	return &s
}

func NewResult(elementType, elementName string, status Status, actual, required string) Result {
	return Result{
		ElementType:   elementType,
		ElementName:   elementName,
		CheckStatus:   status,
		ActualValue:   actual,
		RequiredValue: required,
	}
}

func ElementResult(elementID, elementType, elementName string, status Status, actual, required, comment string) Result {
	res := NewResult(elementType, elementName, status, actual, required)
	res.ElementID = Str(elementID)
	if comment != "" {
		res.Comment = Str(comment)
	}
	return res
}

// SummaryResult builds the per-check roll-up row.
func SummaryResult(checkName string, status Status, actual, required, comment string) Result {
	res := NewResult(SummaryElementType, checkName, status, actual, required)
	if comment != "" {
		res.Comment = Str(comment)
	}
	return res
}
