package assessment

import (
	"fmt"
	"strings"
)

// ValidationError reports the interview fields a dependency rule made
// mandatory but the submission left out. Callers use the field list to
// re-prompt for exactly the missing answers.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// RangeError reports a numeric answer outside its declared bounds.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value %d outside range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// DriftError reports a stored risk level that no longer matches the level
// recomputed from the record's ideation-intensity answers.
type DriftError struct {
	Stored   string
	Computed string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("stored risk level %s does not match computed %s", e.Stored, e.Computed)
}
