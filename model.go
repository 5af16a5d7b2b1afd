package aaspydantic

import (
	"fmt"
	"strconv"
	"strings"
)

// The typed side of the binding. Schema structs embed one of the base types
// below; every other exported field is a schema attribute handled by the
// shape classifier.

// AAS is the base for shell-level schema types. Every non-reserved field must
// be a struct embedding Submodel.
type AAS struct {
	ID          string
	IDShort     string
	Description string
}

// Submodel is the base for identifiable submodel schema types.
type Submodel struct {
	ID          string
	IDShort     string
	Description string
	SemanticID  string
}

// SubmodelElementCollection is the base for nested collection schema types.
type SubmodelElementCollection struct {
	IDShort     string
	Description string
	SemanticID  string
}

// Enum is implemented by named string types that enumerate their legal
// values. Enum attributes encode as string properties.
type Enum interface {
	EnumValues() []string
}

// TimeOfDay is the host type for xs:time values, a clock time without a date
// component.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// String renders the canonical hh:mm:ss lexical form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseTimeOfDay parses the hh:mm:ss lexical form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("aaspydantic: invalid xs:time value %q", s)
	}
	var out [3]int
	for i, p := range parts {
		// tolerate fractional seconds by truncation
		if i == 2 {
			if dot := strings.IndexByte(p, '.'); dot >= 0 {
				p = p[:dot]
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("aaspydantic: invalid xs:time value %q", s)
		}
		out[i] = n
	}
	if out[0] < 0 || out[0] > 23 || out[1] < 0 || out[1] > 59 || out[2] < 0 || out[2] > 59 {
		return TimeOfDay{}, fmt.Errorf("aaspydantic: xs:time value %q out of range", s)
	}
	return TimeOfDay{Hour: out[0], Minute: out[1], Second: out[2]}, nil
}

// reservedAttributes are standard fields of the base types; the attribute
// oracle never reports them.
var reservedAttributes = map[string]bool{
	"id":          true,
	"id_short":    true,
	"description": true,
	"semantic_id": true,
}
