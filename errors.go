package aaspydantic

import "fmt"

// The binding layer fails hard on structural mismatches between tree and
// schema: none of these conditions is transient, so callers are expected to
// abort the whole conversion rather than skip the offending node. Boolean
// predicates (optional/union/immutable) never return errors; absence always
// resolves to a documented default.

// ClassNameNotFoundError reports an element that carries data specification
// records but none that identifies its class.
type ClassNameNotFoundError struct {
	IDShort string
}

func (e *ClassNameNotFoundError) Error() string {
	return fmt.Sprintf("aaspydantic: no class name found for element %q", e.IDShort)
}

// AttributeReferenceNotFoundError reports a referenced child identifier that
// no attribute record of the container resolves.
type AttributeReferenceNotFoundError struct {
	IDShort      string // container
	ReferencedID string // child identifier that failed to resolve
}

func (e *AttributeReferenceNotFoundError) Error() string {
	return fmt.Sprintf("aaspydantic: attribute reference %q not found in element %q", e.ReferencedID, e.IDShort)
}

// UnsupportedPrimitiveTypeError reports a Go type with no XSD datatype
// encoding.
type UnsupportedPrimitiveTypeError struct {
	GoType string
}

func (e *UnsupportedPrimitiveTypeError) Error() string {
	return fmt.Sprintf("aaspydantic: no XSD datatype encoding for Go type %s", e.GoType)
}

// UnimplementedDatatypeError reports an XSD datatype tag that is part of the
// standard vocabulary but intentionally unhandled (calendar-partial types).
type UnimplementedDatatypeError struct {
	DataType string
}

func (e *UnimplementedDatatypeError) Error() string {
	return fmt.Sprintf("aaspydantic: XSD datatype %s is not implemented", e.DataType)
}
