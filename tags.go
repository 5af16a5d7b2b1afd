package aaspydantic

import (
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// The metadata tag protocol. Type-shape facts the tree cannot express are
// carried as embedded data specification records: the record kind lives in
// the English preferred-name entry, the payload in the content value, and the
// binding to a node or attribute in the data specification key reference.
// Lookup is first-match in declaration order; records are never merged.

// TagKind is the fixed vocabulary of record kinds.
type TagKind string

const (
	TagClass     TagKind = "class"     // payload: schema type name
	TagAttribute TagKind = "attribute" // payload: attribute name
	TagOptional  TagKind = "optional"  // payload: qualified attribute name
	TagUnion     TagKind = "union"     // payload: qualified attribute name
	TagImmutable TagKind = "immutable" // payload: qualified attribute name
	TagDefault   TagKind = "default"   // payload: literal default value
)

// Tagged is any tree node that carries data specification records.
type Tagged interface {
	Base() *basyx.Referable
}

// NewRecord builds a record binding kind and payload to keyRef.
func NewRecord(kind TagKind, keyRef, payload string) basyx.EmbeddedDataSpecification {
	return basyx.EmbeddedDataSpecification{
		DataSpecification: basyx.ExternalReference(keyRef),
		Content: basyx.DataSpecificationContent{
			PreferredName: basyx.LangStringSet{{Language: "en", Text: string(kind)}},
			Value:         payload,
		},
	}
}

// OpaqueKeyReference returns a fresh identity-only key reference, used by
// records whose payload carries the real semantics (optional/union/immutable
// markers have no meaningful target).
func OpaqueKeyReference() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Attach appends a record to the node. Appending is the only mutation the
// protocol performs.
func Attach(node Tagged, kind TagKind, keyRef, payload string) {
	b := node.Base()
	b.DataSpecifications = append(b.DataSpecifications, NewRecord(kind, keyRef, payload))
}

// Lookup returns the payload of the first record whose kind matches and that
// satisfies pred (nil means any). The second result is false when no record
// matches; Lookup itself never fails, callers define the fallback policy.
func Lookup(node Tagged, kind TagKind, pred func(basyx.EmbeddedDataSpecification) bool) (string, bool) {
	for _, rec := range node.Base().DataSpecifications {
		name, _ := rec.Content.PreferredName.Get("en")
		if name != string(kind) {
			continue
		}
		if pred != nil && !pred(rec) {
			continue
		}
		return rec.Content.Value, true
	}
	return "", false
}

// nodeIdentifiers returns every identifier a class record may be keyed on:
// the short identifier plus the global identifier for identifiables.
func nodeIdentifiers(node Tagged) []string {
	ids := []string{node.Base().IDShort}
	switch v := node.(type) {
	case *basyx.Submodel:
		ids = append(ids, v.ID)
	case *basyx.AssetAdministrationShell:
		ids = append(ids, v.ID)
	}
	return ids
}

func keyMatchesAny(rec basyx.EmbeddedDataSpecification, ids []string) bool {
	for _, id := range ids {
		if rec.DataSpecification.HasKeyValue(id) {
			return true
		}
	}
	return false
}

// ---- derived operations ----

// ClassName resolves the schema type name of a node. Nodes without records
// use their short identifier verbatim; otherwise the first class record keyed
// on the node's own identifier wins. Records present but none matching is a
// hard failure.
func ClassName(node Tagged) (string, error) {
	b := node.Base()
	if len(b.DataSpecifications) == 0 {
		return b.IDShort, nil
	}
	ids := nodeIdentifiers(node)
	if name, ok := Lookup(node, TagClass, func(rec basyx.EmbeddedDataSpecification) bool {
		return keyMatchesAny(rec, ids)
	}); ok {
		return name, nil
	}
	return "", &ClassNameNotFoundError{IDShort: b.IDShort}
}

// TemplateClassName resolves the schema type name of a template node. The
// record path is identical to ClassName; the no-record fallback converts the
// short identifier to class casing instead of using it verbatim.
func TemplateClassName(node Tagged) (string, error) {
	if len(node.Base().DataSpecifications) == 0 {
		return ClassCase(node.Base().IDShort), nil
	}
	return ClassName(node)
}

// AttributeNames resolves every attribute name a referenced child identifier
// is addressable under. A child may carry several names, e.g. when a union
// field also satisfies a base type. Containers without records derive a
// single name by case conversion.
func AttributeNames(node Tagged, referencedID string) ([]string, error) {
	b := node.Base()
	if len(b.DataSpecifications) == 0 {
		return []string{AttributeCase(referencedID)}, nil
	}
	var names []string
	for _, rec := range b.DataSpecifications {
		kind, _ := rec.Content.PreferredName.Get("en")
		if kind != string(TagAttribute) {
			continue
		}
		if !rec.DataSpecification.HasKeyValue(referencedID) {
			continue
		}
		names = append(names, rec.Content.Value)
	}
	if len(names) == 0 {
		return nil, &AttributeReferenceNotFoundError{IDShort: b.IDShort, ReferencedID: referencedID}
	}
	return names, nil
}

// IsOptionalAttribute reports whether the named attribute is optional. A node
// without any records presumes optional; the presumption deliberately differs
// from IsUnionAttribute and IsImmutableAttribute, which presume false.
func IsOptionalAttribute(node Tagged, attributeName string) bool {
	if len(node.Base().DataSpecifications) == 0 {
		return true
	}
	_, ok := Lookup(node, TagOptional, payloadEquals(attributeName))
	return ok
}

// IsUnionAttribute reports whether the named attribute is a tagged union.
func IsUnionAttribute(node Tagged, attributeName string) bool {
	_, ok := Lookup(node, TagUnion, payloadEquals(attributeName))
	return ok
}

// IsImmutableAttribute reports whether the named attribute is a fixed-arity
// collection.
func IsImmutableAttribute(node Tagged, attributeName string) bool {
	_, ok := Lookup(node, TagImmutable, payloadEquals(attributeName))
	return ok
}

// DefaultValue resolves the literal default recorded for the referenced
// attribute element. Absence is not an error.
func DefaultValue(node Tagged, referencedID string) (string, bool) {
	return Lookup(node, TagDefault, func(rec basyx.EmbeddedDataSpecification) bool {
		return rec.DataSpecification.HasKeyValue(referencedID)
	})
}

func payloadEquals(v string) func(basyx.EmbeddedDataSpecification) bool {
	return func(rec basyx.EmbeddedDataSpecification) bool {
		return rec.Content.Value == v
	}
}
