package basyx

// KeyType identifies the kind of a reference key.
type KeyType string

const (
	// KeyGlobalReference points at an external, globally resolvable target.
	KeyGlobalReference KeyType = "GlobalReference"
)

// Key is a single step of a Reference.
type Key struct {
	Type  KeyType
	Value string
}

// Reference is an ordered key chain pointing at an element, typically a
// single global-reference key in this repository.
type Reference struct {
	Keys []Key
}

// ExternalReference builds a Reference of global-reference keys.
func ExternalReference(values ...string) *Reference {
	r := &Reference{Keys: make([]Key, 0, len(values))}
	for _, v := range values {
		r.Keys = append(r.Keys, Key{Type: KeyGlobalReference, Value: v})
	}
	return r
}

// HasKeyValue reports whether any key of the reference carries the value.
func (r *Reference) HasKeyValue(value string) bool {
	if r == nil {
		return false
	}
	for _, k := range r.Keys {
		if k.Value == value {
			return true
		}
	}
	return false
}

// FirstKeyValue returns the value of the first key, or "" for an empty
// reference.
func (r *Reference) FirstKeyValue() string {
	if r == nil || len(r.Keys) == 0 {
		return ""
	}
	return r.Keys[0].Value
}

// DataSpecificationContent carries the payload of an embedded data
// specification record: a preferred name (the record kind lives in its
// English entry) and a string value.
type DataSpecificationContent struct {
	PreferredName LangStringSet
	Value         string
}

// EmbeddedDataSpecification attaches one annotation record to a Referable.
// DataSpecification references the element the record describes.
type EmbeddedDataSpecification struct {
	DataSpecification *Reference
	Content           DataSpecificationContent
}
