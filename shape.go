package aaspydantic

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// The typed-schema oracle and shape classifier. Attribute enumeration is
// reflection-driven: a model struct's exported, non-reserved fields become
// attribute descriptors in declaration order.

// ShapeKind classifies the declared shape of an attribute after unwrapping
// optionality.
type ShapeKind int

const (
	ShapePrimitive ShapeKind = iota
	ShapeEnum
	ShapeModel // nested schema struct
	ShapeSequence
	ShapeSet
	ShapeTuple
	ShapeUnion
)

// Shape is the recursive declared shape of an attribute.
type Shape struct {
	Kind         ShapeKind
	Type         reflect.Type
	Elem         *Shape         // element shape for sequence/set/tuple
	Arity        int            // tuple arity
	Alternatives []reflect.Type // non-null union alternatives
}

// AttributeDescriptor is one attribute as reported by the oracle. Descriptors
// are transient: recomputed on every conversion pass, never persisted.
type AttributeDescriptor struct {
	Name       string
	Field      reflect.StructField
	Shape      *Shape
	Optional   bool
	Union      bool
	Default    string // literal default from the `default` struct tag
	HasDefault bool
}

var (
	baseAAS      = reflect.TypeOf(AAS{})
	baseSubmodel = reflect.TypeOf(Submodel{})
	baseSMC      = reflect.TypeOf(SubmodelElementCollection{})
	enumIface    = reflect.TypeOf((*Enum)(nil)).Elem()
)

// ResolveAttributeKey resolves a struct field's attribute name.
// Priority: aas:"name=..." > json tag name > attribute-cased field name;
// "-" disables the field.
func ResolveAttributeKey(sf reflect.StructField) string {
	if at := sf.Tag.Get("aas"); at != "" {
		for _, p := range strings.Split(at, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
			if p == "-" {
				return "-"
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return AttributeCase(sf.Name)
}

// AttributeDescriptorsOf reports the schema attributes of a model struct type
// in declaration order. Reserved fields (id, id_short, description,
// semantic_id), unexported fields and the embedded base are excluded.
func AttributeDescriptorsOf(t reflect.Type) ([]AttributeDescriptor, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("aaspydantic: %s is not a model struct", t)
	}
	var out []AttributeDescriptor
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && isBaseType(sf.Type) {
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name := ResolveAttributeKey(sf)
		if name == "-" || reservedAttributes[name] {
			continue
		}
		d, err := describeField(sf, name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func describeField(sf reflect.StructField, name string) (AttributeDescriptor, error) {
	d := AttributeDescriptor{Name: name, Field: sf}
	if dv, ok := sf.Tag.Lookup("default"); ok {
		d.Default = dv
		d.HasDefault = true
	}

	ft := sf.Type
	if ft.Kind() == reflect.Pointer {
		d.Optional = true
		ft = ft.Elem()
	}

	if alts, hasNone, ok := unionAlternatives(sf); ok {
		if ft.Kind() != reflect.Interface {
			return d, fmt.Errorf("aaspydantic: union attribute %q must be declared as any", name)
		}
		d.Optional = d.Optional || hasNone
		// a union collapsing to a single real alternative is optional-only
		if len(alts) > 1 {
			d.Union = true
		}
		d.Shape = &Shape{Kind: ShapeUnion, Type: ft, Alternatives: alts}
		return d, nil
	}

	shape, err := shapeOf(ft)
	if err != nil {
		return d, fmt.Errorf("aaspydantic: attribute %q: %w", name, err)
	}
	d.Shape = shape
	return d, nil
}

func shapeOf(t reflect.Type) (*Shape, error) {
	switch {
	case t.Implements(enumIface):
		return &Shape{Kind: ShapeEnum, Type: t}, nil
	case isModelStruct(t):
		return &Shape{Kind: ShapeModel, Type: t}, nil
	case t.Kind() == reflect.Array:
		elem, err := shapeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: ShapeTuple, Type: t, Elem: elem, Arity: t.Len()}, nil
	case t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8:
		elem, err := shapeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: ShapeSequence, Type: t, Elem: elem}, nil
	case t.Kind() == reflect.Map:
		if t.Elem().Kind() != reflect.Struct || t.Elem().NumField() != 0 {
			return nil, fmt.Errorf("unsupported map type %s (sets are map[T]struct{})", t)
		}
		elem, err := shapeOf(t.Key())
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: ShapeSet, Type: t, Elem: elem}, nil
	case IsPrimitiveType(t):
		return &Shape{Kind: ShapePrimitive, Type: t}, nil
	default:
		return nil, &UnsupportedPrimitiveTypeError{GoType: t.String()}
	}
}

// unionAlternatives parses the aas:"union=a|b|none" tag. A "none" entry marks
// optionality and is not a real alternative.
func unionAlternatives(sf reflect.StructField) (alts []reflect.Type, hasNone bool, ok bool) {
	at := sf.Tag.Get("aas")
	if at == "" {
		return nil, false, false
	}
	var spec string
	for _, p := range strings.Split(at, ",") {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "union=") {
			spec = strings.TrimPrefix(p, "union=")
		}
	}
	if spec == "" {
		return nil, false, false
	}
	for _, name := range strings.Split(spec, "|") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "none" || name == "null" {
			hasNone = true
			continue
		}
		t, found := typeByName(name)
		if !found {
			return nil, false, false
		}
		alts = append(alts, t)
	}
	return alts, hasNone, true
}

var builtinTypeNames = map[string]reflect.Type{
	"string":   typeString,
	"bool":     typeBool,
	"int":      typeInt,
	"int64":    typeInt,
	"float":    typeFloat,
	"float64":  typeFloat,
	"bytes":    typeBytes,
	"datetime": reflect.TypeOf(time.Time{}),
	"time":     typeTimeOfDay,
}

func typeByName(name string) (reflect.Type, bool) {
	if t, ok := builtinTypeNames[name]; ok {
		return t, true
	}
	return RegisteredType(name)
}

func isBaseType(t reflect.Type) bool {
	return t == baseAAS || t == baseSubmodel || t == baseSMC
}

// isModelStruct reports whether t is a schema struct, i.e. embeds one of the
// base types.
func isModelStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && isBaseType(sf.Type) {
			return true
		}
	}
	return false
}

// ShapeRecords returns the records encoding the descriptor's type-shape
// facts. The checks are independent and non-exclusive: one attribute may
// contribute an optional, a union, an immutable and a default record at once.
// elementKeyRef references the attribute's element when it has one; identity
// only markers get fresh opaque keys.
func (d AttributeDescriptor) ShapeRecords(elementKeyRef string) []basyx.EmbeddedDataSpecification {
	var recs []basyx.EmbeddedDataSpecification
	if d.Optional {
		recs = append(recs, NewRecord(TagOptional, OpaqueKeyReference(), d.Name))
	}
	if d.Union {
		recs = append(recs, NewRecord(TagUnion, OpaqueKeyReference(), d.Name))
	}
	if d.Shape != nil && d.Shape.Kind == ShapeTuple {
		recs = append(recs, NewRecord(TagImmutable, OpaqueKeyReference(), d.Name))
	}
	if d.HasDefault {
		key := elementKeyRef
		if key == "" {
			key = OpaqueKeyReference()
		}
		recs = append(recs, NewRecord(TagDefault, key, d.Default))
	}
	return recs
}
