package aaspydantic_test

import (
	"reflect"
	"testing"

	aaspydantic "github.com/SebBehrendt/aas-pydantic"
)

type Mode string

func (Mode) EnumValues() []string { return []string{"auto", "manual"} }

type shapeNested struct {
	aaspydantic.SubmodelElementCollection

	Label string
}

type shapeModel struct {
	aaspydantic.Submodel

	Name     string
	Port     int `default:"8080"`
	Comment  *string
	Mode     Mode
	Tags     []string
	Pair     [2]float64
	Flags    map[string]struct{}
	Nested   shapeNested
	Items    []shapeNested
	Settings any    `aas:"union=string|int64|none"`
	Renamed  string `aas:"name=alias"`
	JSONName string `json:"json_alias"`
	Skipped  string `aas:"-"`
	hidden   string
}

var _ = shapeModel{}.hidden

func init() {
	aaspydantic.Register[shapeNested]()
}

func descriptorsByName(t *testing.T) map[string]aaspydantic.AttributeDescriptor {
	t.Helper()
	ds, err := aaspydantic.AttributeDescriptorsOf(reflect.TypeOf(shapeModel{}))
	if err != nil {
		t.Fatalf("AttributeDescriptorsOf failed: %v", err)
	}
	m := make(map[string]aaspydantic.AttributeDescriptor, len(ds))
	for _, d := range ds {
		m[d.Name] = d
	}
	return m
}

func TestAttributeDescriptors_NamesAndExclusions(t *testing.T) {
	ds := descriptorsByName(t)
	for _, want := range []string{"name", "port", "comment", "mode", "tags", "pair", "flags", "nested", "items", "settings", "alias", "json_alias"} {
		if _, ok := ds[want]; !ok {
			t.Fatalf("missing attribute %q (have %v)", want, keysOf(ds))
		}
	}
	for _, banned := range []string{"skipped", "hidden", "id", "id_short", "description", "semantic_id"} {
		if _, ok := ds[banned]; ok {
			t.Fatalf("attribute %q must be excluded", banned)
		}
	}
}

func keysOf(m map[string]aaspydantic.AttributeDescriptor) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestShapeClassifier(t *testing.T) {
	ds := descriptorsByName(t)

	if d := ds["name"]; d.Shape.Kind != aaspydantic.ShapePrimitive || d.Optional {
		t.Fatalf("name: %+v", d)
	}
	if d := ds["comment"]; d.Shape.Kind != aaspydantic.ShapePrimitive || !d.Optional {
		t.Fatalf("pointer fields must classify optional: %+v", d)
	}
	if d := ds["mode"]; d.Shape.Kind != aaspydantic.ShapeEnum {
		t.Fatalf("enum before primitive: %+v", d)
	}
	if d := ds["tags"]; d.Shape.Kind != aaspydantic.ShapeSequence || d.Shape.Elem.Kind != aaspydantic.ShapePrimitive {
		t.Fatalf("tags: %+v", d)
	}
	if d := ds["pair"]; d.Shape.Kind != aaspydantic.ShapeTuple || d.Shape.Arity != 2 {
		t.Fatalf("arrays are fixed-arity tuples: %+v", d)
	}
	if d := ds["flags"]; d.Shape.Kind != aaspydantic.ShapeSet {
		t.Fatalf("map[T]struct{} is a set: %+v", d)
	}
	if d := ds["nested"]; d.Shape.Kind != aaspydantic.ShapeModel {
		t.Fatalf("embedded-base structs are models: %+v", d)
	}
	if d := ds["items"]; d.Shape.Kind != aaspydantic.ShapeSequence || d.Shape.Elem.Kind != aaspydantic.ShapeModel {
		t.Fatalf("items: %+v", d)
	}
}

func TestShapeClassifier_Union(t *testing.T) {
	ds := descriptorsByName(t)
	d := ds["settings"]
	if d.Shape.Kind != aaspydantic.ShapeUnion {
		t.Fatalf("settings: %+v", d)
	}
	if !d.Union {
		t.Fatalf("two real alternatives must mark the attribute a union")
	}
	if !d.Optional {
		t.Fatalf("a none alternative must mark the attribute optional")
	}
	if len(d.Shape.Alternatives) != 2 {
		t.Fatalf("none is not a real alternative: %v", d.Shape.Alternatives)
	}
}

func TestShapeClassifier_Default(t *testing.T) {
	ds := descriptorsByName(t)
	d := ds["port"]
	if !d.HasDefault || d.Default != "8080" {
		t.Fatalf("default tag not captured: %+v", d)
	}
}

func TestShapeRecords(t *testing.T) {
	ds := descriptorsByName(t)

	recs := ds["pair"].ShapeRecords("")
	if len(recs) != 1 {
		t.Fatalf("tuple attribute must emit one immutable record, got %d", len(recs))
	}
	if kind, _ := recs[0].Content.PreferredName.Get("en"); kind != string(aaspydantic.TagImmutable) {
		t.Fatalf("unexpected record kind %q", kind)
	}

	recs = ds["settings"].ShapeRecords("")
	kinds := make(map[string]bool)
	for _, r := range recs {
		k, _ := r.Content.PreferredName.Get("en")
		kinds[k] = true
	}
	if !kinds[string(aaspydantic.TagOptional)] || !kinds[string(aaspydantic.TagUnion)] {
		t.Fatalf("optional union must emit both records, got %v", kinds)
	}

	recs = ds["port"].ShapeRecords("port_element")
	if len(recs) != 1 || recs[0].Content.Value != "8080" {
		t.Fatalf("default record wrong: %+v", recs)
	}
	if !recs[0].DataSpecification.HasKeyValue("port_element") {
		t.Fatalf("default record must be keyed on the element reference")
	}
}

func TestResolveAttributeKey_Priority(t *testing.T) {
	typ := reflect.TypeOf(struct {
		Both   string `aas:"name=from_aas" json:"from_json"`
		OnlyJS string `json:"js_name,omitempty"`
		Plain  string
	}{})
	if got := aaspydantic.ResolveAttributeKey(typ.Field(0)); got != "from_aas" {
		t.Fatalf("aas tag must win: %q", got)
	}
	if got := aaspydantic.ResolveAttributeKey(typ.Field(1)); got != "js_name" {
		t.Fatalf("json tag options must be stripped: %q", got)
	}
	if got := aaspydantic.ResolveAttributeKey(typ.Field(2)); got != "plain" {
		t.Fatalf("fallback must attribute-case the field name: %q", got)
	}
}
