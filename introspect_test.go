package aaspydantic_test

import (
	"reflect"
	"testing"

	aaspydantic "github.com/SebBehrendt/aas-pydantic"
)

func templateFieldsByName(t *testing.T) (string, map[string]aaspydantic.TemplateField) {
	t.Helper()
	sm, err := aaspydantic.SubmodelTemplateFromType(reflect.TypeOf(PlantUnit{}))
	if err != nil {
		t.Fatalf("template encode failed: %v", err)
	}
	tt, err := aaspydantic.TemplateTypeFromSubmodel(sm)
	if err != nil {
		t.Fatalf("template introspection failed: %v", err)
	}
	m := make(map[string]aaspydantic.TemplateField, len(tt.Fields))
	for _, f := range tt.Fields {
		m[f.Name] = f
	}
	return tt.Name, m
}

func TestTemplateIntrospection_TypeName(t *testing.T) {
	name, _ := templateFieldsByName(t)
	if name != "PlantUnit" {
		t.Fatalf("unexpected type name %q", name)
	}
}

func TestTemplateIntrospection_Primitives(t *testing.T) {
	_, fields := templateFieldsByName(t)

	if f := fields["serial"]; f.Type != "string" || f.Optional || f.Union {
		t.Fatalf("serial: %+v", f)
	}
	if f := fields["ratio"]; f.Type != "float64" {
		t.Fatalf("ratio: %+v", f)
	}
	if f := fields["active"]; f.Type != "bool" {
		t.Fatalf("active: %+v", f)
	}
	if f := fields["count"]; !f.HasDefault || f.Default != "3" {
		t.Fatalf("count default lost: %+v", f)
	}
}

func TestTemplateIntrospection_Collections(t *testing.T) {
	_, fields := templateFieldsByName(t)

	if f := fields["sensors"]; f.Type != "[]string" {
		t.Fatalf("sensors: %+v", f)
	}
	if f := fields["readings"]; f.Type != "[]SensorReading" || f.Nested == nil {
		t.Fatalf("readings: %+v", f)
	}
	if f := fields["window"]; !f.Immutable {
		t.Fatalf("tuple attribute must introspect immutable: %+v", f)
	}
	if f := fields["note"]; !f.Optional {
		t.Fatalf("pointer attribute must introspect optional: %+v", f)
	}
}

func TestTemplateIntrospection_NestedModel(t *testing.T) {
	_, fields := templateFieldsByName(t)
	f := fields["readings"]
	if f.Nested.Name != "SensorReading" {
		t.Fatalf("nested type name: %+v", f.Nested)
	}
	nested := make(map[string]aaspydantic.TemplateField, len(f.Nested.Fields))
	for _, nf := range f.Nested.Fields {
		nested[nf.Name] = nf
	}
	if nf := nested["channel"]; nf.Type != "string" {
		t.Fatalf("nested channel: %+v", nf)
	}
	if nf := nested["value"]; nf.Type != "float64" {
		t.Fatalf("nested value: %+v", nf)
	}
}

func TestTemplateIntrospection_Union(t *testing.T) {
	_, fields := templateFieldsByName(t)
	f := fields["settings"]
	if !f.Union || !f.Optional {
		t.Fatalf("settings facts: %+v", f)
	}
	if len(f.Alternatives) != 2 {
		t.Fatalf("settings alternatives: %+v", f.Alternatives)
	}
	if f.Alternatives[0] != "string" || f.Alternatives[1] != "int64" {
		t.Fatalf("settings alternatives: %+v", f.Alternatives)
	}
}

func TestAASTemplate_Environment(t *testing.T) {
	env, err := aaspydantic.AASTemplateFromType(reflect.TypeOf(PlantShell{}))
	if err != nil {
		t.Fatalf("template encode failed: %v", err)
	}
	if len(env.Shells) != 1 || len(env.Submodels) != 1 {
		t.Fatalf("unexpected environment: %d shells, %d submodels", len(env.Shells), len(env.Submodels))
	}
	types, err := aaspydantic.TemplateTypesFromEnvironment(env)
	if err != nil {
		t.Fatalf("introspection failed: %v", err)
	}
	if len(types) != 1 || types[0].Name != "PlantUnit" {
		t.Fatalf("unexpected types: %+v", types)
	}
	names, err := aaspydantic.AttributeNames(env.Shells[0], "PlantUnit")
	if err != nil || len(names) != 1 || names[0] != "unit" {
		t.Fatalf("shell attribute record broken: %v %v", names, err)
	}
}
