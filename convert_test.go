package aaspydantic_test

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	aaspydantic "github.com/SebBehrendt/aas-pydantic"
)

func TestConverter_RoundTrip(t *testing.T) {
	conv := aaspydantic.NewConverter()
	in := samplePlantUnit()

	sm, err := conv.SubmodelFromModel(&in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var out PlantUnit
	if err := conv.DecodeSubmodel(sm, &out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch")
	}
}

func TestConverter_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	conv := aaspydantic.NewConverter(aaspydantic.WithLogger(zap.New(core)))

	in := samplePlantUnit()
	if _, err := conv.SubmodelFromModel(&in); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if logs.FilterMessage("encoded submodel").Len() != 1 {
		t.Fatalf("expected one encode log entry, got %d total", logs.Len())
	}

	if _, err := conv.SubmodelFromModel(struct{ X int }{}); err == nil {
		t.Fatalf("non-model value must fail")
	}
	if logs.FilterMessage("encode submodel failed").Len() != 1 {
		t.Fatalf("expected one error log entry")
	}
}

func TestConverter_Templates(t *testing.T) {
	conv := aaspydantic.NewConverter()
	env, err := conv.AASTemplateFromType(reflect.TypeOf(PlantShell{}))
	if err != nil {
		t.Fatalf("template failed: %v", err)
	}
	types, err := conv.TemplateTypes(env)
	if err != nil {
		t.Fatalf("introspect failed: %v", err)
	}
	if len(types) != 1 || types[0].Name != "PlantUnit" {
		t.Fatalf("unexpected types: %+v", types)
	}
}
