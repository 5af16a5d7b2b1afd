package basyx_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

func sampleEnvironment() *basyx.Environment {
	sm := &basyx.Submodel{
		Referable: basyx.Referable{
			IDShort:     "cfg",
			Description: basyx.LangStringSet{{Language: "en", Text: "config"}},
			SemanticID:  basyx.ExternalReference("urn:sem:cfg"),
			DataSpecifications: []basyx.EmbeddedDataSpecification{{
				DataSpecification: basyx.ExternalReference("urn:cfg"),
				Content: basyx.DataSpecificationContent{
					PreferredName: basyx.LangStringSet{{Language: "en", Text: "class"}},
					Value:         "Config",
				},
			}},
		},
		ID: "urn:cfg",
		SubmodelElements: []basyx.SubmodelElement{
			&basyx.Property{
				Referable: basyx.Referable{IDShort: "port"},
				ValueType: basyx.Integer,
				Value:     "8080",
			},
			&basyx.SubmodelElementCollection{
				Referable: basyx.Referable{IDShort: "nested"},
				Value: []basyx.SubmodelElement{
					&basyx.Property{
						Referable: basyx.Referable{IDShort: "inner"},
						ValueType: basyx.String,
						Value:     "v",
					},
				},
			},
		},
	}
	shell := &basyx.AssetAdministrationShell{
		Referable: basyx.Referable{IDShort: "shell"},
		ID:        "urn:shell",
		Asset:     basyx.AssetInformation{Kind: basyx.AssetInstance, GlobalAssetID: "urn:shell"},
		Submodels: []*basyx.Reference{basyx.ExternalReference("urn:cfg")},
	}
	return &basyx.Environment{
		Shells:    []*basyx.AssetAdministrationShell{shell},
		Submodels: []*basyx.Submodel{sm},
	}
}

func TestEnvironmentJSONRoundTrip(t *testing.T) {
	env := sampleEnvironment()
	var buf bytes.Buffer
	if err := basyx.WriteEnvironment(&buf, env); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := basyx.ReadEnvironment(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !reflect.DeepEqual(env, got) {
		t.Fatalf("round trip mismatch:\nwant: %#v\ngot:  %#v", env, got)
	}
}

func TestWriteEnvironment_Discriminators(t *testing.T) {
	var buf bytes.Buffer
	if err := basyx.WriteEnvironment(&buf, sampleEnvironment()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"modelType": "AssetAdministrationShell"`,
		`"modelType": "Submodel"`,
		`"modelType": "Property"`,
		`"modelType": "SubmodelElementCollection"`,
		`"assetKind": "Instance"`,
	} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("serialized environment misses %s:\n%s", want, out)
		}
	}
}

func TestReadEnvironment_UnknownModelType(t *testing.T) {
	doc := `{"submodels":[{"modelType":"Submodel","id":"x","submodelElements":[{"modelType":"Blob","idShort":"b"}]}]}`
	if _, err := basyx.ReadEnvironment(bytes.NewReader([]byte(doc))); err == nil {
		t.Fatalf("unknown element type must fail")
	}
}
