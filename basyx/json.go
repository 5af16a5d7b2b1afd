package basyx

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Wire shapes follow the AAS v3 JSON serialization closely enough for
// round-tripping environments produced by this repository.

type jsonLangString struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

type jsonKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type jsonReference struct {
	Type string    `json:"type"`
	Keys []jsonKey `json:"keys"`
}

type jsonContent struct {
	PreferredName []jsonLangString `json:"preferredName,omitempty"`
	Value         string           `json:"value,omitempty"`
}

type jsonDataSpec struct {
	DataSpecification *jsonReference `json:"dataSpecification,omitempty"`
	Content           jsonContent    `json:"dataSpecificationContent"`
}

type jsonElement struct {
	ModelType     string           `json:"modelType"`
	IDShort       string           `json:"idShort,omitempty"`
	Description   []jsonLangString `json:"description,omitempty"`
	SemanticID    *jsonReference   `json:"semanticId,omitempty"`
	DataSpecs     []jsonDataSpec   `json:"embeddedDataSpecifications,omitempty"`
	ValueType     string           `json:"valueType,omitempty"`
	Value         json.RawMessage  `json:"value,omitempty"`
}

type jsonSubmodel struct {
	ModelType   string           `json:"modelType"`
	ID          string           `json:"id"`
	IDShort     string           `json:"idShort,omitempty"`
	Description []jsonLangString `json:"description,omitempty"`
	SemanticID  *jsonReference   `json:"semanticId,omitempty"`
	DataSpecs   []jsonDataSpec   `json:"embeddedDataSpecifications,omitempty"`
	Elements    []jsonElement    `json:"submodelElements,omitempty"`
}

type jsonAssetInfo struct {
	AssetKind     string `json:"assetKind"`
	GlobalAssetID string `json:"globalAssetId,omitempty"`
}

type jsonShell struct {
	ModelType   string           `json:"modelType"`
	ID          string           `json:"id"`
	IDShort     string           `json:"idShort,omitempty"`
	Description []jsonLangString `json:"description,omitempty"`
	DataSpecs   []jsonDataSpec   `json:"embeddedDataSpecifications,omitempty"`
	AssetInfo   jsonAssetInfo    `json:"assetInformation"`
	Submodels   []jsonReference  `json:"submodels,omitempty"`
}

type jsonEnvironment struct {
	Shells    []jsonShell    `json:"assetAdministrationShells,omitempty"`
	Submodels []jsonSubmodel `json:"submodels,omitempty"`
}

// WriteEnvironment serializes the environment as AAS JSON.
func WriteEnvironment(w io.Writer, env *Environment) error {
	je := jsonEnvironment{}
	for _, sh := range env.Shells {
		je.Shells = append(je.Shells, shellToJSON(sh))
	}
	for _, sm := range env.Submodels {
		je.Submodels = append(je.Submodels, submodelToJSON(sm))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(je)
}

// ReadEnvironment parses AAS JSON into an Environment.
func ReadEnvironment(r io.Reader) (*Environment, error) {
	var je jsonEnvironment
	if err := json.NewDecoder(r).Decode(&je); err != nil {
		return nil, fmt.Errorf("basyx: decode environment: %w", err)
	}
	env := &Environment{}
	for _, js := range je.Shells {
		env.Shells = append(env.Shells, shellFromJSON(js))
	}
	for _, js := range je.Submodels {
		sm, err := submodelFromJSON(js)
		if err != nil {
			return nil, err
		}
		env.Submodels = append(env.Submodels, sm)
	}
	return env, nil
}

// ---- encode helpers ----

func langsToJSON(ls LangStringSet) []jsonLangString {
	if len(ls) == 0 {
		return nil
	}
	out := make([]jsonLangString, 0, len(ls))
	for _, e := range ls {
		out = append(out, jsonLangString{Language: e.Language, Text: e.Text})
	}
	return out
}

func refToJSON(r *Reference) *jsonReference {
	if r == nil {
		return nil
	}
	jr := &jsonReference{Type: "ExternalReference"}
	for _, k := range r.Keys {
		jr.Keys = append(jr.Keys, jsonKey{Type: string(k.Type), Value: k.Value})
	}
	return jr
}

func specsToJSON(specs []EmbeddedDataSpecification) []jsonDataSpec {
	if len(specs) == 0 {
		return nil
	}
	out := make([]jsonDataSpec, 0, len(specs))
	for _, s := range specs {
		out = append(out, jsonDataSpec{
			DataSpecification: refToJSON(s.DataSpecification),
			Content: jsonContent{
				PreferredName: langsToJSON(s.Content.PreferredName),
				Value:         s.Content.Value,
			},
		})
	}
	return out
}

func elementToJSON(e SubmodelElement) (jsonElement, error) {
	b := e.Base()
	je := jsonElement{
		ModelType:   e.ModelType(),
		IDShort:     b.IDShort,
		Description: langsToJSON(b.Description),
		SemanticID:  refToJSON(b.SemanticID),
		DataSpecs:   specsToJSON(b.DataSpecifications),
	}
	switch el := e.(type) {
	case *Property:
		je.ValueType = string(el.ValueType)
		raw, err := json.Marshal(el.Value)
		if err != nil {
			return je, err
		}
		je.Value = raw
	case *SubmodelElementCollection:
		children := make([]jsonElement, 0, len(el.Value))
		for _, c := range el.Value {
			jc, err := elementToJSON(c)
			if err != nil {
				return je, err
			}
			children = append(children, jc)
		}
		raw, err := json.Marshal(children)
		if err != nil {
			return je, err
		}
		je.Value = raw
	default:
		return je, fmt.Errorf("basyx: unknown element type %T", e)
	}
	return je, nil
}

func submodelToJSON(sm *Submodel) jsonSubmodel {
	js := jsonSubmodel{
		ModelType:   "Submodel",
		ID:          sm.ID,
		IDShort:     sm.IDShort,
		Description: langsToJSON(sm.Description),
		SemanticID:  refToJSON(sm.SemanticID),
		DataSpecs:   specsToJSON(sm.DataSpecifications),
	}
	for _, e := range sm.SubmodelElements {
		je, err := elementToJSON(e)
		if err != nil {
			continue
		}
		js.Elements = append(js.Elements, je)
	}
	return js
}

func shellToJSON(sh *AssetAdministrationShell) jsonShell {
	js := jsonShell{
		ModelType:   "AssetAdministrationShell",
		ID:          sh.ID,
		IDShort:     sh.IDShort,
		Description: langsToJSON(sh.Description),
		DataSpecs:   specsToJSON(sh.DataSpecifications),
		AssetInfo: jsonAssetInfo{
			AssetKind:     string(sh.Asset.Kind),
			GlobalAssetID: sh.Asset.GlobalAssetID,
		},
	}
	for _, r := range sh.Submodels {
		if jr := refToJSON(r); jr != nil {
			js.Submodels = append(js.Submodels, *jr)
		}
	}
	return js
}

// ---- decode helpers ----

func langsFromJSON(in []jsonLangString) LangStringSet {
	if len(in) == 0 {
		return nil
	}
	out := make(LangStringSet, 0, len(in))
	for _, e := range in {
		out = append(out, LangString{Language: e.Language, Text: e.Text})
	}
	return out
}

func refFromJSON(jr *jsonReference) *Reference {
	if jr == nil {
		return nil
	}
	r := &Reference{}
	for _, k := range jr.Keys {
		r.Keys = append(r.Keys, Key{Type: KeyType(k.Type), Value: k.Value})
	}
	return r
}

func specsFromJSON(in []jsonDataSpec) []EmbeddedDataSpecification {
	if len(in) == 0 {
		return nil
	}
	out := make([]EmbeddedDataSpecification, 0, len(in))
	for _, s := range in {
		out = append(out, EmbeddedDataSpecification{
			DataSpecification: refFromJSON(s.DataSpecification),
			Content: DataSpecificationContent{
				PreferredName: langsFromJSON(s.Content.PreferredName),
				Value:         s.Content.Value,
			},
		})
	}
	return out
}

func elementFromJSON(je jsonElement) (SubmodelElement, error) {
	base := Referable{
		IDShort:            je.IDShort,
		Description:        langsFromJSON(je.Description),
		SemanticID:         refFromJSON(je.SemanticID),
		DataSpecifications: specsFromJSON(je.DataSpecs),
	}
	switch je.ModelType {
	case "Property":
		p := &Property{Referable: base, ValueType: DataTypeDefXSD(je.ValueType)}
		if len(je.Value) > 0 {
			if err := json.Unmarshal(je.Value, &p.Value); err != nil {
				return nil, fmt.Errorf("basyx: property %q value: %w", je.IDShort, err)
			}
		}
		return p, nil
	case "SubmodelElementCollection":
		c := &SubmodelElementCollection{Referable: base}
		if len(je.Value) > 0 {
			var children []jsonElement
			if err := json.Unmarshal(je.Value, &children); err != nil {
				return nil, fmt.Errorf("basyx: collection %q value: %w", je.IDShort, err)
			}
			for _, jc := range children {
				child, err := elementFromJSON(jc)
				if err != nil {
					return nil, err
				}
				c.Value = append(c.Value, child)
			}
		}
		return c, nil
	default:
		return nil, fmt.Errorf("basyx: unknown modelType %q", je.ModelType)
	}
}

func submodelFromJSON(js jsonSubmodel) (*Submodel, error) {
	sm := &Submodel{
		Referable: Referable{
			IDShort:            js.IDShort,
			Description:        langsFromJSON(js.Description),
			SemanticID:         refFromJSON(js.SemanticID),
			DataSpecifications: specsFromJSON(js.DataSpecs),
		},
		ID: js.ID,
	}
	for _, je := range js.Elements {
		e, err := elementFromJSON(je)
		if err != nil {
			return nil, err
		}
		sm.SubmodelElements = append(sm.SubmodelElements, e)
	}
	return sm, nil
}

func shellFromJSON(js jsonShell) *AssetAdministrationShell {
	sh := &AssetAdministrationShell{
		Referable: Referable{
			IDShort:            js.IDShort,
			Description:        langsFromJSON(js.Description),
			DataSpecifications: specsFromJSON(js.DataSpecs),
		},
		ID: js.ID,
		Asset: AssetInformation{
			Kind:          AssetKind(js.AssetInfo.AssetKind),
			GlobalAssetID: js.AssetInfo.GlobalAssetID,
		},
	}
	for i := range js.Submodels {
		sh.Submodels = append(sh.Submodels, refFromJSON(&js.Submodels[i]))
	}
	return sh
}
