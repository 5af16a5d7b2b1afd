package aaspydantic

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// Schema -> tree encoding. Every produced container carries the record
// side-channel (class, attribute, optional, union, immutable, default) needed
// to reverse the conversion without the Go types at hand.

// modelMeta are the reserved fields read from the embedded base of a model
// value.
type modelMeta struct {
	ID          string
	IDShort     string
	Description string
	SemanticID  string
}

func modelMetaOf(v reflect.Value) (modelMeta, error) {
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous || !isBaseType(sf.Type) {
			continue
		}
		base := v.Field(i)
		m := modelMeta{}
		switch sf.Type {
		case baseAAS:
			b := base.Interface().(AAS)
			m = modelMeta{ID: b.ID, IDShort: b.IDShort, Description: b.Description}
		case baseSubmodel:
			b := base.Interface().(Submodel)
			m = modelMeta{ID: b.ID, IDShort: b.IDShort, Description: b.Description, SemanticID: b.SemanticID}
		case baseSMC:
			b := base.Interface().(SubmodelElementCollection)
			m = modelMeta{IDShort: b.IDShort, Description: b.Description, SemanticID: b.SemanticID}
		}
		return m, nil
	}
	return modelMeta{}, fmt.Errorf("aaspydantic: %s does not embed a model base type", t)
}

// effectiveIDShort falls back to the global identifier when no short
// identifier is set.
func (m modelMeta) effectiveIDShort() string {
	if m.IDShort != "" {
		return m.IDShort
	}
	return m.ID
}

func semanticRef(semanticID string) *basyx.Reference {
	if semanticID == "" {
		return nil
	}
	return basyx.ExternalReference(semanticID)
}

// ---- instance encoding ----

// SubmodelFromModel converts a submodel model value (struct embedding
// Submodel) into a tree submodel with values and the full record
// side-channel.
func SubmodelFromModel(model any) (*basyx.Submodel, error) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if !isModelStruct(v.Type()) {
		return nil, fmt.Errorf("aaspydantic: %T is not a model struct", model)
	}
	return submodelFromValue(v)
}

func submodelFromValue(v reflect.Value) (*basyx.Submodel, error) {
	meta, err := modelMetaOf(v)
	if err != nil {
		return nil, err
	}
	sm := &basyx.Submodel{
		Referable: basyx.Referable{
			IDShort:     meta.effectiveIDShort(),
			Description: DescriptionLangStrings(meta.Description),
			SemanticID:  semanticRef(meta.SemanticID),
		},
		ID: meta.ID,
	}
	Attach(sm, TagClass, meta.ID, v.Type().Name())
	if err := encodeAttributes(sm, &sm.SubmodelElements, v); err != nil {
		return nil, err
	}
	return sm, nil
}

func smcFromValue(v reflect.Value, fallbackIDShort string) (*basyx.SubmodelElementCollection, error) {
	meta, err := modelMetaOf(v)
	if err != nil {
		return nil, err
	}
	idShort := meta.effectiveIDShort()
	if idShort == "" {
		idShort = fallbackIDShort
	}
	smec := &basyx.SubmodelElementCollection{
		Referable: basyx.Referable{
			IDShort:     idShort,
			Description: DescriptionLangStrings(meta.Description),
			SemanticID:  semanticRef(meta.SemanticID),
		},
	}
	Attach(smec, TagClass, idShort, v.Type().Name())
	if err := encodeAttributes(smec, &smec.Value, v); err != nil {
		return nil, err
	}
	return smec, nil
}

// encodeAttributes appends one element per present attribute to children and
// the matching records to the container.
func encodeAttributes(container Tagged, children *[]basyx.SubmodelElement, v reflect.Value) error {
	descs, err := AttributeDescriptorsOf(v.Type())
	if err != nil {
		return err
	}
	for _, d := range descs {
		fv := v.FieldByIndex(d.Field.Index)
		elem, err := encodeAttributeValue(d, fv)
		if err != nil {
			return fmt.Errorf("aaspydantic: attribute %q: %w", d.Name, err)
		}
		keyRef := ""
		if elem != nil {
			keyRef = elem.Base().IDShort
			*children = append(*children, elem)
		}
		b := container.Base()
		if keyRef == "" {
			keyRef = OpaqueKeyReference()
		}
		b.DataSpecifications = append(b.DataSpecifications, NewRecord(TagAttribute, keyRef, d.Name))
		b.DataSpecifications = append(b.DataSpecifications, d.ShapeRecords(keyRef)...)
	}
	return nil
}

// encodeAttributeValue builds the element for one attribute value, or nil for
// an absent optional.
func encodeAttributeValue(d AttributeDescriptor, fv reflect.Value) (basyx.SubmodelElement, error) {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil, nil
		}
		fv = fv.Elem()
	}
	switch d.Shape.Kind {
	case ShapePrimitive, ShapeEnum:
		return propertyFromValue(d.Name, fv)
	case ShapeModel:
		return smcFromValue(fv, d.Name)
	case ShapeSequence, ShapeTuple:
		return collectionFromValues(d, sliceValues(fv))
	case ShapeSet:
		return collectionFromValues(d, setValues(fv))
	case ShapeUnion:
		if fv.IsNil() {
			return nil, nil
		}
		return unionElementFromValue(d.Name, fv.Elem())
	default:
		return nil, fmt.Errorf("unhandled shape kind %d", d.Shape.Kind)
	}
}

func propertyFromValue(idShort string, fv reflect.Value) (*basyx.Property, error) {
	dt, err := DataTypeOf(fv.Type())
	if err != nil {
		return nil, err
	}
	val, err := FormatValue(dt, fv)
	if err != nil {
		return nil, err
	}
	return &basyx.Property{
		Referable: basyx.Referable{IDShort: idShort},
		ValueType: dt,
		Value:     val,
	}, nil
}

// collectionFromValues encodes the elements of a sequence, tuple or set
// attribute into a container collection. Identified elements (nested model
// structs) go through the shadow list patcher so their identifiers survive
// the tree's uniqueness requirement.
func collectionFromValues(d AttributeDescriptor, values []reflect.Value) (*basyx.SubmodelElementCollection, error) {
	container := &basyx.SubmodelElementCollection{
		Referable: basyx.Referable{IDShort: d.Name},
	}
	for i, ev := range values {
		switch d.Shape.Elem.Kind {
		case ShapeModel:
			child, err := smcFromValue(ev, fmt.Sprintf("%s_%d", d.Name, i))
			if err != nil {
				return nil, err
			}
			PatchListElement(child, i)
			container.Value = append(container.Value, child)
		case ShapePrimitive, ShapeEnum:
			p, err := propertyFromValue(fmt.Sprintf("%s_%d", d.Name, i), ev)
			if err != nil {
				return nil, err
			}
			container.Value = append(container.Value, p)
		default:
			return nil, fmt.Errorf("unsupported collection element shape for %q", d.Name)
		}
	}
	return container, nil
}

func unionElementFromValue(idShort string, fv reflect.Value) (basyx.SubmodelElement, error) {
	if fv.Kind() == reflect.Interface {
		fv = fv.Elem()
	}
	if isModelStruct(fv.Type()) {
		return smcFromValue(fv, idShort)
	}
	return propertyFromValue(idShort, fv)
}

func sliceValues(fv reflect.Value) []reflect.Value {
	out := make([]reflect.Value, 0, fv.Len())
	for i := 0; i < fv.Len(); i++ {
		out = append(out, fv.Index(i))
	}
	return out
}

// setValues returns the members of a map[T]struct{} set in a deterministic
// order.
func setValues(fv reflect.Value) []reflect.Value {
	keys := fv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}

// AASFromModel converts a shell model value (struct embedding AAS, whose
// attributes are submodel model values) into an environment holding the shell
// and its submodels.
func AASFromModel(model any) (*basyx.Environment, error) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	meta, err := modelMetaOf(v)
	if err != nil {
		return nil, err
	}
	shell := &basyx.AssetAdministrationShell{
		Referable: basyx.Referable{
			IDShort:     meta.effectiveIDShort(),
			Description: DescriptionLangStrings(meta.Description),
		},
		ID:    meta.ID,
		Asset: basyx.AssetInformation{Kind: basyx.AssetInstance, GlobalAssetID: meta.ID},
	}
	Attach(shell, TagClass, meta.ID, v.Type().Name())
	env := &basyx.Environment{Shells: []*basyx.AssetAdministrationShell{shell}}

	descs, err := AttributeDescriptorsOf(v.Type())
	if err != nil {
		return nil, err
	}
	for _, d := range descs {
		fv := v.FieldByIndex(d.Field.Index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				Attach(shell, TagAttribute, OpaqueKeyReference(), d.Name)
				shell.DataSpecifications = append(shell.DataSpecifications, d.ShapeRecords("")...)
				continue
			}
			fv = fv.Elem()
		}
		if d.Shape.Kind != ShapeModel {
			return nil, fmt.Errorf("aaspydantic: shell attribute %q must be a submodel model", d.Name)
		}
		sm, err := submodelFromValue(fv)
		if err != nil {
			return nil, err
		}
		env.AddSubmodel(sm)
		shell.Submodels = append(shell.Submodels, basyx.ExternalReference(sm.ID))
		Attach(shell, TagAttribute, sm.ID, d.Name)
		shell.DataSpecifications = append(shell.DataSpecifications, d.ShapeRecords(sm.ID)...)
	}
	return env, nil
}
