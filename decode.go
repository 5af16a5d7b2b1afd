package aaspydantic

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// Tree -> schema decoding. Attribute resolution goes through the record
// side-channel first and falls back to case-convention naming; shadow list
// wrappers are rewritten back into identified nodes before their content is
// consumed.

// DecodeSubmodel populates a model struct from a tree submodel. out must be a
// pointer to a struct embedding Submodel.
func DecodeSubmodel(sm *basyx.Submodel, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("aaspydantic: DecodeSubmodel requires a non-nil pointer, got %T", out)
	}
	dst := v.Elem()
	if !isModelStruct(dst.Type()) {
		return fmt.Errorf("aaspydantic: %s is not a model struct", dst.Type())
	}
	if _, err := ClassName(sm); err != nil {
		return err
	}
	setBaseFields(dst, modelMeta{
		ID:          sm.ID,
		IDShort:     sm.IDShort,
		Description: StrDescription(sm.Description),
		SemanticID:  sm.SemanticID.FirstKeyValue(),
	})
	return decodeAttributes(sm, sm.SubmodelElements, dst)
}

// DecodeAAS populates a shell model struct from an environment. out must be a
// pointer to a struct embedding AAS whose attributes are submodel models.
func DecodeAAS(env *basyx.Environment, shell *basyx.AssetAdministrationShell, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("aaspydantic: DecodeAAS requires a non-nil pointer, got %T", out)
	}
	dst := v.Elem()
	if !isModelStruct(dst.Type()) {
		return fmt.Errorf("aaspydantic: %s is not a model struct", dst.Type())
	}
	setBaseFields(dst, modelMeta{
		ID:          shell.ID,
		IDShort:     shell.IDShort,
		Description: StrDescription(shell.Description),
	})
	descs, err := AttributeDescriptorsOf(dst.Type())
	if err != nil {
		return err
	}
	byName := make(map[string]AttributeDescriptor, len(descs))
	for _, d := range descs {
		byName[d.Name] = d
	}
	for _, ref := range shell.Submodels {
		id := ref.FirstKeyValue()
		sm, ok := env.SubmodelByID(id)
		if !ok {
			return fmt.Errorf("aaspydantic: shell %q references unknown submodel %q", shell.ID, id)
		}
		names, err := AttributeNames(shell, sm.ID)
		if err != nil {
			if names, err = AttributeNames(shell, sm.IDShort); err != nil {
				return err
			}
		}
		for _, name := range names {
			d, ok := byName[name]
			if !ok {
				continue
			}
			fv := dst.FieldByIndex(d.Field.Index)
			if fv.Kind() == reflect.Pointer {
				fv.Set(reflect.New(fv.Type().Elem()))
				fv = fv.Elem()
			}
			if !fv.CanAddr() {
				return fmt.Errorf("aaspydantic: attribute %q is not addressable", name)
			}
			if err := DecodeSubmodel(sm, fv.Addr().Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func setBaseFields(dst reflect.Value, m modelMeta) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous || !isBaseType(sf.Type) {
			continue
		}
		base := dst.Field(i)
		switch sf.Type {
		case baseAAS:
			base.Set(reflect.ValueOf(AAS{ID: m.ID, IDShort: m.IDShort, Description: m.Description}))
		case baseSubmodel:
			base.Set(reflect.ValueOf(Submodel{ID: m.ID, IDShort: m.IDShort, Description: m.Description, SemanticID: m.SemanticID}))
		case baseSMC:
			base.Set(reflect.ValueOf(SubmodelElementCollection{IDShort: m.IDShort, Description: m.Description, SemanticID: m.SemanticID}))
		}
		return
	}
}

func decodeAttributes(node Tagged, elements []basyx.SubmodelElement, dst reflect.Value) error {
	descs, err := AttributeDescriptorsOf(dst.Type())
	if err != nil {
		return err
	}
	byName := make(map[string]AttributeDescriptor, len(descs))
	for _, d := range descs {
		byName[d.Name] = d
	}
	seen := make(map[string]bool)
	for _, e := range elements {
		if smec, ok := e.(*basyx.SubmodelElementCollection); ok && IsListWrapper(smec.IDShort) {
			e = UnpatchListElement(smec, node.Base().IDShort)
		}
		names, err := AttributeNames(node, e.Base().IDShort)
		if err != nil {
			return err
		}
		for _, name := range names {
			d, ok := byName[name]
			if !ok {
				continue
			}
			fv := dst.FieldByIndex(d.Field.Index)
			if err := decodeAttributeValue(d, e, fv); err != nil {
				return fmt.Errorf("aaspydantic: attribute %q: %w", name, err)
			}
			seen[name] = true
		}
	}
	for _, d := range descs {
		if seen[d.Name] || !d.HasDefault {
			continue
		}
		if err := applyDefault(d, dst.FieldByIndex(d.Field.Index)); err != nil {
			return fmt.Errorf("aaspydantic: attribute %q: %w", d.Name, err)
		}
	}
	return nil
}

func decodeAttributeValue(d AttributeDescriptor, e basyx.SubmodelElement, fv reflect.Value) error {
	if fv.Kind() == reflect.Pointer {
		fv.Set(reflect.New(fv.Type().Elem()))
		fv = fv.Elem()
	}
	switch d.Shape.Kind {
	case ShapePrimitive, ShapeEnum:
		p, ok := e.(*basyx.Property)
		if !ok {
			return fmt.Errorf("expected property, got %s", e.ModelType())
		}
		if p.Value == "" {
			return nil
		}
		parsed, err := ParseValue(p.ValueType, p.Value)
		if err != nil {
			return err
		}
		return assignValue(fv, parsed)
	case ShapeModel:
		smec, ok := e.(*basyx.SubmodelElementCollection)
		if !ok {
			return fmt.Errorf("expected collection, got %s", e.ModelType())
		}
		return decodeModelElement(smec, fv)
	case ShapeSequence, ShapeTuple, ShapeSet:
		smec, ok := e.(*basyx.SubmodelElementCollection)
		if !ok {
			return fmt.Errorf("expected collection, got %s", e.ModelType())
		}
		return decodeCollection(d, smec, fv)
	case ShapeUnion:
		val, err := decodeUnionValue(e)
		if err != nil {
			return err
		}
		if val == nil {
			return nil
		}
		fv.Set(reflect.ValueOf(val))
		return nil
	default:
		return fmt.Errorf("unhandled shape kind %d", d.Shape.Kind)
	}
}

func decodeModelElement(smec *basyx.SubmodelElementCollection, dst reflect.Value) error {
	if _, err := ClassName(smec); err != nil {
		return err
	}
	setBaseFields(dst, modelMeta{
		IDShort:     smec.IDShort,
		Description: StrDescription(smec.Description),
		SemanticID:  smec.SemanticID.FirstKeyValue(),
	})
	return decodeAttributes(smec, smec.Value, dst)
}

func decodeCollection(d AttributeDescriptor, container *basyx.SubmodelElementCollection, fv reflect.Value) error {
	elemShape := d.Shape.Elem
	children := make([]basyx.SubmodelElement, 0, len(container.Value))
	for _, c := range container.Value {
		if smec, ok := c.(*basyx.SubmodelElementCollection); ok && IsListWrapper(smec.IDShort) {
			c = UnpatchListElement(smec, container.IDShort)
		}
		children = append(children, c)
	}
	decodeOne := func(c basyx.SubmodelElement, into reflect.Value) error {
		switch elemShape.Kind {
		case ShapeModel:
			smec, ok := c.(*basyx.SubmodelElementCollection)
			if !ok {
				return fmt.Errorf("expected collection element, got %s", c.ModelType())
			}
			return decodeModelElement(smec, into)
		case ShapePrimitive, ShapeEnum:
			p, ok := c.(*basyx.Property)
			if !ok {
				return fmt.Errorf("expected property element, got %s", c.ModelType())
			}
			if p.Value == "" {
				return nil
			}
			parsed, err := ParseValue(p.ValueType, p.Value)
			if err != nil {
				return err
			}
			return assignValue(into, parsed)
		default:
			return fmt.Errorf("unsupported collection element shape")
		}
	}
	switch d.Shape.Kind {
	case ShapeSequence:
		out := reflect.MakeSlice(fv.Type(), len(children), len(children))
		for i, c := range children {
			if err := decodeOne(c, out.Index(i)); err != nil {
				return err
			}
		}
		fv.Set(out)
	case ShapeTuple:
		if len(children) != d.Shape.Arity {
			return fmt.Errorf("tuple arity mismatch: declared %d, got %d", d.Shape.Arity, len(children))
		}
		for i, c := range children {
			if err := decodeOne(c, fv.Index(i)); err != nil {
				return err
			}
		}
	case ShapeSet:
		out := reflect.MakeMap(fv.Type())
		for _, c := range children {
			key := reflect.New(fv.Type().Key()).Elem()
			if err := decodeOne(c, key); err != nil {
				return err
			}
			out.SetMapIndex(key, reflect.ValueOf(struct{}{}))
		}
		fv.Set(out)
	}
	return nil
}

// decodeUnionValue reconstructs the dynamic value of a union attribute:
// properties parse by their declared value type, collections resolve their
// class name against the registry.
func decodeUnionValue(e basyx.SubmodelElement) (any, error) {
	switch el := e.(type) {
	case *basyx.Property:
		if el.Value == "" {
			return nil, nil
		}
		return ParseValue(el.ValueType, el.Value)
	case *basyx.SubmodelElementCollection:
		className, err := ClassName(el)
		if err != nil {
			return nil, err
		}
		t, ok := RegisteredType(className)
		if !ok {
			return nil, fmt.Errorf("class %q is not registered", className)
		}
		nv := reflect.New(t).Elem()
		if err := decodeModelElement(el, nv); err != nil {
			return nil, err
		}
		return nv.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported union element %s", e.ModelType())
	}
}

func assignValue(fv reflect.Value, parsed any) error {
	pv := reflect.ValueOf(parsed)
	if !pv.IsValid() {
		return nil
	}
	if pv.Type().AssignableTo(fv.Type()) {
		fv.Set(pv)
		return nil
	}
	if pv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(pv.Convert(fv.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %s to %s", pv.Type(), fv.Type())
}

// applyDefault materializes a declared default for an attribute absent from
// the tree. Defaults are JSON literals; bare strings are accepted for text
// attributes.
func applyDefault(d AttributeDescriptor, fv reflect.Value) error {
	target := fv
	if fv.Kind() == reflect.Pointer {
		target = reflect.New(fv.Type().Elem()).Elem()
	}
	nv := reflect.New(target.Type())
	if err := json.Unmarshal([]byte(d.Default), nv.Interface()); err != nil {
		if target.Kind() != reflect.String {
			return fmt.Errorf("invalid default literal %q: %w", d.Default, err)
		}
		nv.Elem().SetString(d.Default)
	}
	target.Set(nv.Elem())
	if fv.Kind() == reflect.Pointer {
		p := reflect.New(fv.Type().Elem())
		p.Elem().Set(target)
		fv.Set(p)
	}
	return nil
}
