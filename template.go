package aaspydantic

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// Template encoding: a schema type becomes a value-free tree whose elements
// describe the attribute shapes. Templates carry the same record side-channel
// as instances; representative child elements stand in for collection and
// union members.

// SubmodelTemplateFromType converts a submodel model type into a tree
// template. The template's identifiers are the class name itself.
func SubmodelTemplateFromType(t reflect.Type) (*basyx.Submodel, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !isModelStruct(t) {
		return nil, fmt.Errorf("aaspydantic: %s is not a model struct", t)
	}
	name := t.Name()
	sm := &basyx.Submodel{
		Referable: basyx.Referable{IDShort: name},
		ID:        name,
	}
	Attach(sm, TagClass, name, name)
	if err := templateAttributes(sm, &sm.SubmodelElements, t); err != nil {
		return nil, err
	}
	return sm, nil
}

// AASTemplateFromType converts a shell model type into an environment holding
// the shell template and one submodel template per attribute.
func AASTemplateFromType(t reflect.Type) (*basyx.Environment, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !isModelStruct(t) {
		return nil, fmt.Errorf("aaspydantic: %s is not a model struct", t)
	}
	name := t.Name()
	shell := &basyx.AssetAdministrationShell{
		Referable: basyx.Referable{IDShort: name},
		ID:        name,
		Asset:     basyx.AssetInformation{Kind: basyx.AssetType},
	}
	Attach(shell, TagClass, name, name)
	env := &basyx.Environment{Shells: []*basyx.AssetAdministrationShell{shell}}

	descs, err := AttributeDescriptorsOf(t)
	if err != nil {
		return nil, err
	}
	for _, d := range descs {
		shape := d.Shape
		if shape.Kind != ShapeModel {
			return nil, fmt.Errorf("aaspydantic: shell attribute %q must be a submodel model", d.Name)
		}
		sm, err := SubmodelTemplateFromType(shape.Type)
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

func templateSMC(t reflect.Type, idShort string) (*basyx.SubmodelElementCollection, error) {
	smec := &basyx.SubmodelElementCollection{
		Referable: basyx.Referable{IDShort: idShort},
	}
	Attach(smec, TagClass, idShort, t.Name())
	if err := templateAttributes(smec, &smec.Value, t); err != nil {
		return nil, err
	}
	return smec, nil
}

func templateAttributes(container Tagged, children *[]basyx.SubmodelElement, t reflect.Type) error {
	descs, err := AttributeDescriptorsOf(t)
	if err != nil {
		return err
	}
	b := container.Base()
	for _, d := range descs {
		elems, err := templateElements(d)
		if err != nil {
			return fmt.Errorf("aaspydantic: attribute %q: %w", d.Name, err)
		}
		keyRef := ""
		for _, e := range elems {
			*children = append(*children, e)
			b.DataSpecifications = append(b.DataSpecifications, NewRecord(TagAttribute, e.Base().IDShort, d.Name))
			if keyRef == "" {
				keyRef = e.Base().IDShort
			}
		}
		if len(elems) == 0 {
			b.DataSpecifications = append(b.DataSpecifications, NewRecord(TagAttribute, OpaqueKeyReference(), d.Name))
		}
		b.DataSpecifications = append(b.DataSpecifications, d.ShapeRecords(keyRef)...)
	}
	return nil
}

// templateElements builds the template element(s) for one attribute. Unions
// contribute one element per alternative, each addressable under the same
// attribute name.
func templateElements(d AttributeDescriptor) ([]basyx.SubmodelElement, error) {
	switch d.Shape.Kind {
	case ShapePrimitive, ShapeEnum:
		p, err := templateProperty(d.Name, d.Shape.Type)
		if err != nil {
			return nil, err
		}
		if d.HasDefault {
			p.Value = d.Default
		}
		return []basyx.SubmodelElement{p}, nil
	case ShapeModel:
		smec, err := templateSMC(d.Shape.Type, d.Name)
		if err != nil {
			return nil, err
		}
		return []basyx.SubmodelElement{smec}, nil
	case ShapeSequence, ShapeTuple, ShapeSet:
		container := &basyx.SubmodelElementCollection{
			Referable: basyx.Referable{IDShort: d.Name},
		}
		rep, err := representativeElement(d.Name+"_item", d.Shape.Elem)
		if err != nil {
			return nil, err
		}
		container.Value = append(container.Value, rep)
		return []basyx.SubmodelElement{container}, nil
	case ShapeUnion:
		var out []basyx.SubmodelElement
		for _, alt := range d.Shape.Alternatives {
			if isModelStruct(alt) {
				smec, err := templateSMC(alt, d.Name+"_"+AttributeCase(alt.Name()))
				if err != nil {
					return nil, err
				}
				out = append(out, smec)
				continue
			}
			p, err := templateProperty(d.Name+"_"+strings.ToLower(alt.Name()), alt)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unhandled shape kind %d", d.Shape.Kind)
	}
}

func representativeElement(idShort string, shape *Shape) (basyx.SubmodelElement, error) {
	switch shape.Kind {
	case ShapeModel:
		return templateSMC(shape.Type, idShort)
	case ShapePrimitive, ShapeEnum:
		return templateProperty(idShort, shape.Type)
	default:
		return nil, fmt.Errorf("unsupported collection element shape")
	}
}

func templateProperty(idShort string, t reflect.Type) (*basyx.Property, error) {
	dt, err := DataTypeOf(t)
	if err != nil {
		return nil, err
	}
	return &basyx.Property{
		Referable: basyx.Referable{IDShort: idShort},
		ValueType: dt,
	}, nil
}
