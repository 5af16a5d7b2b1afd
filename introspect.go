package aaspydantic

import (
	"fmt"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// Go cannot mint struct types at runtime, so decoding a template yields a
// TemplateType: a dynamic description of the schema type the template was
// generated from, with every fact recovered through the record side-channel.

// TemplateField is one attribute recovered from a template tree.
type TemplateField struct {
	Name         string
	Type         string // host type, class name, or []T for collections
	Optional     bool
	Union        bool
	Immutable    bool
	Default      string
	HasDefault   bool
	Nested       *TemplateType // set for nested model shapes
	Alternatives []string      // set for union attributes
}

// TemplateType is a dynamic schema type description.
type TemplateType struct {
	Name   string
	Fields []TemplateField
}

// TemplateTypeFromSubmodel reconstructs the type description encoded in a
// submodel template.
func TemplateTypeFromSubmodel(sm *basyx.Submodel) (*TemplateType, error) {
	name, err := TemplateClassName(sm)
	if err != nil {
		return nil, err
	}
	fields, err := templateFieldsOf(sm, sm.SubmodelElements)
	if err != nil {
		return nil, err
	}
	return &TemplateType{Name: name, Fields: fields}, nil
}

// TemplateTypesFromEnvironment reconstructs one type description per submodel
// of an environment.
func TemplateTypesFromEnvironment(env *basyx.Environment) ([]*TemplateType, error) {
	var out []*TemplateType
	for _, sm := range env.Submodels {
		tt, err := TemplateTypeFromSubmodel(sm)
		if err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	return out, nil
}

func templateFieldsOf(node Tagged, elements []basyx.SubmodelElement) ([]TemplateField, error) {
	var fields []TemplateField
	index := make(map[string]int)
	for _, e := range elements {
		if smec, ok := e.(*basyx.SubmodelElementCollection); ok && IsListWrapper(smec.IDShort) {
			e = UnpatchListElement(smec, node.Base().IDShort)
		}
		names, err := AttributeNames(node, e.Base().IDShort)
		if err != nil {
			return nil, err
		}
		label, nested, err := templateFieldType(e)
		if err != nil {
			return nil, fmt.Errorf("aaspydantic: element %q: %w", e.Base().IDShort, err)
		}
		for _, name := range names {
			if i, ok := index[name]; ok {
				// a second element under the same attribute name: a union
				// alternative
				f := &fields[i]
				if len(f.Alternatives) == 0 {
					f.Alternatives = append(f.Alternatives, f.Type)
				}
				f.Alternatives = append(f.Alternatives, label)
				continue
			}
			f := TemplateField{
				Name:      name,
				Type:      label,
				Optional:  IsOptionalAttribute(node, name),
				Union:     IsUnionAttribute(node, name),
				Immutable: IsImmutableAttribute(node, name),
				Nested:    nested,
			}
			if def, ok := DefaultValue(node, e.Base().IDShort); ok {
				f.Default = def
				f.HasDefault = true
			}
			index[name] = len(fields)
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// templateFieldType renders the declared type of a template element. A
// collection carrying a class record is a nested model; one without is a
// collection container whose first child describes the element type.
func templateFieldType(e basyx.SubmodelElement) (string, *TemplateType, error) {
	switch el := e.(type) {
	case *basyx.Property:
		host, err := HostType(el.ValueType)
		if err != nil {
			return "", nil, err
		}
		return host.String(), nil, nil
	case *basyx.SubmodelElementCollection:
		if hasClassRecord(el) {
			name, err := TemplateClassName(el)
			if err != nil {
				return "", nil, err
			}
			fields, err := templateFieldsOf(el, el.Value)
			if err != nil {
				return "", nil, err
			}
			return name, &TemplateType{Name: name, Fields: fields}, nil
		}
		if len(el.Value) == 0 {
			return "[]", nil, nil
		}
		child := el.Value[0]
		if smec, ok := child.(*basyx.SubmodelElementCollection); ok && IsListWrapper(smec.IDShort) {
			child = UnpatchListElement(smec, el.IDShort)
		}
		label, nested, err := templateFieldType(child)
		if err != nil {
			return "", nil, err
		}
		return "[]" + label, nested, nil
	default:
		return "", nil, fmt.Errorf("unsupported element %s", e.ModelType())
	}
}

func hasClassRecord(node Tagged) bool {
	ids := nodeIdentifiers(node)
	_, ok := Lookup(node, TagClass, func(rec basyx.EmbeddedDataSpecification) bool {
		return keyMatchesAny(rec, ids)
	})
	return ok
}
