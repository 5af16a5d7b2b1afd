package basyx

// Referable carries the attributes shared by every element of the tree:
// a locally unique short identifier, an ordered multilingual description,
// an optional semantic reference and the embedded data specification records
// used as the metadata side-channel.
type Referable struct {
	IDShort            string
	Description        LangStringSet
	SemanticID         *Reference
	DataSpecifications []EmbeddedDataSpecification
}

// Base exposes the shared Referable of an element.
func (r *Referable) Base() *Referable { return r }

// SubmodelElement is any node that can appear inside a submodel or a
// collection.
type SubmodelElement interface {
	Base() *Referable
	// ModelType returns the serialization discriminator of the element.
	ModelType() string
}

// Property is a leaf element holding a single typed value in XSD lexical
// form.
type Property struct {
	Referable
	ValueType DataTypeDefXSD
	Value     string
}

func (*Property) ModelType() string { return "Property" }

// SubmodelElementCollection is a container element with ordered children.
type SubmodelElementCollection struct {
	Referable
	Value []SubmodelElement
}

func (*SubmodelElementCollection) ModelType() string { return "SubmodelElementCollection" }

// Child returns the first child with the given short identifier.
func (c *SubmodelElementCollection) Child(idShort string) (SubmodelElement, bool) {
	for _, e := range c.Value {
		if e.Base().IDShort == idShort {
			return e, true
		}
	}
	return nil, false
}

// Submodel is an identifiable root container.
type Submodel struct {
	Referable
	ID               string
	SubmodelElements []SubmodelElement
}

// Child returns the first direct element with the given short identifier.
func (s *Submodel) Child(idShort string) (SubmodelElement, bool) {
	for _, e := range s.SubmodelElements {
		if e.Base().IDShort == idShort {
			return e, true
		}
	}
	return nil, false
}

// AssetKind distinguishes asset instances from asset types.
type AssetKind string

const (
	AssetInstance AssetKind = "Instance"
	AssetType     AssetKind = "Type"
)

// AssetInformation is the minimal asset block every shell must carry.
type AssetInformation struct {
	Kind          AssetKind
	GlobalAssetID string
}

// AssetAdministrationShell is the identifiable root of a device description,
// referencing its submodels by identifier.
type AssetAdministrationShell struct {
	Referable
	ID        string
	Asset     AssetInformation
	Submodels []*Reference
}

// Environment is the serialization unit: a set of shells plus the submodels
// they reference.
type Environment struct {
	Shells    []*AssetAdministrationShell
	Submodels []*Submodel
}

// SubmodelByID returns the submodel with the given identifier.
func (e *Environment) SubmodelByID(id string) (*Submodel, bool) {
	for _, sm := range e.Submodels {
		if sm.ID == id {
			return sm, true
		}
	}
	return nil, false
}

// AddSubmodel appends a submodel, replacing any existing one with the same
// identifier.
func (e *Environment) AddSubmodel(sm *Submodel) {
	for i, existing := range e.Submodels {
		if existing.ID == sm.ID {
			e.Submodels[i] = sm
			return
		}
	}
	e.Submodels = append(e.Submodels, sm)
}
