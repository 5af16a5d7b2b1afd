package aaspydantic

import (
	"fmt"
	"strings"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// The shadow list patcher. Plain sequence attributes are order-significant
// and anonymous, but every tree child must carry a unique short identifier.
// Sequence elements that are themselves identified nodes therefore round-trip
// through synthesized wrapper collections: the real identifier moves into a
// reserved synthetic property and the wrapper takes a sentinel identifier
// with a distinguishing suffix.

const (
	listWrapperPrefix = "generated_submodel_list_hack_"
	tempIDShortPrefix = "temp_id_short_attribute"
)

// IsListWrapper reports whether the short identifier matches the synthesized
// wrapper pattern.
func IsListWrapper(idShort string) bool {
	return strings.HasPrefix(idShort, listWrapperPrefix)
}

// PatchListElement turns an identified collection into an anonymous sequence
// element in place: the real short identifier moves into a synthetic child
// property and the node is renamed to the sentinel pattern. n distinguishes
// siblings of the same sequence. Inverse of UnpatchListElement.
func PatchListElement(smec *basyx.SubmodelElementCollection, n int) {
	temp := &basyx.Property{
		Referable: basyx.Referable{IDShort: tempIDShortPrefix},
		ValueType: basyx.String,
		Value:     smec.IDShort,
	}
	smec.Value = append(smec.Value, temp)
	smec.IDShort = fmt.Sprintf("%s%d", listWrapperPrefix, n)
}

// UnpatchListElement rewrites a suspected wrapper back into a correctly
// identified node and returns the replacement; the caller splices it into the
// parent. Nodes that do not match the wrapper pattern are returned unchanged.
//
// A wrapper without a synthetic identifier child is a malformed or legacy
// tree; it degrades by inheriting parentIDShort, and the caller must detach
// it from the parent. This is a defensive fallback, not a normal path.
func UnpatchListElement(smec *basyx.SubmodelElementCollection, parentIDShort string) *basyx.SubmodelElementCollection {
	if !IsListWrapper(smec.IDShort) {
		return smec
	}
	var idShort string
	kept := make([]basyx.SubmodelElement, 0, len(smec.Value))
	for _, e := range smec.Value {
		if p, ok := e.(*basyx.Property); ok && strings.HasPrefix(p.IDShort, tempIDShortPrefix) {
			idShort = p.Value
			continue
		}
		kept = append(kept, e)
	}
	if idShort == "" {
		smec.IDShort = parentIDShort
		return smec
	}
	return &basyx.SubmodelElementCollection{
		Referable: basyx.Referable{
			IDShort:            idShort,
			Description:        smec.Description,
			SemanticID:         smec.SemanticID,
			DataSpecifications: smec.DataSpecifications,
		},
		Value: kept,
	}
}
