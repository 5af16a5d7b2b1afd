package aaspydantic

// Package aaspydantic binds typed Go schema structs to the Asset
// Administration Shell metadata tree and back:
//
// - Templates: a schema type becomes a submodel/AAS template whose embedded
//   data specification records carry the type-shape facts (class, attribute,
//   optional, union, immutable, default) the tree cannot express natively.
// - Instances: a populated schema value becomes a submodel/AAS with values;
//   a submodel decodes back into a registered Go struct.
// - Decoding recovers the same facts via first-match record lookup, falling
//   back to case-convention naming when no records exist.
//
// Design policy:
// - Keep the public binding API in the root package; the tree model and its
//   JSON adapter live under basyx/, the CLI under cmd/aasconv.
// - All record lookups are pure; only the shadow list patcher rewrites nodes,
//   arena-style (the caller splices the replacement it returns).
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	tpl, err := aaspydantic.SubmodelTemplateFromType(reflect.TypeOf(DeviceConfig{}))
//	sm, err := aaspydantic.SubmodelFromModel(&cfg)
//
//	aaspydantic.Register[DeviceConfig]()
//	var out DeviceConfig
//	err = aaspydantic.DecodeSubmodel(sm, &out)
