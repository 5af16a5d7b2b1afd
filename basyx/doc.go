// Package basyx holds the in-memory model of the Asset Administration Shell
// metadata tree: identifiable shells and submodels, nested submodel element
// collections, properties, multilingual descriptions, external references and
// embedded data specification records.
//
// The package is deliberately dumb: it stores and serializes the tree and
// knows nothing about typed schema binding. All binding semantics (tag
// vocabulary, naming fallbacks, shadow list wrappers) live in the root
// package.
package basyx
