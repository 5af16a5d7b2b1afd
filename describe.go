package aaspydantic

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// preferredDescriptionLangs is the fixed language preference of the binding.
// The trailing first-entry fallback is deterministic because LangStringSet
// preserves document order.
var preferredDescriptionLangs = []string{"en", "ger", "de"}

// StrDescription picks a single human-readable string out of a multilingual
// description: "en", then "ger", then "de", then the first entry; an empty
// set yields "".
func StrDescription(ls basyx.LangStringSet) string {
	if len(ls) == 0 {
		return ""
	}
	for _, lang := range preferredDescriptionLangs {
		if v, ok := ls.Get(lang); ok {
			return v
		}
	}
	return ls[0].Text
}

// DescriptionLangStrings converts a typed-model description string into a
// LangStringSet. A string holding a JSON object of language tags maps
// entry-for-entry in document order; any other string becomes the English
// entry. Empty descriptions yield nil.
func DescriptionLangStrings(description string) basyx.LangStringSet {
	if description == "" {
		return nil
	}
	if ls, ok := parseLangStringObject(description); ok {
		return ls
	}
	return basyx.LangStringSet{{Language: "en", Text: description}}
}

// parseLangStringObject decodes a JSON object of string entries while keeping
// the document order of its keys.
func parseLangStringObject(s string) (basyx.LangStringSet, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}
	var out basyx.LangStringSet
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		val, ok := valTok.(string)
		if !ok {
			return nil, false
		}
		out = append(out, basyx.LangString{Language: key, Text: val})
	}
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	return out, true
}
