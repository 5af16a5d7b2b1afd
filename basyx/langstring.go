package basyx

// LangString is a single language-tagged text entry.
type LangString struct {
	Language string
	Text     string
}

// LangStringSet is an ordered list of language-tagged texts. Order follows the
// source document; the first entry is a meaningful fallback position, so the
// set must never be rebuilt from an unordered map.
type LangStringSet []LangString

// Get returns the text for the given language tag and whether it is present.
func (ls LangStringSet) Get(lang string) (string, bool) {
	for _, e := range ls {
		if e.Language == lang {
			return e.Text, true
		}
	}
	return "", false
}

// Set replaces the entry for lang or appends a new one, preserving order.
func (ls LangStringSet) Set(lang, text string) LangStringSet {
	for i, e := range ls {
		if e.Language == lang {
			ls[i].Text = text
			return ls
		}
	}
	return append(ls, LangString{Language: lang, Text: text})
}
