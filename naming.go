package aaspydantic

import (
	"strings"
	"unicode"
)

// Case-convention fallbacks, used only when no data specification record
// governs a node. The primary path is always the record lookup in tags.go.

// ClassCase converts an identifier to the schema class convention
// (capitalized words, no separators): "device_config" -> "DeviceConfig".
func ClassCase(identifier string) string {
	var b strings.Builder
	upper := true
	for _, r := range identifier {
		switch {
		case r == '_' || r == '-' || r == ' ':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AttributeCase converts an identifier to the schema attribute convention
// (lowercase with underscore separators): "DeviceConfig" -> "device_config",
// "HTTPServer" -> "http_server".
func AttributeCase(identifier string) string {
	var b strings.Builder
	runes := []rune(identifier)
	for i, r := range runes {
		if r == '-' || r == ' ' {
			b.WriteRune('_')
			continue
		}
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' && runes[i-1] != '-' && runes[i-1] != ' ' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || nextLower {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
