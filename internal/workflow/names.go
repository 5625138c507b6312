package workflow

import (
	"strings"
	"unicode"
)

const (
	jsonExt   = ".json"
	apiSuffix = ".api"
)

// Suffix returns the final ".ext" of name. Leading-dot names and names
// ending in a dot have no suffix.
func Suffix(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// Stem returns name without its Suffix ("foo.api.json" -> "foo.api").
func Stem(name string) string {
	return strings.TrimSuffix(name, Suffix(name))
}

// IsJSONName reports whether name carries the ".json" suffix.
func IsJSONName(name string) bool {
	return Suffix(name) == jsonExt
}

// IsAPIName reports whether the stem of name ends in ".api".
func IsAPIName(name string) bool {
	return strings.HasSuffix(Stem(name), apiSuffix)
}

// CompanionName is the API-form sibling of a UI file: "x.json" -> "x.api.json".
func CompanionName(name string) string {
	return Stem(name) + apiSuffix + jsonExt
}

// ExportName is the destination name used when copying an API graph out.
// Names already of the form "*.api.json" are kept as is.
func ExportName(name string) string {
	if IsJSONName(name) && IsAPIName(name) {
		return name
	}
	return CompanionName(name)
}

// EnsureJSONName appends ".json" unless name already ends with it.
func EnsureJSONName(name string) string {
	if strings.HasSuffix(name, jsonExt) {
		return name
	}
	return name + jsonExt
}

// DisplayTitle turns a file stem into a human title: hyphens become spaces
// and every run of letters is capitalized ("my-flow2x" -> "My Flow2X").
func DisplayTitle(stem string) string {
	return titleCase(strings.ReplaceAll(stem, "-", " "))
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			inWord = true
		default:
			b.WriteRune(r)
			inWord = false
		}
	}
	return b.String()
}
