package bridge

// Language selects which edition of the blog to read.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
)

// DefaultLanguage is used when no language is given.
const DefaultLanguage = French

// Languages lists the supported editions by display name.
var Languages = map[string]Language{
	"Français": French,
	"English":  English,
}

// ParseLanguage maps a selector to a Language. Only an exact "en" selects
// English; anything else, including an empty string, selects French.
func ParseLanguage(s string) Language {
	if Language(s) == English {
		return English
	}
	return DefaultLanguage
}

// BaseURL returns the listing page URL for lang.
func BaseURL(lang Language) string {
	if lang == English {
		return englishURL
	}
	return frenchURL
}
