package models

// LocalizedText carries the three portal languages for a single text field.
// The zero value renders as empty strings in every language.
type LocalizedText struct {
	Az string `json:"az"`
	En string `json:"en"`
	Ru string `json:"ru"`
}

func L(az, en, ru string) LocalizedText {
	return LocalizedText{Az: az, En: en, Ru: ru}
}

// Resolve returns the text for lang, falling back to Azerbaijani when the
// requested translation is missing. Azerbaijani is the authoring language.
func (t LocalizedText) Resolve(lang string) string {
	switch lang {
	case "en":
		if t.En != "" {
			return t.En
		}
	case "ru":
		if t.Ru != "" {
			return t.Ru
		}
	}
	return t.Az
}

// NormalizeLang maps an arbitrary language tag to one of the supported codes.
func NormalizeLang(lang string) string {
	switch lang {
	case "en", "en-US", "en-GB":
		return "en"
	case "ru", "ru-RU":
		return "ru"
	default:
		return "az"
	}
}
