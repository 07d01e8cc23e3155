package config

const (
	LangEN = "en"
	LangES = "es"
)

func SupportedLanguages() []string {
	return []string{LangEN, LangES}
}

func IsSupportedLanguage(lang string) bool {
	switch lang {
	case LangEN, LangES:
		return true
	default:
		return false
	}
}
