package i18n

import (
	"strings"
)

// Language codes supported by the API.
const (
	LangEnglish = "en"
	LangAmharic = "am"
	LangOromo   = "om"

	DefaultLanguage = LangEnglish
)

// Dictionary - вложенный словарь переводов одного языка.
// Значение узла: string (лист) или Dictionary (ветка).
type Dictionary map[string]interface{}

// Bundle держит словари всех языков. Никаких module-level синглтонов:
// бандл создается при старте и передается явно (в middleware/handlers).
type Bundle struct {
	defaultLang string
	dicts       map[string]Dictionary
}

// NewBundle создает бандл со встроенными словарями.
func NewBundle() *Bundle {
	return &Bundle{
		defaultLang: DefaultLanguage,
		dicts: map[string]Dictionary{
			LangEnglish: dictEnglish,
			LangAmharic: dictAmharic,
			LangOromo:   dictOromo,
		},
	}
}

// Languages возвращает поддерживаемые коды языков.
func (b *Bundle) Languages() []string {
	return []string{LangEnglish, LangAmharic, LangOromo}
}

// IsSupported проверяет код языка.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.dicts[lang]
	return ok
}

// T ищет перевод по dot-пути ("nav.login") в словаре lang.
// Если ключа нет - падает на словарь языка по умолчанию по тому же
// пути; если и там нет - возвращает сам ключ.
func (b *Bundle) T(lang, key string) string {
	if val, ok := lookup(b.dicts[lang], key); ok {
		return val
	}
	if lang != b.defaultLang {
		if val, ok := lookup(b.dicts[b.defaultLang], key); ok {
			return val
		}
	}
	return key
}

// lookup спускается по сегментам dot-пути.
func lookup(dict Dictionary, key string) (string, bool) {
	if dict == nil {
		return "", false
	}

	segments := strings.Split(key, ".")
	current := dict

	for i, segment := range segments {
		node, ok := current[segment]
		if !ok {
			return "", false
		}

		if i == len(segments)-1 {
			leaf, isLeaf := node.(string)
			return leaf, isLeaf
		}

		branch, isBranch := node.(Dictionary)
		if !isBranch {
			return "", false
		}
		current = branch
	}

	return "", false
}
