package i18n

import (
	"context"

	"guzo_backend/pkg/contextkeys"
)

// Localizer - request-scoped пара (язык, валюта) поверх Bundle и
// CurrencyFormatter. Кладется в context локали middleware'ом и
// передается дальше явно; глобального состояния нет.
type Localizer struct {
	bundle    *Bundle
	formatter *CurrencyFormatter
	Lang      string
	Currency  string
}

// NewLocalizer нормализует язык/валюту к поддерживаемым значениям.
func NewLocalizer(bundle *Bundle, formatter *CurrencyFormatter, lang, currency string) *Localizer {
	if !bundle.IsSupported(lang) {
		lang = bundle.defaultLang
	}
	if !formatter.IsSupported(currency) {
		currency = BaseCurrency
	}
	return &Localizer{
		bundle:    bundle,
		formatter: formatter,
		Lang:      lang,
		Currency:  currency,
	}
}

// T переводит dot-путь на язык локализатора.
func (l *Localizer) T(key string) string {
	return l.bundle.T(l.Lang, key)
}

// Convert переводит базовую сумму в валюту локализатора.
func (l *Localizer) Convert(baseAmount float64) float64 {
	converted, err := l.formatter.Convert(baseAmount, l.Currency)
	if err != nil {
		return baseAmount
	}
	return converted
}

// FormatPrice рендерит базовую сумму в выбранной валюте.
func (l *Localizer) FormatPrice(baseAmount float64) string {
	formatted, err := l.formatter.Format(baseAmount, l.Currency)
	if err != nil {
		// Валюта локализатора всегда из таблицы, сюда не попадаем
		return ""
	}
	return formatted
}

// IntoContext кладет локализатор в context запроса.
func IntoContext(ctx context.Context, loc *Localizer) context.Context {
	return context.WithValue(ctx, contextkeys.LocaleContextKey, loc)
}

// FromContext достает локализатор; nil если middleware не отработал.
func FromContext(ctx context.Context) *Localizer {
	loc, _ := ctx.Value(contextkeys.LocaleContextKey).(*Localizer)
	return loc
}
