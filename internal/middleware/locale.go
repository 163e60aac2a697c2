package middleware

import (
	"strings"

	"guzo_backend/internal/i18n"

	"github.com/gin-gonic/gin"
)

// LocaleMiddleware резолвит язык и валюту запроса и кладет
// request-scoped Localizer в context. Приоритет: query-параметр,
// затем заголовок, затем дефолт (en / ETB).
func LocaleMiddleware(bundle *i18n.Bundle, formatter *i18n.CurrencyFormatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = primaryLanguage(c.GetHeader("Accept-Language"))
		}

		currency := strings.ToUpper(c.Query("currency"))
		if currency == "" {
			currency = strings.ToUpper(c.GetHeader("X-Currency"))
		}

		loc := i18n.NewLocalizer(bundle, formatter, lang, currency)
		ctx := i18n.IntoContext(c.Request.Context(), loc)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// primaryLanguage выдергивает первый языковой код из Accept-Language
// ("am-ET,am;q=0.9,en;q=0.8" -> "am").
func primaryLanguage(header string) string {
	if header == "" {
		return ""
	}
	first := strings.Split(header, ",")[0]
	first = strings.TrimSpace(strings.Split(first, ";")[0])
	if idx := strings.Index(first, "-"); idx > 0 {
		first = first[:idx]
	}
	return strings.ToLower(first)
}
