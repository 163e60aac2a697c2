package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"guzo_backend/pkg/apperrors"
)

// Supported currency codes. Base amounts are denominated in ETB.
const (
	CurrencyETB = "ETB"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"

	BaseCurrency = CurrencyETB
)

// CurrencyFormatter конвертирует базовые суммы по статичной таблице
// курсов и форматирует их с символом валюты и локальной группировкой
// разрядов, без десятичных знаков.
type CurrencyFormatter struct {
	rates   map[string]float64
	symbols map[string]string
	locales map[string]language.Tag
}

// NewCurrencyFormatter создает форматтер со статичной таблицей курсов.
func NewCurrencyFormatter() *CurrencyFormatter {
	return &CurrencyFormatter{
		// ETB за единицу: rate переводит базовую сумму в целевую валюту
		rates: map[string]float64{
			CurrencyETB: 1,
			CurrencyUSD: 0.0175,
			CurrencyEUR: 0.0160,
			CurrencyGBP: 0.0138,
		},
		symbols: map[string]string{
			CurrencyETB: "Br",
			CurrencyUSD: "$",
			CurrencyEUR: "€",
			CurrencyGBP: "£",
		},
		locales: map[string]language.Tag{
			CurrencyETB: language.Amharic,
			CurrencyUSD: language.AmericanEnglish,
			CurrencyEUR: language.German,
			CurrencyGBP: language.BritishEnglish,
		},
	}
}

// Currencies возвращает поддерживаемые коды валют.
func (f *CurrencyFormatter) Currencies() []string {
	return []string{CurrencyETB, CurrencyUSD, CurrencyEUR, CurrencyGBP}
}

// IsSupported проверяет код валюты.
func (f *CurrencyFormatter) IsSupported(code string) bool {
	_, ok := f.rates[code]
	return ok
}

// Rate возвращает курс базовой валюты к code.
func (f *CurrencyFormatter) Rate(code string) (float64, error) {
	rate, ok := f.rates[code]
	if !ok {
		return 0, apperrors.ErrUnsupportedCurrency
	}
	return rate, nil
}

// Convert переводит сумму в базовой валюте (ETB) в code.
func (f *CurrencyFormatter) Convert(baseAmount float64, code string) (float64, error) {
	rate, err := f.Rate(code)
	if err != nil {
		return 0, err
	}
	return baseAmount * rate, nil
}

// ToBase переводит сумму из code обратно в базовую валюту.
func (f *CurrencyFormatter) ToBase(amount float64, code string) (float64, error) {
	rate, err := f.Rate(code)
	if err != nil {
		return 0, err
	}
	return amount / rate, nil
}

// Format конвертирует базовую сумму и рендерит строку вида "$1,234".
// Группировка разрядов берется из локали валюты, дробная часть
// отбрасывается округлением.
func (f *CurrencyFormatter) Format(baseAmount float64, code string) (string, error) {
	converted, err := f.Convert(baseAmount, code)
	if err != nil {
		return "", err
	}

	p := message.NewPrinter(f.locales[code])
	formatted := p.Sprint(number.Decimal(converted, number.MaxFractionDigits(0)))

	return f.symbols[code] + formatted, nil
}
