package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateAndFallback(t *testing.T) {
	b := NewBundle()

	// Прямое попадание
	assert.Equal(t, "Explore", b.T(LangEnglish, "nav.explore"))
	assert.Equal(t, "አስስ", b.T(LangAmharic, "nav.explore"))

	// Ключ отсутствует в am -> английский fallback по тому же пути
	assert.Equal(t, "Log in", b.T(LangAmharic, "nav.login"))

	// Нет нигде -> сырой ключ
	assert.Equal(t, "nav.missing", b.T(LangEnglish, "nav.missing"))
	assert.Equal(t, "totally.unknown.path", b.T(LangOromo, "totally.unknown.path"))

	// Путь упирается в ветку, а не в лист
	assert.Equal(t, "booking.status", b.T(LangEnglish, "booking.status"))

	// Неизвестный язык ведет себя как язык по умолчанию
	assert.Equal(t, "Log in", b.T("fr", "nav.login"))
}

func TestCurrencyConvert(t *testing.T) {
	f := NewCurrencyFormatter()

	got, err := f.Convert(1000, CurrencyUSD)
	require.NoError(t, err)
	assert.InDelta(t, 17.5, got, 0.0001)

	got, err = f.Convert(500, CurrencyETB)
	require.NoError(t, err)
	assert.InDelta(t, 500, got, 0.0001)

	_, err = f.Convert(100, "JPY")
	assert.Error(t, err)

	// Convert и ToBase - взаимно обратные
	base, err := f.ToBase(17.5, CurrencyUSD)
	require.NoError(t, err)
	assert.InDelta(t, 1000, base, 0.0001)
}

func TestCurrencyFormat(t *testing.T) {
	f := NewCurrencyFormatter()

	got, err := f.Format(100000, CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, "$1,750", got, "grouping separators, zero decimals")

	got, err = f.Format(1500, CurrencyETB)
	require.NoError(t, err)
	assert.Equal(t, "Br1,500", got)

	_, err = f.Format(100, "KZT")
	assert.Error(t, err)
}

func TestLocalizer(t *testing.T) {
	b := NewBundle()
	f := NewCurrencyFormatter()

	loc := NewLocalizer(b, f, "am", "USD")
	assert.Equal(t, "am", loc.Lang)
	assert.Equal(t, "ተረጋግጧል", loc.T("booking.status.confirmed"))
	assert.Equal(t, "$35", loc.FormatPrice(2000))

	// Неподдерживаемые значения нормализуются к дефолтам
	loc = NewLocalizer(b, f, "fr", "KZT")
	assert.Equal(t, DefaultLanguage, loc.Lang)
	assert.Equal(t, BaseCurrency, loc.Currency)

	// Context round-trip
	ctx := IntoContext(context.Background(), loc)
	assert.Same(t, loc, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
