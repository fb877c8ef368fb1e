package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Точность сравнения денежных сумм (знаков после запятой)
const PriceDigits int32 = 2

var minOfferRatio = decimal.RequireFromString("0.9")

// FloatIsZero сообщает, равно ли значение нулю с точностью digits знаков.
func FloatIsZero(v float64, digits int32) bool {
	return decimal.NewFromFloat(v).Round(digits).IsZero()
}

// FloatCompare округляет a и b до digits знаков и сравнивает: -1, 0 или 1.
func FloatCompare(a, b float64, digits int32) int {
	return decimal.NewFromFloat(a).Round(digits).Cmp(decimal.NewFromFloat(b).Round(digits))
}

// MinimumOfferPrice - 90% от ожидаемой цены
func MinimumOfferPrice(expected float64) float64 {
	f, _ := decimal.NewFromFloat(expected).Mul(minOfferRatio).Float64()
	return f
}

// FormatPrice форматирует сумму как 100,000.00
func FormatPrice(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(PriceDigits)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
