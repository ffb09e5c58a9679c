// Package fx пересчитывает суммы из USD в локальную валюту пользователя
// по фиксированным приближённым курсам.
package fx

import (
	"math"
	"strings"
)

// Приближённые курсы локальных валют за 1 USD.
var rates = map[string]float64{
	"KES": 130,
	"NGN": 1500,
	"ZAR": 18.5,
	"GHS": 14.0,
}

// LocalAmount — сумма в локальной валюте.
type LocalAmount struct {
	Currency string
	Amount   float64
}

// ConvertFromUSD возвращает эквивалент amountUSD в валюте страны
// пользователя. Для неизвестной или пустой страны возвращается false.
func ConvertFromUSD(country string, amountUSD float64) (LocalAmount, bool) {
	switch strings.ToUpper(strings.TrimSpace(country)) {
	case "KE", "KENYA":
		return LocalAmount{Currency: "KES", Amount: math.Round(amountUSD * rates["KES"])}, true
	case "NG", "NIGERIA":
		return LocalAmount{Currency: "NGN", Amount: math.Round(amountUSD * rates["NGN"])}, true
	case "ZA", "SOUTH AFRICA":
		return LocalAmount{Currency: "ZAR", Amount: round2(amountUSD * rates["ZAR"])}, true
	case "GH", "GHANA":
		return LocalAmount{Currency: "GHS", Amount: round2(amountUSD * rates["GHS"])}, true
	default:
		return LocalAmount{}, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
