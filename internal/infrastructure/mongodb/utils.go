package mongodb

import "github.com/shopspring/decimal"

// Los montos se guardan como string en los documentos para no perder
// precisión decimal; en el dominio siempre son decimal.Decimal.

func decToStr(d decimal.Decimal) string {
	return d.String()
}

func strToDec(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
