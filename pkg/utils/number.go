package utils

import "github.com/shopspring/decimal"

func RoundMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	return d.Round(2)
}
