package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const MoneyScale = 2

var ErrMalformedAmount = errors.New("amount is not a valid number")

// ParseAmount accepts a JSON number or a JSON string holding a number.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, ErrMalformedAmount
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, ErrMalformedAmount
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, ErrMalformedAmount
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrMalformedAmount
	}
	return amount, nil
}

// RoundMoney rounds half-to-even at cent precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyScale)
}

func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}
