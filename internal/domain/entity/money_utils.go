package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates and converts a string amount to kopecks.
// Uses a string-based approach so floating point never touches money:
// - no decimal point: appends "00"
// - one digit after the point: appends "0"
// - two digits after the point: drops the point
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// FormatAmount converts kopecks to a decimal string.
// For example 1015 becomes "10.15" and 1000 becomes "10.00".
func FormatAmount(kopecks int64) string {
	isNegative := kopecks < 0
	if isNegative {
		kopecks = -kopecks
	}

	amountStr := fmt.Sprintf("%d", kopecks)
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}

// AmountToDecimal converts kopecks to a decimal value in currency units
func AmountToDecimal(kopecks int64) decimal.Decimal {
	return decimal.New(kopecks, -2)
}

// MulRounded multiplies an amount in kopecks by a rate and rounds the result
// back to whole kopecks using banker's rounding (round half to even). This is
// the single monetary rounding rule used for cashback computation.
func MulRounded(kopecks int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(kopecks).Mul(rate).RoundBank(0).IntPart()
}
