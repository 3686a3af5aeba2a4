// Package format renders money and hours identically for every view.
package format

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "$"

// HoursPlaceholder is shown for zero or missing hours.
const HoursPlaceholder = "-"

// round rounds half away from zero to hundredths. Values go through their
// shortest decimal form first, so 12.345 rounds to 12.35. NaN and the
// infinities render as zero.
func round(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

// Currency formats an amount as $1,234.57.
func Currency(amount float64) string {
	d := round(amount)
	negative := d.IsNegative()
	d = d.Abs()

	_, fracPart, _ := strings.Cut(d.StringFixed(2), ".")
	result := CurrencySymbol + humanize.Comma(d.IntPart()) + "." + fracPart
	if negative {
		result = "-" + result
	}
	return result
}

// Hours formats an hour count rounded to hundredths without trailing zeros
// (3.5, 2.25), or "-" when it rounds to zero.
func Hours(hours float64) string {
	d := round(hours)
	if d.IsZero() {
		return HoursPlaceholder
	}
	return d.String()
}

// Count formats an item count: whole numbers without decimals, fractions
// rounded to hundredths.
func Count(count float64) string {
	return round(count).String()
}
