package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("en-NG"))

var hundred = decimal.NewFromInt(100)

// FormatNaira renders a kobo amount as whole naira with grouping, e.g. ₦30,563.
func FormatNaira(kobo int64) string {
	return FormatNairaDecimal(decimal.NewFromInt(kobo))
}

// FormatNairaDecimal is FormatNaira for fractional kobo amounts.
func FormatNairaDecimal(kobo decimal.Decimal) string {
	naira := kobo.Div(hundred).Round(0).IntPart()
	return "₦" + printer.Sprintf("%d", naira)
}

// FormatNairaPerKg renders a per-kilogram kobo price as ₦1,100/kg.
func FormatNairaPerKg(koboPerKg decimal.Decimal) string {
	if koboPerKg.IsZero() {
		return "₦0/kg"
	}
	return FormatNairaDecimal(koboPerKg) + "/kg"
}
