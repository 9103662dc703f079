package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var jaPrinter = message.NewPrinter(language.Japanese)

// FormatMinutes renders minutes as H:MM.
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign, minutes = "-", -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

// FormatYen renders a whole yen amount with thousands separators, e.g. 12,345円.
func FormatYen(amount int64) string {
	return jaPrinter.Sprintf("%d円", amount)
}

// RoundYen rounds half away from zero to whole yen.
func RoundYen(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
