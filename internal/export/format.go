// Package export renders sales reports as printable HTML and as Excel
// workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatDate turns YYYY-MM-DD into DD-MM-YYYY. Other values are returned as is.
func FormatDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02-01-2006")
}

// FormatAmount groups digits the Vietnamese way (1.200.000) with up to three
// fraction digits.
func FormatAmount(d decimal.Decimal) string {
	p := message.NewPrinter(language.Vietnamese)
	return p.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}

// FormatCurrency is FormatAmount with the đồng suffix.
func FormatCurrency(d decimal.Decimal) string {
	return FormatAmount(d) + "đ"
}

// ReportFileName names an exported report after its creation time, e.g.
// BaoCao_20250115_0930.xlsx.
func ReportFileName(now time.Time, ext string) string {
	return fmt.Sprintf("BaoCao_%s.%s", now.Format("20060102_1504"), ext)
}
