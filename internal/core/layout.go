package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Layout names the sheets that hold each table. Column layouts are fixed:
//
//	Products: name, unit, price
//	branches: column B from row 2
//	summary:  code, date, branch, total
//	detail:   code, date, branch, product, unit, quantity, price, line total, note
type Layout struct {
	ProductSheet string
	BranchSheet  string
	SummarySheet string
	DetailSheet  string
}

// DefaultLayout is the spreadsheet layout used by the store.
var DefaultLayout = Layout{
	ProductSheet: "Products",
	BranchSheet:  "chinhanh",
	SummarySheet: "dshoadon",
	DetailSheet:  "Sales",
}

func (l Layout) productRange() string { return l.ProductSheet + "!A:C" }
func (l Layout) branchRange() string { return l.BranchSheet + "!B2:B1000" }
func (l Layout) summaryRange() string { return l.SummarySheet + "!A:D" }
func (l Layout) detailRange() string { return l.DetailSheet + "!A:I" }
func (l Layout) orderCodeRange() string { return l.DetailSheet + "!A:A" }
func (l Layout) productRow(id int) string { return fmt.Sprintf("%s!A%d:C%d", l.ProductSheet, id+1, id+1) }

// Headers returns the header row of every table, keyed by sheet name. It is
// used to initialise an empty local workbook.
func (l Layout) Headers() map[string][]string {
	return map[string][]string{
		l.ProductSheet: {"Tên sản phẩm", "Đơn vị tính", "Đơn giá"},
		l.BranchSheet:  {"STT", "Tên chi nhánh"},
		l.SummarySheet: {"Mã đơn hàng", "Ngày lập", "Chi nhánh", "Tổng tiền"},
		l.DetailSheet: {"Mã đơn hàng", "Ngày lập", "Chi nhánh", "Sản phẩm", "Đơn vị tính",
			"Số lượng", "Đơn giá", "Thành tiền", "Ghi chú"},
	}
}

// cell returns row[i] trimmed, or "" when the row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// cellDecimal parses row[i] as a number; blank or unparsable cells are zero.
func cellDecimal(row []string, i int) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(cell(row, i), ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

const dateLayout = "2006-01-02"

// sheetDateLayouts are the text forms a date cell may hold. Day comes before
// month, as the sheet's vi-VN locale writes it.
var sheetDateLayouts = []string{dateLayout, "2006/1/2", "2/1/2006", "2-1-2006"}

// maxDateSerial is the spreadsheet serial of 9999-12-31.
const maxDateSerial = 2958465

// normalizeDate rewrites a date cell as YYYY-MM-DD. The cell may be a
// spreadsheet date serial or text in one of sheetDateLayouts. Values that do
// not parse are returned unchanged.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 || serial > maxDateSerial {
			return s
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return s
		}
		return t.Format(dateLayout)
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return s
}

// parseDate validates a YYYY-MM-DD calendar date.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
