package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"retail-pos/internal/core"
	"retail-pos/web/templates/layouts"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *core.SalesReport {
	return &core.SalesReport{
		Filter: core.ReportFilter{From: "2025-01-01", To: "2025-01-31", Branch: ""},
		Orders: []core.Order{
			{OrderCode: "20250115-001", Date: "2025-01-15", Branch: "Chi nhánh Quận 1", Total: decimal.NewFromInt(1200000)},
			{OrderCode: "20250116-001", Date: "2025-01-16", Branch: "Chi nhánh <Thủ Đức>", Total: decimal.NewFromInt(250000)},
		},
		Count: 2,
		Total: decimal.NewFromInt(1450000),
		ByBranch: []core.BranchTotal{
			{Branch: "Chi nhánh <Thủ Đức>", Count: 1, Total: decimal.NewFromInt(250000)},
			{Branch: "Chi nhánh Quận 1", Count: 1, Total: decimal.NewFromInt(1200000)},
		},
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-01-15"); got != "15-01-2025" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate("not a date"); got != "not a date" {
		t.Errorf("FormatDate should pass through unparsable values, got %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{1200000, "1.200.000"},
		{250000, "250.000"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatAmount(decimal.NewFromInt(tt.in)); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatCurrency(decimal.NewFromInt(5000)); got != "5.000đ" {
		t.Errorf("FormatCurrency = %q", got)
	}
}

func TestReportFileName(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	if got := ReportFileName(now, "xlsx"); got != "BaoCao_20250115_0930.xlsx" {
		t.Errorf("ReportFileName = %q", got)
	}
}

func TestRenderReportHTML(t *testing.T) {
	var buf bytes.Buffer
	meta := layouts.PrintLayoutData{StoreName: "KHO ĐÔNG ALIBABA", GeneratedDate: "31-01-2025", GeneratedTime: "18:00"}
	if err := RenderReportHTML(&buf, sampleReport(), meta); err != nil {
		t.Fatalf("RenderReportHTML: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"KHO ĐÔNG ALIBABA",
		"Từ ngày: 01-01-2025",
		"15-01-2025",
		"1.200.000đ",
		"TỔNG CỘNG",
		"1.450.000đ",
		"Chi nhánh &lt;Thủ Đức&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(html, "Không có hóa đơn") {
		t.Error("non-empty report should not show the empty notice")
	}
}

func TestRenderReportHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	report := &core.SalesReport{Orders: []core.Order{}, Total: decimal.Zero}
	if err := RenderReportHTML(&buf, report, layouts.PrintLayoutData{}); err != nil {
		t.Fatalf("RenderReportHTML: %v", err)
	}
	if !strings.Contains(buf.String(), "Không có hóa đơn nào trong khoảng thời gian này") {
		t.Error("empty report should show the no-invoices notice")
	}
	if strings.Contains(buf.String(), "TỔNG CỘNG") {
		t.Error("empty report should not render a total row")
	}
}

func TestWriteReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReportXLSX(&buf, sampleReport(), layouts.PrintLayoutData{StoreName: "KHO"}); err != nil {
		t.Fatalf("WriteReportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected title, header, 2 orders and total; got %d rows", len(rows))
	}
	if rows[1][0] != "STT" || rows[2][1] != "15-01-2025" || rows[2][3] != "1200000" {
		t.Errorf("unexpected rows: %v", rows)
	}
	if rows[4][0] != "TỔNG CỘNG" || rows[4][3] != "1450000" {
		t.Errorf("total row = %v", rows[4])
	}

	branches, err := f.GetRows(branchSheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", branchSheet, err)
	}
	if len(branches) != 3 {
		t.Errorf("branch rows = %v", branches)
	}
}
