package export

import (
	"fmt"
	"io"

	"retail-pos/internal/core"
	"retail-pos/web/templates/layouts"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "BaoCao"
	branchSheet = "TheoChiNhanh"
)

// WriteReportXLSX writes report as an Excel workbook: one sheet with the order
// rows and a total row, one with the per-branch subtotals.
func WriteReportXLSX(w io.Writer, report *core.SalesReport, meta layouts.PrintLayoutData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}
	if _, err := f.NewSheet(branchSheet); err != nil {
		return fmt.Errorf("failed to create branch sheet: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	title := fmt.Sprintf("%s - BÁO CÁO DOANH THU (%s - %s)", meta.StoreName, FormatDate(report.Filter.From), FormatDate(report.Filter.To))
	rows := [][]any{
		{title},
		{"STT", "Ngày lập", "Chi nhánh", "Tổng tiền"},
	}
	for i, o := range report.Orders {
		rows = append(rows, []any{i + 1, FormatDate(o.Date), o.Branch, o.Total.InexactFloat64()})
	}
	rows = append(rows, []any{"TỔNG CỘNG", "", "", report.Total.InexactFloat64()})

	if err := setRows(f, reportSheet, rows); err != nil {
		return err
	}
	last := len(rows)
	if err := f.SetCellStyle(reportSheet, "A2", "D2", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetCellStyle(reportSheet, "D3", fmt.Sprintf("D%d", last), money); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}
	_ = f.SetColWidth(reportSheet, "B", "C", 22)
	_ = f.SetColWidth(reportSheet, "D", "D", 18)

	branchRows := [][]any{{"Chi nhánh", "Số hóa đơn", "Tổng tiền"}}
	for _, bt := range report.ByBranch {
		branchRows = append(branchRows, []any{bt.Branch, bt.Count, bt.Total.InexactFloat64()})
	}
	if err := setRows(f, branchSheet, branchRows); err != nil {
		return err
	}
	_ = f.SetColWidth(branchSheet, "A", "A", 26)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
