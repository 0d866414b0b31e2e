package export

import (
	"fmt"
	"html/template"
	"io"

	"retail-pos/internal/core"
	webui "retail-pos/web"
	"retail-pos/web/templates/layouts"
)

var reportTemplate = template.Must(template.ParseFS(webui.Templates, "templates/report_print.html"))

type reportRow struct {
	Index  int
	Date   string
	Branch string
	Total  string
}

type reportView struct {
	layouts.PrintLayoutData
	FromDate string
	ToDate   string
	Branch   string
	Rows     []reportRow
	Total    string
}

// RenderReportHTML writes report as a standalone printable HTML page.
func RenderReportHTML(w io.Writer, report *core.SalesReport, meta layouts.PrintLayoutData) error {
	view := reportView{
		PrintLayoutData: meta,
		FromDate:        FormatDate(report.Filter.From),
		ToDate:          FormatDate(report.Filter.To),
		Branch:          report.Filter.Branch,
		Total:           FormatCurrency(report.Total),
	}
	if view.Title == "" {
		view.Title = "Báo cáo doanh thu"
	}
	for i, o := range report.Orders {
		view.Rows = append(view.Rows, reportRow{
			Index:  i + 1,
			Date:   FormatDate(o.Date),
			Branch: o.Branch,
			Total:  FormatCurrency(o.Total),
		})
	}

	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
