package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"retail-pos/internal/app"
	"retail-pos/internal/core"
	"retail-pos/internal/export"
	"retail-pos/web/templates/layouts"

	"github.com/spf13/pflag"
)

const usage = "Available: products, branches, orders, lines, next-code, delete-order, report"

// Run executes a one-shot CLI command, writing its output to out.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}

	switch args[0] {
	case "products", "prod", "p":
		q := app.ProductQuery{}
		if len(args) > 1 {
			q.Search = strings.Join(args[1:], " ")
		}
		result := svc.ListProducts(ctx, q)
		printNotice(out, result.Availability)
		printProducts(out, result.Products)

	case "branches", "br", "b":
		result := svc.ListBranches(ctx)
		printNotice(out, result.Availability)
		for _, b := range result.Branches {
			fmt.Fprintf(out, "  %3d  %s\n", b.ID, b.Name)
		}

	case "orders", "ord", "o":
		fs := pflag.NewFlagSet("orders", pflag.ContinueOnError)
		fs.SetOutput(out)
		search := fs.String("search", "", "substring of order code or branch")
		date := fs.String("date", "", "exact order date (YYYY-MM-DD)")
		branch := fs.String("branch", "", "exact branch name")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		result := svc.ListOrders(ctx, core.OrderFilter{Search: *search, Date: *date, Branch: *branch})
		printNotice(out, result.Availability)
		printOrders(out, result.Orders)

	case "lines", "l":
		if len(args) < 2 {
			return fmt.Errorf("usage: app lines <order-code>")
		}
		result, err := svc.InvoiceDetail(ctx, args[1])
		if err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		printNotice(out, result.Availability)
		printInvoice(out, result.Invoice)

	case "next-code", "code":
		date := time.Now().Format("2006-01-02")
		if len(args) > 1 {
			date = args[1]
		}
		result, err := svc.NextOrderCode(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to generate order code: %w", err)
		}
		printNotice(out, result.Availability)
		fmt.Fprintln(out, result.OrderCode)

	case "delete-order", "del":
		if len(args) < 2 {
			return fmt.Errorf("usage: app delete-order <order-code>")
		}
		result, err := svc.DeleteOrder(ctx, args[1])
		if err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		fmt.Fprintf(out, "Deleted %s (%d rows).\n", result.OrderCode, result.RowsDeleted)

	case "report", "rep", "r":
		return runReport(ctx, svc, args[1:], out)

	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
	return nil
}

func runReport(ctx context.Context, svc app.ApplicationService, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("report", pflag.ContinueOnError)
	fs.SetOutput(out)
	from := fs.String("from", "", "first order date (YYYY-MM-DD)")
	to := fs.String("to", "", "last order date (YYYY-MM-DD)")
	branch := fs.String("branch", "", "only this branch")
	xlsxPath := fs.String("xlsx", "", "also write the report to this .xlsx file")
	storeName := fs.String("store", "", "store name printed on the workbook")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := svc.SalesReport(ctx, core.ReportFilter{From: *from, To: *to, Branch: *branch})
	if err != nil {
		return err
	}
	printNotice(out, result.Availability)
	printReport(out, result.Report)

	if *xlsxPath == "" {
		return nil
	}
	f, err := os.Create(*xlsxPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *xlsxPath, err)
	}
	now := time.Now()
	meta := layouts.PrintLayoutData{
		Title:         "Báo cáo bán hàng",
		StoreName:     *storeName,
		GeneratedDate: now.Format("02-01-2006"),
		GeneratedTime: now.Format("15:04"),
		Notice:        result.Notice,
	}
	if err := export.WriteReportXLSX(f, result.Report, meta); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", *xlsxPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report written to %s\n", *xlsxPath)
	return nil
}

func printNotice(out io.Writer, a app.Availability) {
	if a.Degraded {
		fmt.Fprintf(out, "! %s\n", a.Notice)
	}
}

func printProducts(out io.Writer, products []core.Product) {
	fmt.Fprintf(out, "  %-4s %-36s %-10s %15s\n", "ID", "NAME", "UNIT", "PRICE")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, p := range products {
		fmt.Fprintf(out, "  %-4d %-36s %-10s %15s\n", p.ID, p.Name, p.Unit, export.FormatCurrency(p.Price))
	}
}

func printOrders(out io.Writer, orders []core.Order) {
	fmt.Fprintf(out, "  %-14s %-12s %-24s %15s  %s\n", "CODE", "DATE", "BRANCH", "TOTAL", "STATUS")
	fmt.Fprintln(out, strings.Repeat("-", 84))
	for _, o := range orders {
		fmt.Fprintf(out, "  %-14s %-12s %-24s %15s  %s\n",
			o.OrderCode, export.FormatDate(o.Date), o.Branch, export.FormatCurrency(o.Total), o.Status)
	}
}

func printInvoice(out io.Writer, inv *core.InvoiceDetail) {
	fmt.Fprintf(out, "ORDER %s\n", inv.OrderCode)
	fmt.Fprintf(out, "  %-30s %-8s %8s %14s %15s\n", "PRODUCT", "UNIT", "QTY", "PRICE", "TOTAL")
	fmt.Fprintln(out, strings.Repeat("-", 80))
	for _, l := range inv.Lines {
		fmt.Fprintf(out, "  %-30s %-8s %8s %14s %15s\n",
			l.Product, l.Unit, l.Quantity.String(), export.FormatAmount(l.Price), export.FormatCurrency(l.Total))
		if l.Note != "" {
			fmt.Fprintf(out, "    # %s\n", l.Note)
		}
	}
	fmt.Fprintln(out, strings.Repeat("-", 80))
	fmt.Fprintf(out, "  %-62s %15s\n", "TOTAL", export.FormatCurrency(inv.Total))
}

func printReport(out io.Writer, r *core.SalesReport) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 62))
	fmt.Fprintf(out, "  %-58s\n", "SALES REPORT")
	fmt.Fprintf(out, "  From   : %s\n", orAll(export.FormatDate(r.Filter.From)))
	fmt.Fprintf(out, "  To     : %s\n", orAll(export.FormatDate(r.Filter.To)))
	fmt.Fprintf(out, "  Branch : %s\n", orAll(r.Filter.Branch))
	fmt.Fprintln(out, strings.Repeat("=", 62))
	fmt.Fprintf(out, "  %-4s %-12s %-24s %15s\n", "#", "DATE", "BRANCH", "TOTAL")
	fmt.Fprintln(out, strings.Repeat("-", 62))
	for i, o := range r.Orders {
		fmt.Fprintf(out, "  %-4d %-12s %-24s %15s\n", i+1, export.FormatDate(o.Date), o.Branch, export.FormatCurrency(o.Total))
	}
	fmt.Fprintln(out, strings.Repeat("-", 62))
	for _, b := range r.ByBranch {
		fmt.Fprintf(out, "  %-41s %15s\n", fmt.Sprintf("%s (%d)", b.Branch, b.Count), export.FormatCurrency(b.Total))
	}
	fmt.Fprintln(out, strings.Repeat("=", 62))
	fmt.Fprintf(out, "  %-41s %15s\n", fmt.Sprintf("TOTAL (%d orders)", r.Count), export.FormatCurrency(r.Total))
	fmt.Fprintln(out, strings.Repeat("=", 62))
}

func orAll(s string) string {
	if s == "" {
		return "(all)"
	}
	return s
}
