package repl

import (
	"fmt"
	"io"
	"strings"

	"retail-pos/internal/app"
	"retail-pos/internal/core"
	"retail-pos/internal/export"

	"github.com/shopspring/decimal"
)

func formatMoney(d decimal.Decimal) string {
	return export.FormatCurrency(d)
}

func printNotice(out io.Writer, a app.Availability) {
	if a.Degraded {
		fmt.Fprintf(out, "! %s\n", a.Notice)
	}
}

func printProducts(out io.Writer, products []core.Product) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 70))
	if len(products) == 0 {
		fmt.Fprintln(out, "  No products found.")
		fmt.Fprintln(out, strings.Repeat("=", 70))
		return
	}
	fmt.Fprintf(out, "  %-4s %-36s %-10s %15s\n", "ID", "NAME", "UNIT", "PRICE")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, p := range products {
		fmt.Fprintf(out, "  %-4d %-36s %-10s %15s\n", p.ID, p.Name, p.Unit, formatMoney(p.Price))
	}
	fmt.Fprintln(out, strings.Repeat("=", 70))
}

func printBranches(out io.Writer, branches []core.Branch) {
	fmt.Fprintln(out)
	for _, b := range branches {
		fmt.Fprintf(out, "  %3d  %s\n", b.ID, b.Name)
	}
}

func printCart(out io.Writer, s *session) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 70))
	title := "NEW ORDER"
	if s.editing != "" {
		title = "EDIT ORDER " + s.editing
	}
	fmt.Fprintf(out, "  %s\n", title)
	fmt.Fprintf(out, "  Date   : %s\n", export.FormatDate(s.date))
	fmt.Fprintf(out, "  Branch : %s\n", orNone(s.branch))
	fmt.Fprintln(out, strings.Repeat("=", 70))
	if len(s.cart.Items) == 0 {
		fmt.Fprintln(out, "  Cart is empty.")
		fmt.Fprintln(out, strings.Repeat("=", 70))
		return
	}
	fmt.Fprintf(out, "  %-3s %-30s %-8s %8s %15s\n", "#", "PRODUCT", "UNIT", "QTY", "AMOUNT")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for i, it := range s.cart.Items {
		fmt.Fprintf(out, "  %-3d %-30s %-8s %8s %15s\n",
			i+1, it.Product.Name, it.Product.Unit, it.Quantity.String(), formatMoney(it.Product.Price.Mul(it.Quantity)))
		if it.Note != "" {
			fmt.Fprintf(out, "      # %s\n", it.Note)
		}
	}
	fmt.Fprintln(out, strings.Repeat("-", 70))
	fmt.Fprintf(out, "  %-52s %15s\n", "TOTAL", formatMoney(s.cart.Total()))
	fmt.Fprintln(out, strings.Repeat("=", 70))
}

func printOrders(out io.Writer, orders []core.Order) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-14s %-12s %-24s %15s\n", "CODE", "DATE", "BRANCH", "TOTAL")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, o := range orders {
		fmt.Fprintf(out, "  %-14s %-12s %-24s %15s\n", o.OrderCode, export.FormatDate(o.Date), o.Branch, formatMoney(o.Total))
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `
Catalog
  <text>                      search products by name or unit
  /products [search]          list products
  /branches                   list branches

Order
  /branch <number|name>       select the branch
  /date <YYYY-MM-DD>          set the order date (default today)
  /add <id> [qty] [note]      add a product to the cart
  /qty <item#> <qty>          change a quantity (0 keeps the item but skips it)
  /note <item#> [text]        set or clear an item note
  /rm <item#>                 remove an item
  /cart                       show the cart
  /clear                      start over
  /checkout                   save the order

Existing orders
  /orders [search]            list recent orders
  /edit <order-code>          load an order into the cart for changes

  /help, /exit`)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
