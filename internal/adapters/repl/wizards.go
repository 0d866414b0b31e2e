package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"retail-pos/internal/app"
)

// handleCheckout confirms and submits the session's order. It returns true
// when the order was stored.
func handleCheckout(ctx context.Context, reader *bufio.Reader, out io.Writer, svc app.ApplicationService, s *session) bool {
	if len(s.cart.Lines()) == 0 {
		fmt.Fprintln(out, "Cart is empty. Add products with /add before checking out.")
		return false
	}
	if s.branch == "" {
		fmt.Fprintln(out, "No branch selected. Use /branch first.")
		return false
	}

	code := s.editing
	if code == "" {
		result, err := svc.NextOrderCode(ctx, s.date)
		if err != nil {
			fmt.Fprintf(out, "Failed to generate order code: %v\n", err)
			return false
		}
		printNotice(out, result.Availability)
		code = result.OrderCode
	}

	printCart(out, s)
	fmt.Fprintf(out, "Order code: %s\n", code)
	fmt.Fprint(out, "\nSave this order? (y/n): ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(strings.ToLower(choice))
	if choice != "y" && choice != "yes" {
		fmt.Fprintln(out, "Checkout cancelled.")
		return false
	}

	req := app.OrderRequest{
		OrderCode: code,
		OrderDate: s.date,
		Branch:    s.branch,
		Items:     make([]app.CartItemRequest, 0, len(s.cart.Items)),
	}
	for _, it := range s.cart.Items {
		req.Items = append(req.Items, app.CartItemRequest{
			ProductName:  it.Product.Name,
			ProductUnit:  it.Product.Unit,
			ProductPrice: it.Product.Price,
			Quantity:     it.Quantity,
			Note:         it.Note,
		})
	}

	var (
		result *app.OrderWriteResult
		err    error
	)
	if s.editing != "" {
		req.PreviousCode = s.editing
		result, err = svc.UpdateOrder(ctx, req)
	} else {
		result, err = svc.CreateOrder(ctx, req)
	}
	if err != nil {
		fmt.Fprintf(out, "Order FAILED: %v\n", err)
		return false
	}
	fmt.Fprintf(out, "Order %s SAVED: %d lines, total %s.\n", result.OrderCode, result.Lines, formatMoney(result.Total))
	return true
}
