package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"retail-pos/internal/app"
	"retail-pos/internal/core"

	"github.com/shopspring/decimal"
)

var errExit = errors.New("exit")

// session is the order being composed at the terminal.
type session struct {
	cart   core.Cart
	branch string
	date   string
	// editing is the stored code of the order loaded with /edit; empty for a new order.
	editing string
}

func (s *session) reset(today string) {
	*s = session{branch: s.branch, date: today}
}

// Run starts the interactive order-entry loop. Slash commands manage the
// cart; any other input searches the catalog. It returns when reader is
// exhausted or on /exit.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer) {
	today := time.Now().Format("2006-01-02")
	s := &session{date: today}

	fmt.Fprintln(out, "Retail POS")
	fmt.Fprintln(out, "Type a product name to search, or use /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "products", "p":
			result := svc.ListProducts(ctx, app.ProductQuery{Search: strings.Join(args, " ")})
			printNotice(out, result.Availability)
			printProducts(out, result.Products)

		case "branches":
			result := svc.ListBranches(ctx)
			printNotice(out, result.Availability)
			printBranches(out, result.Branches)

		case "branch", "b":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: /branch <number|name>")
				return nil
			}
			s.branch = resolveBranch(ctx, svc, strings.Join(args, " "))
			fmt.Fprintf(out, "Branch: %s\n", s.branch)

		case "date":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: /date <YYYY-MM-DD>")
				return nil
			}
			if _, err := time.Parse("2006-01-02", args[0]); err != nil {
				fmt.Fprintf(out, "Invalid date: %s\n", args[0])
				return nil
			}
			s.date = args[0]
			fmt.Fprintf(out, "Order date: %s\n", s.date)

		case "add", "a":
			// Usage: /add <product-id> [qty] [note...]
			if len(args) < 1 {
				fmt.Fprintln(out, "Usage: /add <product-id> [qty] [note]")
				return nil
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintf(out, "Invalid product id: %s\n", args[0])
				return nil
			}
			product, ok := findProduct(ctx, svc, id)
			if !ok {
				fmt.Fprintf(out, "No product with id %d.\n", id)
				return nil
			}
			note := ""
			if len(args) > 2 {
				note = strings.Join(args[2:], " ")
			}
			s.cart.Add(product, note)
			if len(args) > 1 {
				qty, err := decimal.NewFromString(args[1])
				if err != nil {
					fmt.Fprintf(out, "Invalid quantity: %s\n", args[1])
					s.cart.Remove(len(s.cart.Items) - 1)
					return nil
				}
				s.cart.UpdateQuantity(len(s.cart.Items)-1, qty)
			}
			printCart(out, s)

		case "qty", "q":
			if len(args) != 2 {
				fmt.Fprintln(out, "Usage: /qty <item#> <quantity>")
				return nil
			}
			qty, err := decimal.NewFromString(args[1])
			if err != nil {
				fmt.Fprintf(out, "Invalid quantity: %s\n", args[1])
				return nil
			}
			if !s.cart.UpdateQuantity(itemIndex(args[0]), qty) {
				fmt.Fprintf(out, "No cart item %s.\n", args[0])
				return nil
			}
			printCart(out, s)

		case "note":
			if len(args) < 1 {
				fmt.Fprintln(out, "Usage: /note <item#> [text]")
				return nil
			}
			if !s.cart.UpdateNote(itemIndex(args[0]), strings.Join(args[1:], " ")) {
				fmt.Fprintf(out, "No cart item %s.\n", args[0])
				return nil
			}
			printCart(out, s)

		case "rm", "remove":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: /rm <item#>")
				return nil
			}
			if !s.cart.Remove(itemIndex(args[0])) {
				fmt.Fprintf(out, "No cart item %s.\n", args[0])
				return nil
			}
			printCart(out, s)

		case "cart", "c":
			printCart(out, s)

		case "clear":
			s.reset(today)
			fmt.Fprintln(out, "Cart cleared.")

		case "orders", "o":
			result := svc.ListOrders(ctx, core.OrderFilter{Search: strings.Join(args, " ")})
			printNotice(out, result.Availability)
			printOrders(out, result.Orders)

		case "edit":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: /edit <order-code>")
				return nil
			}
			if err := loadOrder(ctx, svc, s, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Editing order %s.\n", s.editing)
			printCart(out, s)

		case "checkout", "done":
			if handleCheckout(ctx, reader, out, svc, s) {
				s.reset(today)
			}

		case "help", "h":
			printHelp(out)

		case "exit", "quit", "e":
			return errExit

		default:
			fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Fprint(out, "\n> ")
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if err != nil {
				return
			}
			continue
		}

		if strings.HasPrefix(input, "/") {
			if derr := dispatchSlash(input); derr != nil {
				if derr == errExit {
					fmt.Fprintln(out, "Goodbye!")
					return
				}
				fmt.Fprintf(out, "Error: %v\n", derr)
			}
		} else {
			result := svc.ListProducts(ctx, app.ProductQuery{Search: input})
			printNotice(out, result.Availability)
			printProducts(out, result.Products)
		}
		if err != nil {
			return
		}
	}
}

// itemIndex converts a 1-based item number to a cart index; invalid input
// yields -1, which every Cart method rejects.
func itemIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n - 1
}

func findProduct(ctx context.Context, svc app.ApplicationService, id int) (core.Product, bool) {
	for _, p := range svc.ListProducts(ctx, app.ProductQuery{}).Products {
		if p.ID == id {
			return p, true
		}
	}
	return core.Product{}, false
}

// resolveBranch maps a list number to its branch name; any other input is
// taken as the name itself.
func resolveBranch(ctx context.Context, svc app.ApplicationService, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil {
		for _, b := range svc.ListBranches(ctx).Branches {
			if b.ID == n {
				return b.Name
			}
		}
	}
	return arg
}

// loadOrder replaces the session with the stored order code.
func loadOrder(ctx context.Context, svc app.ApplicationService, s *session, code string) error {
	result, err := svc.InvoiceDetail(ctx, code)
	if err != nil {
		return err
	}
	if len(result.Invoice.Lines) == 0 {
		return fmt.Errorf("order %s has no lines", code)
	}

	var cart core.Cart
	for _, l := range result.Invoice.Lines {
		cart.Items = append(cart.Items, core.CartItem{
			Product:  core.Product{Name: l.Product, Unit: l.Unit, Price: l.Price},
			Quantity: l.Quantity,
			Note:     l.Note,
		})
	}
	first := result.Invoice.Lines[0]
	*s = session{cart: cart, branch: first.Branch, date: first.OrderDate, editing: code}
	return nil
}
