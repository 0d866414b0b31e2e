package core

import (
	"context"
	"fmt"
	"strings"

	"retail-pos/internal/sheets"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductInput is the payload for adding or updating a product.
// Price is a pointer so that a missing price can be told apart from zero.
type ProductInput struct {
	Name  string
	Unit  string
	Price *decimal.Decimal
}

// CatalogService manages the product catalog and the branch list.
type CatalogService interface {
	// ListProducts returns every product. When the store cannot be read the
	// fixed fallback catalog is returned, marked degraded.
	ListProducts(ctx context.Context) Result[[]Product]

	// AddProduct appends a product row. Name, unit and price are required;
	// a zero price is valid.
	AddProduct(ctx context.Context, in ProductInput) error

	// UpdateProduct overwrites the product at position id.
	UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error)

	// DeleteProduct removes the product at position id. Every later product
	// moves up one position.
	DeleteProduct(ctx context.Context, id int) error

	// ListBranches returns the non-blank branch names in sheet order.
	ListBranches(ctx context.Context) Result[[]Branch]
}

type catalogService struct {
	gw     sheets.Gateway
	layout Layout
	log    zerolog.Logger
}

// NewCatalogService constructs a CatalogService over gw.
func NewCatalogService(gw sheets.Gateway, layout Layout, log zerolog.Logger) CatalogService {
	return &catalogService{gw: gw, layout: layout, log: log}
}

func (s *catalogService) ListProducts(ctx context.Context) Result[[]Product] {
	rows, err := s.gw.Read(ctx, s.layout.productRange())
	if err != nil {
		s.log.Warn().Err(err).Msg("product read failed, serving fallback catalog")
		return degraded(fallbackProducts(), FallbackNotice)
	}

	products := make([]Product, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		products = append(products, Product{
			ID:    i,
			Name:  cell(row, 0),
			Unit:  cell(row, 1),
			Price: cellDecimal(row, 2),
		})
	}
	return fresh(products)
}

func (s *catalogService) AddProduct(ctx context.Context, in ProductInput) error {
	name, unit, price, err := validateProduct(in)
	if err != nil {
		return err
	}

	row := []any{name, unit, number(price)}
	if err := s.gw.Append(ctx, s.layout.productRange(), [][]any{row}, sheets.Raw); err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}
	return nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error) {
	name, unit, price, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkPosition(ctx, id); err != nil {
		return nil, err
	}

	row := []any{name, unit, number(price)}
	if err := s.gw.Update(ctx, s.layout.productRow(id), [][]any{row}, sheets.Raw); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return &Product{ID: id, Name: name, Unit: unit, Price: price}, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.checkPosition(ctx, id); err != nil {
		return err
	}
	// Data row id sits at 0-based index id because the header is index 0.
	if err := s.gw.DeleteRows(ctx, s.layout.ProductSheet, id, id+1); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// checkPosition confirms that id addresses an existing data row.
func (s *catalogService) checkPosition(ctx context.Context, id int) error {
	if id < 1 {
		return invalid("Invalid product ID", map[string]any{"id": id})
	}
	rows, err := s.gw.Read(ctx, s.layout.productRange())
	if err != nil {
		return fmt.Errorf("failed to read products: %w", err)
	}
	if id > len(rows)-1 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *catalogService) ListBranches(ctx context.Context) Result[[]Branch] {
	rows, err := s.gw.Read(ctx, s.layout.branchRange())
	if err != nil {
		s.log.Warn().Err(err).Msg("branch read failed, serving fallback branches")
		return degraded(fallbackBranches(), FallbackNotice)
	}

	var branches []Branch
	for _, row := range rows {
		for _, c := range row {
			name := strings.TrimSpace(c)
			if name == "" {
				continue
			}
			branches = append(branches, Branch{ID: len(branches) + 1, Name: name})
		}
	}
	if branches == nil {
		branches = []Branch{}
	}
	return fresh(branches)
}

func validateProduct(in ProductInput) (name, unit string, price decimal.Decimal, err error) {
	name = strings.TrimSpace(in.Name)
	unit = strings.TrimSpace(in.Unit)
	received := map[string]any{"name": in.Name, "unit": in.Unit, "price": in.Price}

	if name == "" || unit == "" || in.Price == nil {
		return "", "", decimal.Zero, invalid("Missing required fields", received)
	}
	if in.Price.IsNegative() {
		return "", "", decimal.Zero, invalid("Price must not be negative", received)
	}
	return name, unit, *in.Price, nil
}
