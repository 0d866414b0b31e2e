// Package sheets is the data gateway to the spreadsheet store. Every read and
// write of products, branches, orders and sale lines goes through a Gateway.
package sheets

import (
	"context"
	"errors"
)

// ErrNoCredentials is returned when the spreadsheet id or service-account
// credentials are missing from the configuration.
var ErrNoCredentials = errors.New("spreadsheet credentials are not configured")

// InputMode controls how written values are interpreted by the store.
type InputMode int

const (
	// Raw stores values exactly as given.
	Raw InputMode = iota
	// UserEntered lets the store parse values as if typed by a user
	// (dates and numbers become typed cells).
	UserEntered
)

// String returns the wire name used by the Sheets API.
func (m InputMode) String() string {
	if m == UserEntered {
		return "USER_ENTERED"
	}
	return "RAW"
}

// Gateway is the narrow interface the domain services use to talk to the store.
// Ranges are A1 notation, e.g. "Products!A:C" or "chinhanh!B2:B1000".
// There is no transactional guarantee across calls.
type Gateway interface {
	// Read returns the cell values of rng as strings. Trailing empty rows and
	// cells are omitted; interior empty rows are returned as empty slices.
	Read(ctx context.Context, rng string) ([][]string, error)

	// Append writes rows after the last non-empty row of the table in rng.
	Append(ctx context.Context, rng string, rows [][]any, mode InputMode) error

	// Update overwrites the cells starting at the top-left corner of rng.
	Update(ctx context.Context, rng string, rows [][]any, mode InputMode) error

	// DeleteRows removes the rows [start, end) of sheet (0-based, header is row 0).
	// Rows below the range shift up.
	DeleteRows(ctx context.Context, sheet string, start, end int) error
}

type unavailable struct {
	err error
}

// Unavailable returns a Gateway that fails every call with err. It stands in
// for the real store when credentials are missing, so reads degrade to
// fallback data and writes fail with a configuration error.
func Unavailable(err error) Gateway {
	if err == nil {
		err = ErrNoCredentials
	}
	return unavailable{err: err}
}

func (u unavailable) Read(context.Context, string) ([][]string, error) { return nil, u.err }

func (u unavailable) Append(context.Context, string, [][]any, InputMode) error { return u.err }

func (u unavailable) Update(context.Context, string, [][]any, InputMode) error { return u.err }

func (u unavailable) DeleteRows(context.Context, string, int, int) error { return u.err }
