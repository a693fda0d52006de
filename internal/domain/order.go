package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the side of the book an order rests on.
type Side string

const (
	SideBid   Side = "BID"
	SideOffer Side = "OFFER"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideBid || s == SideOffer
}

// ParseSide converts a side token into a Side.
// Accepts "BID"/"B"/"BUY" and "OFFER"/"O"/"SELL", case-insensitive.
func ParseSide(token string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "BID", "B", "BUY":
		return SideBid, nil
	case "OFFER", "O", "SELL":
		return SideOffer, nil
	}
	return "", fmt.Errorf("%w: unknown order side %q", ErrInvalidArgument, token)
}

// UnmarshalText lets config files spell sides with any accepted token.
func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// Order is a resting limit order.
// It is a value: changing the size produces a new Order.
type Order struct {
	ID    uint64          `json:"id" yaml:"id"`
	Price decimal.Decimal `json:"price" yaml:"price"`
	Side  Side            `json:"side" yaml:"side"`
	Size  int64           `json:"size" yaml:"size"`
}

// WithSize returns a copy of the order carrying the given size.
func (o Order) WithSize(size int64) Order {
	o.Size = size
	return o
}

// Validate checks the fields the book depends on.
func (o Order) Validate() error {
	if !o.Side.Valid() {
		return fmt.Errorf("%w: unknown order side %q", ErrInvalidArgument, string(o.Side))
	}
	if o.Size < 0 {
		return fmt.Errorf("%w: order %d has negative size %d", ErrInvalidArgument, o.ID, o.Size)
	}
	return nil
}
