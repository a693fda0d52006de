package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		token string
		want  Side
	}{
		{"BID", SideBid},
		{"b", SideBid},
		{" buy ", SideBid},
		{"OFFER", SideOffer},
		{"o", SideOffer},
		{"Sell", SideOffer},
	}

	for _, tt := range tests {
		got, err := ParseSide(tt.token)
		if err != nil {
			t.Errorf("ParseSide(%q) unexpected error: %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSide(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}

	if _, err := ParseSide("X"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseSide(X) error = %v, want ErrInvalidArgument", err)
	}
}

func TestOrder_Validate(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		o := Order{ID: 1, Price: decimal.NewFromInt(100), Side: SideBid, Size: 0}
		if err := o.Validate(); err != nil {
			t.Errorf("Expected zero-size bid to be valid, got %v", err)
		}
	})

	t.Run("unknown side", func(t *testing.T) {
		o := Order{ID: 1, Price: decimal.NewFromInt(100), Side: Side("X"), Size: 10}
		if err := o.Validate(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("negative size", func(t *testing.T) {
		o := Order{ID: 1, Price: decimal.NewFromInt(100), Side: SideOffer, Size: -1}
		if err := o.Validate(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestOrder_WithSize(t *testing.T) {
	orig := Order{ID: 2, Price: decimal.NewFromInt(100), Side: SideBid, Size: 2000}
	updated := orig.WithSize(3000)

	if orig.Size != 2000 {
		t.Errorf("Original order must not change, got size %d", orig.Size)
	}
	if updated.Size != 3000 || updated.ID != 2 || updated.Side != SideBid || !updated.Price.Equal(orig.Price) {
		t.Errorf("Unexpected updated order: %+v", updated)
	}
}

func TestOrder_YAML(t *testing.T) {
	src := []byte(`
- {id: 1, price: "100.5", side: B, size: 1000}
- {id: 2, price: 101, side: offer, size: 20}
`)
	var orders []Order
	if err := yaml.Unmarshal(src, &orders); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}
	if orders[0].Side != SideBid || !orders[0].Price.Equal(decimal.RequireFromString("100.5")) {
		t.Errorf("Unexpected first order: %+v", orders[0])
	}
	if orders[1].Side != SideOffer || !orders[1].Price.Equal(decimal.NewFromInt(101)) {
		t.Errorf("Unexpected second order: %+v", orders[1])
	}
}
