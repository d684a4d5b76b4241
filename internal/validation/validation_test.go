package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
)

func validOrder() *models.Order {
	table := 3
	return &models.Order{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		OrderDate:   time.Now().Add(-time.Minute),
		TotalAmount: 150.0,
		Status:      models.OrderStatusPending,
		TableNumber: &table,
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(o *models.Order)
		wantReasons int
	}{
		{
			name:        "valid order",
			mutate:      func(o *models.Order) {},
			wantReasons: 0,
		},
		{
			name:        "order date in the future",
			mutate:      func(o *models.Order) { o.OrderDate = time.Now().Add(time.Hour) },
			wantReasons: 1,
		},
		{
			name:        "zero order date",
			mutate:      func(o *models.Order) { o.OrderDate = time.Time{} },
			wantReasons: 1,
		},
		{
			name:        "total amount below minimum",
			mutate:      func(o *models.Order) { o.TotalAmount = 0.0 },
			wantReasons: 1,
		},
		{
			name:        "total amount above maximum",
			mutate:      func(o *models.Order) { o.TotalAmount = 100000.01 },
			wantReasons: 1,
		},
		{
			name:        "unknown status",
			mutate:      func(o *models.Order) { o.Status = "SHIPPED" },
			wantReasons: 1,
		},
		{
			name:        "notes too long",
			mutate:      func(o *models.Order) { o.Notes = strings.Repeat("x", 501) },
			wantReasons: 1,
		},
		{
			name:        "notes length is counted in characters, not bytes",
			mutate:      func(o *models.Order) { o.Notes = strings.Repeat("ї", 500) },
			wantReasons: 0,
		},
		{
			name:        "multi-byte notes above the limit",
			mutate:      func(o *models.Order) { o.Notes = strings.Repeat("ї", 501) },
			wantReasons: 1,
		},
		{
			name: "all reasons are itemized",
			mutate: func(o *models.Order) {
				o.OrderDate = time.Now().Add(time.Hour)
				o.TotalAmount = -1
				o.Notes = strings.Repeat("x", 501)
			},
			wantReasons: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(order)
			reasons := ValidateOrder(order)
			if len(reasons) != tt.wantReasons {
				t.Errorf("ValidateOrder() reasons = %v, want %d", reasons, tt.wantReasons)
			}
		})
	}
}

func TestValidateCartLine(t *testing.T) {
	tests := []struct {
		name    string
		line    models.CartLine
		wantErr bool
	}{
		{
			name: "valid line",
			line: models.CartLine{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				ItemID:   uuid.New(),
				Quantity: 2,
				Subtotal: 99.80,
			},
			wantErr: false,
		},
		{
			name: "zero quantity",
			line: models.CartLine{
				UserID:   uuid.New(),
				ItemID:   uuid.New(),
				Quantity: 0,
				Subtotal: 10,
			},
			wantErr: true,
		},
		{
			name: "negative quantity",
			line: models.CartLine{
				UserID:   uuid.New(),
				ItemID:   uuid.New(),
				Quantity: -1,
				Subtotal: 10,
			},
			wantErr: true,
		},
		{
			name: "negative subtotal",
			line: models.CartLine{
				UserID:   uuid.New(),
				ItemID:   uuid.New(),
				Quantity: 1,
				Subtotal: -0.01,
			},
			wantErr: true,
		},
		{
			name: "missing item id",
			line: models.CartLine{
				UserID:   uuid.New(),
				Quantity: 1,
				Subtotal: 10,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := ValidateCartLine(&tt.line)
			if (len(reasons) > 0) != tt.wantErr {
				t.Errorf("ValidateCartLine() = %v, wantErr %v", reasons, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Passw0rd", true},
		{"Aa1bcd", true},
		{"short", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"Aa1" + strings.Repeat("x", 20), false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"a+b.c-d@mail.co", true},
		{"", false},
		{"no-at-sign", false},
		{strings.Repeat("a", 100) + "@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidateMenuItem(t *testing.T) {
	calories := 250
	tests := []struct {
		name    string
		item    models.MenuItem
		wantErr bool
	}{
		{
			name: "valid item",
			item: models.MenuItem{
				Name:        "Cappuccino",
				Description: "Espresso with steamed milk",
				Price:       64.50,
				Calories:    &calories,
			},
			wantErr: false,
		},
		{
			name:    "one letter name",
			item:    models.MenuItem{Name: "C", Price: 10},
			wantErr: true,
		},
		{
			name:    "name with digits",
			item:    models.MenuItem{Name: "Latte 2", Price: 10},
			wantErr: true,
		},
		{
			name:    "hyphenated name is fine",
			item:    models.MenuItem{Name: "Flat-White", Price: 10},
			wantErr: false,
		},
		{
			name:    "zero price",
			item:    models.MenuItem{Name: "Latte", Price: 0},
			wantErr: true,
		},
		{
			name:    "price above maximum",
			item:    models.MenuItem{Name: "Latte", Price: 10000.01},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := ValidateMenuItem(&tt.item)
			if (len(reasons) > 0) != tt.wantErr {
				t.Errorf("ValidateMenuItem() = %v, wantErr %v", reasons, tt.wantErr)
			}
		})
	}
}

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		number  string
		wantErr bool
	}{
		{"79927398713", false}, // classic Luhn test number
		{"286436514", false},
		{"79927398710", true}, // fails checksum
		{"", true},
		{"12ab34", true},
		{"12345678901234567890", true}, // too long
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			err := ValidateCardNumber(tt.number)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCardNumber(%q) = %v, wantErr %v", tt.number, err, tt.wantErr)
			}
		})
	}
}
