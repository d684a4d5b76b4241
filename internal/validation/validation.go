package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/phedde/luhn-algorithm"
	"github.com/velnyk/cafepos/internal/models"
)

const (
	maxNotesLength = 500
	minTotalAmount = 0.01
	maxTotalAmount = 100000.00

	minItemNameLength    = 2
	maxItemNameLength    = 50
	maxDescriptionLength = 255
	minItemPrice         = 0.01
	maxItemPrice         = 10000.00
	maxCalories          = 10000

	maxCategoryNameLength = 50

	minPasswordLength = 6
	maxPasswordLength = 20
	maxEmailLength    = 100

	maxCardNumberLength = 19
)

var (
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	cardNumberPattern = regexp.MustCompile(`^\d+$`)
)

// ValidateOrder checks an assembled order and returns the full itemized
// list of reasons it is invalid. An empty slice means the order is valid.
func ValidateOrder(order *models.Order) []string {
	var reasons []string

	if order.OrderDate.IsZero() {
		reasons = append(reasons, "order date is required")
	} else if order.OrderDate.After(time.Now()) {
		reasons = append(reasons, "order date cannot be in the future")
	}

	if order.TotalAmount < minTotalAmount {
		reasons = append(reasons, fmt.Sprintf("total amount (%.2f) must be at least %.2f", order.TotalAmount, minTotalAmount))
	}
	if order.TotalAmount > maxTotalAmount {
		reasons = append(reasons, fmt.Sprintf("total amount (%.2f) cannot exceed %.2f", order.TotalAmount, maxTotalAmount))
	}

	if !models.ValidStatus(order.Status) {
		reasons = append(reasons, "order status is unknown")
	}

	if n := len([]rune(order.Notes)); n > maxNotesLength {
		reasons = append(reasons, fmt.Sprintf("notes (%d characters) cannot exceed %d characters", n, maxNotesLength))
	}

	return reasons
}

// ValidateCartLine checks a single cart line before it is consumed by an order.
func ValidateCartLine(line *models.CartLine) []string {
	var reasons []string

	if line.UserID == uuid.Nil {
		reasons = append(reasons, "user id is required")
	}
	if line.ItemID == uuid.Nil {
		reasons = append(reasons, "item id is required")
	}
	if line.Quantity <= 0 {
		reasons = append(reasons, "quantity must be positive")
	}
	if line.Subtotal < 0 {
		reasons = append(reasons, "subtotal cannot be negative")
	}

	return reasons
}

// ValidateUsername reports whether username is acceptable.
func ValidateUsername(username string) bool {
	return username != ""
}

// ValidatePassword checks password length and character classes:
// at least one digit, one lower and one upper case letter.
func ValidatePassword(password string) bool {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return false
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}

// ValidateEmail reports whether email is acceptable.
func ValidateEmail(email string) bool {
	return email != "" && len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// ValidateCategory checks a menu category.
func ValidateCategory(category *models.Category) []string {
	var reasons []string
	if category.Name == "" {
		reasons = append(reasons, "category name is required")
	}
	if len([]rune(category.Name)) > maxCategoryNameLength {
		reasons = append(reasons, fmt.Sprintf("category name cannot exceed %d characters", maxCategoryNameLength))
	}
	return reasons
}

// ValidateMenuItem checks a menu item.
func ValidateMenuItem(item *models.MenuItem) []string {
	var reasons []string

	nameLen := len([]rune(item.Name))
	switch {
	case item.Name == "":
		reasons = append(reasons, "name is required")
	case nameLen < minItemNameLength:
		reasons = append(reasons, fmt.Sprintf("name %q must contain at least %d characters", item.Name, minItemNameLength))
	case nameLen > maxItemNameLength:
		reasons = append(reasons, fmt.Sprintf("name %q cannot exceed %d characters", item.Name, maxItemNameLength))
	}
	if item.Name != "" && !itemNameValid(item.Name) {
		reasons = append(reasons, fmt.Sprintf("name %q may contain only letters, spaces and hyphens", item.Name))
	}

	if len([]rune(item.Description)) > maxDescriptionLength {
		reasons = append(reasons, fmt.Sprintf("description (%d characters) cannot exceed %d characters", len([]rune(item.Description)), maxDescriptionLength))
	}

	if item.Price < minItemPrice {
		reasons = append(reasons, fmt.Sprintf("price (%.2f) must be at least %.2f", item.Price, minItemPrice))
	}
	if item.Price > maxItemPrice {
		reasons = append(reasons, fmt.Sprintf("price (%.2f) cannot exceed %.2f", item.Price, maxItemPrice))
	}

	if item.Calories != nil && (*item.Calories < 0 || *item.Calories > maxCalories) {
		reasons = append(reasons, fmt.Sprintf("calories (%d) must be between 0 and %d", *item.Calories, maxCalories))
	}

	return reasons
}

func itemNameValid(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return false
		}
	}
	return true
}

// ValidateCardNumber checks that a loyalty card number is all digits
// and passes the Luhn checksum.
func ValidateCardNumber(cardNumber string) error {
	if cardNumber == "" || len(cardNumber) > maxCardNumberLength {
		return models.ErrInvalidCardNumber
	}
	if !cardNumberPattern.MatchString(cardNumber) {
		return models.ErrInvalidCardNumber
	}
	num, err := strconv.ParseInt(cardNumber, 10, 64)
	if err != nil {
		return models.ErrInvalidCardNumber
	}
	if !luhn.IsValid(num) {
		return models.ErrInvalidCardNumber
	}
	return nil
}
