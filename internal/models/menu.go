package models

import "github.com/google/uuid"

// Category is menu category entity
type Category struct {
	ID   uuid.UUID
	Name string
}

// MenuItem is menu item entity
type MenuItem struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	Price       float64
	Calories    *int
	Ingredients string
}
