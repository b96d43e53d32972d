package model

import (
	"math/rand"
	"time"
)

// Colors is the fixed palette of accent color names an employee can carry.
// Each theme maps these names to its own concrete colors.
var Colors = []string{
	"red",
	"orange",
	"yellow",
	"green",
	"teal",
	"blue",
	"purple",
	"pink",
}

// RandomColor picks a palette color for a newly created employee.
func RandomColor() string {
	return Colors[rand.Intn(len(Colors))]
}

// Employee represents a person tracked for time and pay
type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	HourlyRate float64   `json:"hourly_rate"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
