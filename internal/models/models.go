package models

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek is one of the seven fixed weekday codes used to partition
// training tasks. The zero value is not valid; use ParseDay.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Mo"
	Tuesday   DayOfWeek = "Tu"
	Wednesday DayOfWeek = "We"
	Thursday  DayOfWeek = "Th"
	Friday    DayOfWeek = "Fr"
	Saturday  DayOfWeek = "Sa"
	Sunday    DayOfWeek = "Su"
)

// Days lists all weekdays in display order, Monday first.
var Days = [7]DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayAliases = map[string]DayOfWeek{
	"mo": Monday, "mon": Monday, "monday": Monday,
	"tu": Tuesday, "tue": Tuesday, "tuesday": Tuesday,
	"we": Wednesday, "wed": Wednesday, "wednesday": Wednesday,
	"th": Thursday, "thu": Thursday, "thursday": Thursday,
	"fr": Friday, "fri": Friday, "friday": Friday,
	"sa": Saturday, "sat": Saturday, "saturday": Saturday,
	"su": Sunday, "sun": Sunday, "sunday": Sunday,
}

// ParseDay converts a weekday code or English name into a DayOfWeek.
func ParseDay(s string) (DayOfWeek, error) {
	if d, ok := dayAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown day of week %q", s)
}

// Valid reports whether d is one of the seven canonical weekday codes.
func (d DayOfWeek) Valid() bool {
	for _, known := range Days {
		if d == known {
			return true
		}
	}
	return false
}

// Category classifies a training task. Unknown categories are rejected at
// the boundary; absent input falls back to the default category.
type Category string

const (
	Obedience     Category = "obedience"
	Socialization Category = "socialization"
	Tricks        Category = "tricks"
	Agility       Category = "agility"
	Recall        Category = "recall"
	Other         Category = "other"
)

// Categories lists all task categories; the first entry is the default.
var Categories = [6]Category{Obedience, Socialization, Tricks, Agility, Recall, Other}

// ParseCategory converts user input into a Category. Empty input yields the
// default category.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Categories[0], nil
	}
	for _, c := range Categories {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Pet is a dog profile owned by one user. It selects which training plan is
// loaded; the scheduler reads pets but never mutates them.
type Pet struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task is a single scheduled training activity belonging to one pet and one
// day of week. Order is unique within the (pet, day) partition and defines
// display and drag order; Completed is independent of ordering.
type Task struct {
	ID              int64     `json:"id"`
	PetID           int64     `json:"pet_id"`
	OwnerID         string    `json:"owner_id"`
	Day             DayOfWeek `json:"day_of_week"`
	Title           string    `json:"title"`
	Category        Category  `json:"category"`
	Description     string    `json:"description"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"duration_minutes"`
	Completed       bool      `json:"completed"`
	Order           int       `json:"order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
