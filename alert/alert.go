package alert

import (
	"strings"

	"github.com/google/uuid"
)

// Category is the closed set of alert kinds
type Category string

const (
	CategoryDonation     Category = "donation"
	CategoryBits         Category = "bits"
	CategorySubscription Category = "subscription"
	CategoryResub        Category = "resub"
	CategoryRaid         Category = "raid"
	CategoryHost         Category = "host"
	CategoryFollow       Category = "follow"
)

// Categories lists every category in descending priority
var Categories = []Category{
	CategoryDonation,
	CategoryBits,
	CategoryRaid,
	CategorySubscription,
	CategoryResub,
	CategoryHost,
	CategoryFollow,
}

// priorities is the fixed ranking table, higher shows first
var priorities = map[Category]int{
	CategoryDonation:     100,
	CategoryBits:         95,
	CategoryRaid:         90,
	CategorySubscription: 80,
	CategoryResub:        75,
	CategoryHost:         60,
	CategoryFollow:       50,
}

// AnonymousName replaces an empty display name
const AnonymousName = "Anonymous"

// Priority returns the ranking of the category, 0 for unknown values
func (c Category) Priority() int {
	return priorities[c]
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := priorities[c]
	return ok
}

// ParseCategory maps a wire string to a Category, case-insensitive
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Alert is a normalized notification ready for display
// Fields are read-only after New; priority is derived from category
type Alert struct {
	ID          uuid.UUID
	Category    Category
	DisplayName string
	Note        string
	AmountLabel string

	priority int
	seq      uint64 // arrival order, stamped by Queue.Push
}

// New creates an Alert; an empty name becomes AnonymousName
func New(category Category, displayName, note, amountLabel string) Alert {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = AnonymousName
	}
	return Alert{
		ID:          uuid.New(),
		Category:    category,
		DisplayName: name,
		Note:        note,
		AmountLabel: amountLabel,
		priority:    category.Priority(),
	}
}

// Priority returns the ranking fixed at creation
func (a Alert) Priority() int {
	return a.priority
}

// Seq returns the arrival sequence assigned when the alert was queued
func (a Alert) Seq() uint64 {
	return a.seq
}
