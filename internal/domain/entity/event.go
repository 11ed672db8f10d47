// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"time"
)

// Event is a catalog entry for a city event. Events are created by business
// owners, start in pending moderation and expire once their date passes.
type Event struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	Date        string           `json:"date"` // Calendar date in YYYY-MM-DD form.
	Time        string           `json:"time"` // Wall-clock start time, HH:MM.
	Location    string           `json:"location"`
	Address     string           `json:"address"`
	CitySlug    string           `json:"cityId"` // Slug of the hosting city.
	Price       *float64         `json:"price"`  // Nil denotes a free event.
	MaxPrice    *float64         `json:"maxPrice,omitempty"`
	OrganizerID string           `json:"organizerId"`
	Organizer   string           `json:"organizer"` // Display name of the organizing business.
	Tags        []string         `json:"tags,omitempty"`
	ViewCount   int              `json:"viewCount"`
	SaveCount   int              `json:"saveCount"`
	IsFeatured  bool             `json:"isFeatured,omitempty"`
	Status      ModerationStatus `json:"status"`

	// IsFavorite is viewer-scoped: it depends on who is looking and must
	// never survive a session change.
	IsFavorite bool `json:"isFavorite,omitempty"`
}

// Free reports whether the event has no entry fee.
func (e *Event) Free() bool {
	return e.Price == nil
}

// FormatPrice renders the price or price range for display.
// A nil price means the event is free.
func (e *Event) FormatPrice() string {
	if e.Price == nil {
		return "Бесплатно"
	}
	if e.MaxPrice != nil && *e.MaxPrice > *e.Price {
		return fmt.Sprintf("%.0f – %.0f ₸", *e.Price, *e.MaxPrice)
	}

	return fmt.Sprintf("%.0f ₸", *e.Price)
}

// Expired reports whether the event's date has already passed.
// Dates that fail to parse are treated as not expired; the backend remains
// the source of truth for the lifecycle transition.
func (e *Event) Expired(now time.Time) bool {
	day, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return false
	}

	return day.AddDate(0, 0, 1).Before(now)
}
