// Package entity contains the core business objects of the project.
package entity

import "time"

// Promotion is a time-bounded discount published by a business. IsActive is
// a denormalized flag maintained by the backend once ValidUntil passes.
type Promotion struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	CitySlug   string    `json:"cityId"`
	Title      string    `json:"title"`
	Discount   string    `json:"discount"` // Display form, e.g. "-30%" or "2+1".
	Conditions string    `json:"conditions"`
	ValidUntil time.Time `json:"validUntil"`
	ViewsCount int       `json:"viewsCount"`
	IsActive   bool      `json:"isActive"`
}

// Expired reports whether the promotion's validity window has passed.
func (p *Promotion) Expired(now time.Time) bool {
	return p.ValidUntil.Before(now)
}

// ExpiresSoon reports whether the promotion ends within the next three days,
// which the UI highlights.
func (p *Promotion) ExpiresSoon(now time.Time) bool {
	return !p.Expired(now) && p.ValidUntil.Before(now.Add(72*time.Hour))
}
