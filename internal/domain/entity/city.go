// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// City is immutable reference data describing a supported city.
// The slug is globally unique and acts as the foreign key for every
// location-scoped query.
type City struct {
	ID         string `json:"id"`         // The unique identifier of the city record.
	Name       string `json:"name"`       // The city name in Russian, e.g. "Алматы".
	NameLocal  string `json:"nameLocal"`  // The city name in Kazakh, e.g. "Алматы".
	Slug       string `json:"slug"`       // URL-safe unique key, e.g. "almaty".
	Region     string `json:"region"`     // Administrative region the city belongs to.
	Population int    `json:"population"` // Latest known population figure.
}
