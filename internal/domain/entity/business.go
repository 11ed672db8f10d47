// Package entity contains the core business objects of the project.
package entity

// Business is a directory entry owned by exactly one user. A business has
// many events and promotions; its tier gates publishing features.
type Business struct {
	ID             string `json:"id"`
	OwnerID        string `json:"ownerId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	CitySlug       string `json:"cityId"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Logo           string `json:"logo"`
	Cover          string `json:"cover"`
	Tier           Tier   `json:"tier"`
	IsVerified     bool   `json:"isVerified"`
	PostsThisMonth int    `json:"postsThisMonth"`
}

// QuotaRemaining returns how many publications the business may still make
// this month under its tier.
func (b *Business) QuotaRemaining() int {
	remaining := b.Tier.PostQuota() - b.PostsThisMonth
	if remaining < 0 {
		return 0
	}

	return remaining
}
