// Package entity contains the core business objects of the project.
package entity

// Tier represents the subscription level of a business. It gates feature
// availability (video uploads, AI image suggestions) and monthly post quotas.
type Tier string

const (
	// TierFree is the default tier with a minimal post quota.
	TierFree Tier = "free"
	// TierLite unlocks a larger quota and video uploads.
	TierLite Tier = "lite"
	// TierPremium unlocks the full quota and AI assistance.
	TierPremium Tier = "premium"
)

// String returns the string representation of the Tier.
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the Tier is a valid value.
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierLite, TierPremium:
		return true
	default:
		return false
	}
}

// PostQuota returns the number of publications the tier allows per month.
func (t Tier) PostQuota() int {
	switch t {
	case TierLite:
		return 15
	case TierPremium:
		return 50
	default:
		return 3
	}
}

// AllowsVideo reports whether the tier permits video uploads.
func (t Tier) AllowsVideo() bool {
	return t == TierLite || t == TierPremium
}

// AllowsAIAssist reports whether the tier permits AI image suggestions.
func (t Tier) AllowsAIAssist() bool {
	return t == TierPremium
}
