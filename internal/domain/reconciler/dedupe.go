package reconciler

import "github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"

// Dedupe keeps one representative per (guild, role, user). The first row seen
// wins, so with the store's insertion ordering the oldest purchase represents
// the key even when a later duplicate expires sooner. Renewals are resolved
// afterwards by IsRenewed.
func Dedupe(purchases []*models.RolePurchase) []*models.RolePurchase {
	seen := make(map[models.PurchaseKey]struct{}, len(purchases))
	unique := make([]*models.RolePurchase, 0, len(purchases))
	for _, p := range purchases {
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		seen[p.Key()] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// IsRenewed reports whether another purchase of the same triple outlives rep.
// A permanent sibling always outlives a limited one.
func IsRenewed(rep *models.RolePurchase, siblings []*models.RolePurchase) bool {
	if len(siblings) <= 1 || rep.ExpiresAt == nil {
		return false
	}
	for _, s := range siblings {
		if s.ID == rep.ID {
			continue
		}
		if s.ExpiresAt == nil || s.ExpiresAt.After(*rep.ExpiresAt) {
			return true
		}
	}
	return false
}
