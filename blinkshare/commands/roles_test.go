package commands

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

func rolePurchase(name string, expiresAt *time.Time) *models.RolePurchase {
	return &models.RolePurchase{RoleName: name, ExpiresAt: expiresAt}
}

func roleNames(purchases []*models.RolePurchase) []string {
	names := make([]string, 0, len(purchases))
	for _, p := range purchases {
		names = append(names, p.RoleName)
	}
	return names
}

func TestFilterPurchases(t *testing.T) {
	purchases := []*models.RolePurchase{
		rolePurchase("VIP", nil),
		rolePurchase("Supporter", nil),
		rolePurchase("Super VIP", nil),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty keeps order", query: "", want: []string{"VIP", "Supporter", "Super VIP"}},
		{name: "whitespace keeps order", query: "  ", want: []string{"VIP", "Supporter", "Super VIP"}},
		{name: "fuzzy subsequence", query: "sup", want: []string{"Supporter", "Super VIP"}},
		{name: "no match", query: "xyz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, roleNames(FilterPurchases(purchases, tt.query)))
		})
	}
}

func TestRolesPage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	soon := now.Add(30 * time.Minute)
	later := now.Add(48 * time.Hour)

	var purchases []*models.RolePurchase
	purchases = append(purchases,
		rolePurchase("Forever", nil),
		rolePurchase("Soon", &soon),
		rolePurchase("Later", &later),
	)
	for i := 0; i < rolesPerPage; i++ {
		purchases = append(purchases, rolePurchase("Filler", nil))
	}

	first := RolesPage(purchases, 0, now)
	assert.Contains(t, first, "**Forever** • permanent")
	assert.Contains(t, first, "**Soon** • expires within the hour")
	assert.Contains(t, first, "<t:"+strconv.FormatInt(later.Unix(), 10)+":R>")
	assert.Equal(t, rolesPerPage, strings.Count(first, "\n"))

	second := RolesPage(purchases, 1, now)
	assert.Equal(t, 3, strings.Count(second, "\n"))

	assert.Equal(t, second, RolesPage(purchases, 7, now))
}

func TestLatestPerRole(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(30 * 24 * time.Hour)
	sooner := now.Add(24 * time.Hour)

	purchases := []*models.RolePurchase{
		{RoleID: "1", RoleName: "VIP", ExpiresAt: &later},
		{RoleID: "1", RoleName: "VIP", ExpiresAt: &sooner},
		{RoleID: "2", RoleName: "Member"},
	}

	got := LatestPerRole(purchases)
	assert.Len(t, got, 2)
	assert.Equal(t, &later, got[0].ExpiresAt)
	assert.Equal(t, "Member", got[1].RoleName)
}
