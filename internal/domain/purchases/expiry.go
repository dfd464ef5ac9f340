package purchases

import (
	"fmt"
	"strings"
	"time"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

type TimeUnit string

const (
	UnitHours  TimeUnit = "Hours"
	UnitDays   TimeUnit = "Days"
	UnitWeeks  TimeUnit = "Weeks"
	UnitMonths TimeUnit = "Months"
)

// ParseTimeUnit accepts the stored unit names case-insensitively.
func ParseTimeUnit(s string) (TimeUnit, error) {
	for _, u := range []TimeUnit{UnitHours, UnitDays, UnitWeeks, UnitMonths} {
		if strings.EqualFold(s, string(u)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedTimeUnit, s)
}

// RoleConfig is the limited-time part of a guild's sale configuration.
type RoleConfig struct {
	LimitedTime bool
	Quantity    int
	Unit        string
}

func RoleConfigFromGuild(g *models.Guild) RoleConfig {
	return RoleConfig{
		LimitedTime: g.LimitedTimeRoles,
		Quantity:    g.LimitedTimeQuantity,
		Unit:        g.LimitedTimeUnit,
	}
}

// ComputeExpiry returns nil for permanent roles. It is a pure function of its inputs.
func ComputeExpiry(now time.Time, cfg RoleConfig) (*time.Time, error) {
	if !cfg.LimitedTime {
		return nil, nil
	}
	if cfg.Quantity <= 0 || strings.TrimSpace(cfg.Unit) == "" {
		return nil, ErrInvalidRoleConfig
	}

	unit, err := ParseTimeUnit(cfg.Unit)
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	switch unit {
	case UnitHours:
		expiresAt = now.Add(time.Duration(cfg.Quantity) * time.Hour)
	case UnitDays:
		expiresAt = now.AddDate(0, 0, cfg.Quantity)
	case UnitWeeks:
		expiresAt = now.AddDate(0, 0, 7*cfg.Quantity)
	case UnitMonths:
		expiresAt = addMonths(now, cfg.Quantity)
	}
	return &expiresAt, nil
}

// addMonths increments the calendar month and clamps the day to the
// length of the target month, so Jan 31 + 1 month is Feb 28 or 29.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	hour, minute, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}
