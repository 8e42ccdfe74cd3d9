// Package trial computes a tenant's trial state from its trial timestamps.
// Everything here is pure; callers pass the clock and configuration in.
package trial

import (
	"fmt"
	"time"
)

type StatusCode string

const (
	StatusActive      StatusCode = "active"
	StatusEndingSoon  StatusCode = "ending_soon"
	StatusGracePeriod StatusCode = "grace_period"
	StatusExpired     StatusCode = "expired"
	StatusConverted   StatusCode = "converted"
)

type Banner string

const (
	BannerSuccess Banner = "success"
	BannerWarning Banner = "warning"
	BannerDanger  Banner = "danger"
)

// Config carries the gating knobs. BlockedFeatures is the deny-set applied
// once a trial has fully expired.
type Config struct {
	WarningThresholdDays int
	GraceDays            int
	BlockedFeatures      []string
}

// TenantTrial is the slice of a tenant record the calculator needs.
type TenantTrial struct {
	IsTrialPeriod bool
	TrialEndsAt   *time.Time
}

// Status is recomputed on every evaluation and never persisted.
// DaysRemaining keeps its sign; callers that need "days ago" take the
// absolute value themselves.
type Status struct {
	Status            StatusCode `json:"status"`
	DaysRemaining     int        `json:"days_remaining"`
	DisplayMessage    string     `json:"display_message"`
	BannerType        Banner     `json:"banner_type"`
	ShowUpgradePrompt bool       `json:"show_upgrade_prompt"`
	BlockedFeatures   []string   `json:"blocked_features"`
}

// DaysBetween returns the signed whole-day difference between end and now,
// comparing calendar days in UTC rather than 24h windows.
func DaysBetween(end, now time.Time) int {
	e := end.UTC()
	n := now.UTC()
	endDay := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(nowDay) / (24 * time.Hour))
}

// Calculate evaluates the precedence chain: converted, expired (past any
// grace window), grace, last day, ending soon, active.
func Calculate(t TenantTrial, now time.Time, cfg Config) Status {
	if !t.IsTrialPeriod || t.TrialEndsAt == nil {
		return Status{
			Status:          StatusConverted,
			BannerType:      BannerSuccess,
			BlockedFeatures: []string{},
		}
	}

	days := DaysBetween(*t.TrialEndsAt, now)

	switch {
	case days < 0 && -days > cfg.GraceDays:
		blocked := make([]string, len(cfg.BlockedFeatures))
		copy(blocked, cfg.BlockedFeatures)
		return Status{
			Status:            StatusExpired,
			DaysRemaining:     days,
			DisplayMessage:    RemainingDaysMessage(days),
			BannerType:        BannerDanger,
			ShowUpgradePrompt: true,
			BlockedFeatures:   blocked,
		}
	case days < 0:
		// Still inside the grace window: warn hard, block nothing yet.
		return Status{
			Status:            StatusGracePeriod,
			DaysRemaining:     days,
			DisplayMessage:    RemainingDaysMessage(days),
			BannerType:        BannerDanger,
			ShowUpgradePrompt: true,
			BlockedFeatures:   []string{},
		}
	case days == 0:
		return Status{
			Status:            StatusEndingSoon,
			DaysRemaining:     0,
			DisplayMessage:    RemainingDaysMessage(0),
			BannerType:        BannerWarning,
			ShowUpgradePrompt: true,
			BlockedFeatures:   []string{},
		}
	case days <= cfg.WarningThresholdDays:
		return Status{
			Status:            StatusEndingSoon,
			DaysRemaining:     days,
			DisplayMessage:    RemainingDaysMessage(days),
			BannerType:        BannerWarning,
			ShowUpgradePrompt: true,
			BlockedFeatures:   []string{},
		}
	default:
		return Status{
			Status:          StatusActive,
			DaysRemaining:   days,
			DisplayMessage:  RemainingDaysMessage(days),
			BannerType:      BannerSuccess,
			BlockedFeatures: []string{},
		}
	}
}

// RemainingDaysMessage renders the user-facing banner copy for a signed
// day count, with Spanish pluralization.
func RemainingDaysMessage(days int) string {
	switch {
	case days < 0:
		ago := -days
		if ago == 1 {
			return "Tu periodo de prueba expiró hace 1 día"
		}
		return fmt.Sprintf("Tu periodo de prueba expiró hace %d días", ago)
	case days == 0:
		return "¡Último día! Tu periodo de prueba termina hoy"
	case days == 1:
		return "Tu periodo de prueba termina mañana"
	default:
		return fmt.Sprintf("Tu periodo de prueba termina en %d días", days)
	}
}
