package trial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	WarningThresholdDays: 5,
	GraceDays:            0,
	BlockedFeatures:      []string{"pets", "appointments", "inventory", "reports", "automations"},
}

func endingAt(t time.Time) *time.Time { return &t }

func TestCalculateConverted(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	got := Calculate(TenantTrial{IsTrialPeriod: false}, now, testConfig)
	assert.Equal(t, StatusConverted, got.Status)
	assert.Equal(t, []string{}, got.BlockedFeatures)
	assert.False(t, got.ShowUpgradePrompt)

	// A trial flag without an end date is treated the same way.
	got = Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: nil}, now, testConfig)
	assert.Equal(t, StatusConverted, got.Status)
}

func TestCalculateExpiredKeepsSign(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ends := now.AddDate(0, 0, -3)

	got := Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: endingAt(ends)}, now, testConfig)
	assert.Equal(t, StatusExpired, got.Status)
	assert.Equal(t, -3, got.DaysRemaining)
	assert.Contains(t, got.DisplayMessage, "hace 3 días")
	assert.Equal(t, BannerDanger, got.BannerType)
	assert.True(t, got.ShowUpgradePrompt)
	assert.ElementsMatch(t, testConfig.BlockedFeatures, got.BlockedFeatures)
}

func TestCalculateExpiredSingular(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ends := now.AddDate(0, 0, -1)

	got := Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: endingAt(ends)}, now, testConfig)
	assert.Contains(t, got.DisplayMessage, "hace 1 día")
	assert.NotContains(t, got.DisplayMessage, "días")
}

func TestCalculateLastDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	ends := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)

	got := Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: endingAt(ends)}, now, testConfig)
	assert.Equal(t, StatusEndingSoon, got.Status)
	assert.Equal(t, 0, got.DaysRemaining)
	assert.Contains(t, got.DisplayMessage, "¡Último día!")
	assert.Equal(t, BannerWarning, got.BannerType)
	assert.Empty(t, got.BlockedFeatures)
}

func TestCalculateEndingSoon(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	got := Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: endingAt(now.AddDate(0, 0, 3))}, now, testConfig)
	assert.Equal(t, StatusEndingSoon, got.Status)
	assert.Equal(t, 3, got.DaysRemaining)
	assert.Contains(t, got.DisplayMessage, "termina en 3 días")
	assert.True(t, got.ShowUpgradePrompt)
}

func TestCalculateActive(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	got := Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: endingAt(now.AddDate(0, 0, 14))}, now, testConfig)
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, 14, got.DaysRemaining)
	assert.Equal(t, BannerSuccess, got.BannerType)
	assert.False(t, got.ShowUpgradePrompt)
	assert.Empty(t, got.BlockedFeatures)
}

func TestCalculateGracePeriod(t *testing.T) {
	cfg := testConfig
	cfg.GraceDays = 3
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	got := Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: endingAt(now.AddDate(0, 0, -2))}, now, cfg)
	assert.Equal(t, StatusGracePeriod, got.Status)
	assert.Equal(t, -2, got.DaysRemaining)
	assert.Equal(t, BannerDanger, got.BannerType)
	assert.True(t, got.ShowUpgradePrompt)
	assert.Empty(t, got.BlockedFeatures, "grace blocks nothing yet")

	got = Calculate(TenantTrial{IsTrialPeriod: true, TrialEndsAt: endingAt(now.AddDate(0, 0, -4))}, now, cfg)
	assert.Equal(t, StatusExpired, got.Status)
}

func TestDaysBetweenComparesCalendarDays(t *testing.T) {
	// 01:00 vs 23:00 the same day is still zero days.
	end := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(end, now))

	// Crossing midnight by an hour is a full calendar day.
	end = time.Date(2024, 3, 11, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(end, now))

	end = time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, -3, DaysBetween(end, now))
}

func TestRemainingDaysMessage(t *testing.T) {
	require.Contains(t, RemainingDaysMessage(1), "termina mañana")
	assert.NotContains(t, RemainingDaysMessage(1), "termina en")
	assert.Contains(t, RemainingDaysMessage(0), "¡Último día!")
	assert.Contains(t, RemainingDaysMessage(5), "termina en 5 días")
	assert.Contains(t, RemainingDaysMessage(-1), "expiró hace 1 día")
	assert.Contains(t, RemainingDaysMessage(-7), "expiró hace 7 días")
}
