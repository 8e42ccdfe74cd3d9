package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/config"
	subscriptiondomain "github.com/vetcita/vetcita/internal/subscription/domain"
	subrepo "github.com/vetcita/vetcita/internal/subscription/repository"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	tenantrepo "github.com/vetcita/vetcita/internal/tenant/repository"
)

func setupScheduler(t *testing.T, grace int) (*Scheduler, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&tenantdomain.Tenant{}, &subscriptiondomain.TenantSubscription{}))

	gating := config.DefaultGatingConfig()
	gating.GraceDays = grace

	fake := clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	sched := &Scheduler{
		db:         dbConn,
		log:        zap.NewNop(),
		cfg:        Config{}.withDefaults(),
		clock:      fake,
		tenantRepo: tenantrepo.Provide(),
		subRepo:    subrepo.Provide(),
		gating:     config.NewStaticGatingHolder(gating),
	}
	return sched, dbConn, fake
}

func seedTrialTenant(t *testing.T, db *gorm.DB, id int64, endsAt time.Time, status subscriptiondomain.Status) {
	t.Helper()
	ends := endsAt
	require.NoError(t, db.Create(&tenantdomain.Tenant{
		ID:            id,
		Name:          "Clínica Central",
		Subdomain:     "clinica-" + time.Now().Format("150405.000") + string(rune('a'+id%26)),
		Status:        tenantdomain.StatusActive,
		IsTrialPeriod: true,
		TrialEndsAt:   &ends,
	}).Error)
	require.NoError(t, db.Create(&subscriptiondomain.TenantSubscription{
		ID:               id * 10,
		TenantID:         id,
		PlanCode:         "BASICO",
		Status:           status,
		BillingInterval:  subscriptiondomain.IntervalMonthly,
		CurrentPeriodEnd: &ends,
	}).Error)
}

func subscriptionStatus(t *testing.T, db *gorm.DB, id int64) subscriptiondomain.Status {
	t.Helper()
	var sub subscriptiondomain.TenantSubscription
	require.NoError(t, db.First(&sub, "id = ?", id).Error)
	return sub.Status
}

func TestSweepExpiresTrialsPastTheirEndDate(t *testing.T) {
	sched, db, _ := setupScheduler(t, 0)

	seedTrialTenant(t, db, 1, time.Date(2024, 3, 8, 23, 59, 0, 0, time.UTC), subscriptiondomain.StatusTrialing)

	count, err := sched.SweepExpiredTrials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, subscriptiondomain.StatusUnpaid, subscriptionStatus(t, db, 10))
}

func TestSweepLeavesLastDayTrialsAlone(t *testing.T) {
	sched, db, _ := setupScheduler(t, 0)

	// Ends today: still the last day, gets the whole calendar day.
	seedTrialTenant(t, db, 2, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), subscriptiondomain.StatusTrialing)

	count, err := sched.SweepExpiredTrials(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, subscriptiondomain.StatusTrialing, subscriptionStatus(t, db, 20))
}

func TestSweepHonorsGracePeriod(t *testing.T) {
	sched, db, _ := setupScheduler(t, 3)

	// Expired two days ago, but grace covers three.
	seedTrialTenant(t, db, 3, time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC), subscriptiondomain.StatusTrialing)
	// Expired five days ago: past grace.
	seedTrialTenant(t, db, 4, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), subscriptiondomain.StatusTrialing)

	count, err := sched.SweepExpiredTrials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, subscriptiondomain.StatusTrialing, subscriptionStatus(t, db, 30))
	assert.Equal(t, subscriptiondomain.StatusUnpaid, subscriptionStatus(t, db, 40))
}

func TestSweepSkipsConvertedSubscriptions(t *testing.T) {
	sched, db, _ := setupScheduler(t, 0)

	// Tenant still flagged as trial but already on a paid plan.
	seedTrialTenant(t, db, 5, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), subscriptiondomain.StatusActive)

	count, err := sched.SweepExpiredTrials(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, subscriptiondomain.StatusActive, subscriptionStatus(t, db, 50))
}

func TestSweepPicksUpNewlyExpiredTrialAfterClockAdvance(t *testing.T) {
	sched, db, fake := setupScheduler(t, 0)

	seedTrialTenant(t, db, 6, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), subscriptiondomain.StatusTrialing)

	count, err := sched.SweepExpiredTrials(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	fake.Advance(24 * time.Hour)

	count, err = sched.SweepExpiredTrials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, subscriptiondomain.StatusUnpaid, subscriptionStatus(t, db, 60))
}
