package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adminrepo "github.com/vetcita/vetcita/internal/adminreport/repository"
	"github.com/vetcita/vetcita/internal/clock"
	subdomain "github.com/vetcita/vetcita/internal/subscription/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupReport(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&tenantdomain.Tenant{}, &subdomain.TenantSubscription{}))

	svc := &Service{
		db:    dbConn,
		log:   zap.NewNop(),
		clock: clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)),
		repo:  adminrepo.Provide(),
	}
	return svc, dbConn
}

func seedSubRow(t *testing.T, db *gorm.DB, id int64, plan string, status subdomain.Status, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&subdomain.TenantSubscription{
		ID:              id,
		TenantID:        id * 10,
		PlanCode:        plan,
		Status:          status,
		BillingInterval: subdomain.IntervalMonthly,
		CreatedAt:       createdAt,
	}).Error)
}

func TestBillingSummaryRevenueFromActiveOnly(t *testing.T) {
	svc, dbConn := setupReport(t)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	seedSubRow(t, dbConn, 1, "BASICO", subdomain.StatusActive, now)      // 599
	seedSubRow(t, dbConn, 2, "PROFESIONAL", subdomain.StatusActive, now) // 1199
	seedSubRow(t, dbConn, 3, "BASICO", subdomain.StatusCanceled, now)

	summary, err := svc.BillingSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1798), summary.TotalRevenue)
	assert.Equal(t, 2, summary.ActiveCount)
	assert.Equal(t, 0, summary.PendingPayments)
}

func TestBillingSummaryPastDueIsPendingNotRevenue(t *testing.T) {
	svc, dbConn := setupReport(t)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	seedSubRow(t, dbConn, 1, "CLINICA", subdomain.StatusPastDue, now)
	seedSubRow(t, dbConn, 2, "BASICO", subdomain.StatusTrialing, now)
	seedSubRow(t, dbConn, 3, "BASICO", subdomain.StatusUnpaid, now)

	summary, err := svc.BillingSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalRevenue)
	assert.Equal(t, 1, summary.PendingPayments)
	assert.Equal(t, 0, summary.ActiveCount)
	assert.Equal(t, 1, summary.TrialingCount)
}

func TestBillingSummaryUnknownPlanCountsActiveZeroRevenue(t *testing.T) {
	svc, dbConn := setupReport(t)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	seedSubRow(t, dbConn, 1, "LEGACY_GOLD", subdomain.StatusActive, now)

	summary, err := svc.BillingSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ActiveCount)
	assert.Equal(t, int64(0), summary.TotalRevenue)
}

func TestBillingSummarySeriesAlwaysTwelveMonths(t *testing.T) {
	svc, dbConn := setupReport(t)

	summary, err := svc.BillingSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.RevenueByMonth, 12)
	assert.Equal(t, "mar 2024", summary.RevenueByMonth[11].Month)
	assert.Equal(t, "abr 2023", summary.RevenueByMonth[0].Month)

	// Revenue lands in the bucket of the subscription's creation month.
	seedSubRow(t, dbConn, 1, "BASICO", subdomain.StatusActive, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	summary, err = svc.BillingSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.RevenueByMonth, 12)
	assert.Equal(t, int64(599), summary.RevenueByMonth[9].Revenue)
	assert.Equal(t, int64(599), summary.TotalRevenue)
}
