package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/subscription/domain"
	subrepo "github.com/vetcita/vetcita/internal/subscription/repository"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	tenantrepo "github.com/vetcita/vetcita/internal/tenant/repository"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&tenantdomain.Tenant{}, &domain.TenantSubscription{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := &Service{
		db:         dbConn,
		log:        zap.NewNop(),
		genID:      node,
		clock:      fake,
		repo:       subrepo.Provide(),
		tenantRepo: tenantrepo.Provide(),
	}
	return svc, dbConn, fake
}

func seedTenant(t *testing.T, db *gorm.DB, trial bool) *tenantdomain.Tenant {
	t.Helper()
	var ends *time.Time
	if trial {
		e := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
		ends = &e
	}
	tenant := &tenantdomain.Tenant{
		ID:            101,
		Name:          "Clínica Central",
		Subdomain:     "clinica-central",
		Status:        tenantdomain.StatusActive,
		IsTrialPeriod: trial,
		TrialEndsAt:   ends,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func tenantContext(id int64) context.Context {
	return tenantctx.WithTenantID(context.Background(), snowflake.ID(id))
}

func TestUpgradeTrialConversion(t *testing.T) {
	svc, dbConn, _ := setupService(t)
	tenant := seedTenant(t, dbConn, true)

	resp, err := svc.Upgrade(tenantContext(tenant.ID), domain.UpgradeRequest{
		PlanCode:        "BASICO",
		BillingInterval: "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeTrialConversion, resp.ChangeType)
	assert.Equal(t, domain.StatusActive, resp.Subscription.Status)
	assert.Equal(t, "BASICO", resp.Subscription.PlanCode)

	var reloaded tenantdomain.Tenant
	require.NoError(t, dbConn.First(&reloaded, tenant.ID).Error)
	assert.False(t, reloaded.IsTrialPeriod)
}

func TestUpgradeExistingSubscription(t *testing.T) {
	svc, dbConn, _ := setupService(t)
	tenant := seedTenant(t, dbConn, false)

	require.NoError(t, dbConn.Create(&domain.TenantSubscription{
		ID:              501,
		TenantID:        tenant.ID,
		PlanCode:        "PROFESIONAL",
		Status:          domain.StatusActive,
		BillingInterval: domain.IntervalMonthly,
		MonthlyPrice:    1199,
	}).Error)

	resp, err := svc.Upgrade(tenantContext(tenant.ID), domain.UpgradeRequest{
		PlanCode:        "EMPRESA",
		BillingInterval: "annual",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeUpgrade, resp.ChangeType)
	assert.Equal(t, "EMPRESA", resp.Subscription.PlanCode)

	var old domain.TenantSubscription
	require.NoError(t, dbConn.First(&old, int64(501)).Error)
	assert.Equal(t, domain.StatusCanceled, old.Status)
}

func TestUpgradeRejectsDowngrade(t *testing.T) {
	svc, dbConn, _ := setupService(t)
	tenant := seedTenant(t, dbConn, false)

	require.NoError(t, dbConn.Create(&domain.TenantSubscription{
		ID:              502,
		TenantID:        tenant.ID,
		PlanCode:        "CLINICA",
		Status:          domain.StatusActive,
		BillingInterval: domain.IntervalMonthly,
		MonthlyPrice:    1999,
	}).Error)

	_, err := svc.Upgrade(tenantContext(tenant.ID), domain.UpgradeRequest{
		PlanCode:        "PROFESIONAL",
		BillingInterval: "monthly",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUpgrade)
}

func TestUpgradeValidation(t *testing.T) {
	svc, dbConn, _ := setupService(t)
	tenant := seedTenant(t, dbConn, true)

	_, err := svc.Upgrade(tenantContext(tenant.ID), domain.UpgradeRequest{
		PlanCode:        "GRATIS",
		BillingInterval: "monthly",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownPlan)

	_, err = svc.Upgrade(tenantContext(tenant.ID), domain.UpgradeRequest{
		PlanCode:        "BASICO",
		BillingInterval: "weekly",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = svc.Upgrade(context.Background(), domain.UpgradeRequest{
		PlanCode:        "BASICO",
		BillingInterval: "monthly",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
}

func TestCurrentReturnsNewestNonCanceled(t *testing.T) {
	svc, dbConn, _ := setupService(t)
	tenant := seedTenant(t, dbConn, false)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, dbConn.Create(&domain.TenantSubscription{
		ID: 601, TenantID: tenant.ID, PlanCode: "BASICO",
		Status: domain.StatusCanceled, BillingInterval: domain.IntervalMonthly,
		MonthlyPrice: 599, CreatedAt: base,
	}).Error)
	require.NoError(t, dbConn.Create(&domain.TenantSubscription{
		ID: 602, TenantID: tenant.ID, PlanCode: "PROFESIONAL",
		Status: domain.StatusActive, BillingInterval: domain.IntervalMonthly,
		MonthlyPrice: 1199, CreatedAt: base.AddDate(0, 1, 0),
	}).Error)

	resp, err := svc.Current(tenantContext(tenant.ID))
	require.NoError(t, err)
	assert.Equal(t, "PROFESIONAL", resp.PlanCode)
}
