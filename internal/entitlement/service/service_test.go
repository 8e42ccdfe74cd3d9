package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/config"
	"github.com/vetcita/vetcita/internal/entitlement/domain"
	memberdomain "github.com/vetcita/vetcita/internal/member/domain"
	petdomain "github.com/vetcita/vetcita/internal/pet/domain"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	subdomain "github.com/vetcita/vetcita/internal/subscription/domain"
	subrepo "github.com/vetcita/vetcita/internal/subscription/repository"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	tenantrepo "github.com/vetcita/vetcita/internal/tenant/repository"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"github.com/vetcita/vetcita/internal/trial"
	usagerepo "github.com/vetcita/vetcita/internal/usage/repository"
	usageservice "github.com/vetcita/vetcita/internal/usage/service"
	whatsappdomain "github.com/vetcita/vetcita/internal/whatsapp/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupGuard(t *testing.T) (*Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&tenantdomain.Tenant{},
		&subdomain.TenantSubscription{},
		&petdomain.Pet{},
		&petdomain.Owner{},
		&memberdomain.TenantMember{},
		&authdomain.User{},
		&whatsappdomain.WhatsAppMessage{},
	))

	fake := clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	usage := usageservice.New(usageservice.Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		Clock: fake,
		Repo:  usagerepo.Provide(),
	})

	svc := &Service{
		db:         dbConn,
		log:        zap.NewNop(),
		clock:      fake,
		gating:     config.NewStaticGatingHolder(config.DefaultGatingConfig()),
		tenantRepo: tenantrepo.Provide(),
		subRepo:    subrepo.Provide(),
		usage:      usage,
	}
	return svc, dbConn, fake
}

func seedGuardTenant(t *testing.T, db *gorm.DB, trialEnds *time.Time) *tenantdomain.Tenant {
	t.Helper()
	tenant := &tenantdomain.Tenant{
		ID:            201,
		Name:          "Veterinaria del Valle",
		Subdomain:     "veterinaria-del-valle",
		Status:        tenantdomain.StatusActive,
		IsTrialPeriod: trialEnds != nil,
		TrialEndsAt:   trialEnds,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func seedSub(t *testing.T, db *gorm.DB, tenantID int64, plan string, status subdomain.Status) {
	t.Helper()
	p, ok := plandomain.Lookup(plan)
	require.True(t, ok)
	require.NoError(t, db.Create(&subdomain.TenantSubscription{
		ID:              snowflakeID(t),
		TenantID:        tenantID,
		PlanCode:        p.Code,
		Status:          status,
		BillingInterval: subdomain.IntervalMonthly,
		MonthlyPrice:    p.MonthlyPrice,
	}).Error)
}

var nextID int64 = 9000

func snowflakeID(t *testing.T) int64 {
	t.Helper()
	nextID++
	return nextID
}

func guardContext(id int64) context.Context {
	return tenantctx.WithTenantID(context.Background(), snowflake.ID(id))
}

func TestGuardDeniesExpiredTrial(t *testing.T) {
	svc, dbConn, fake := setupGuard(t)
	ends := fake.Now().AddDate(0, 0, -2)
	tenant := seedGuardTenant(t, dbConn, &ends)
	seedSub(t, dbConn, tenant.ID, "PROFESIONAL", subdomain.StatusTrialing)

	decision, err := svc.Guard(guardContext(tenant.ID))
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.ReasonTrialExpired, decision.Reason)
	assert.Equal(t, domain.FallbackRedirect, decision.Fallback)
}

func TestGuardAllowsActiveTrial(t *testing.T) {
	svc, dbConn, fake := setupGuard(t)
	ends := fake.Now().AddDate(0, 0, 10)
	tenant := seedGuardTenant(t, dbConn, &ends)
	seedSub(t, dbConn, tenant.ID, "PROFESIONAL", subdomain.StatusTrialing)

	decision, err := svc.Guard(guardContext(tenant.ID))
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestEvaluateFeatureByPlan(t *testing.T) {
	svc, dbConn, _ := setupGuard(t)
	tenant := seedGuardTenant(t, dbConn, nil)
	seedSub(t, dbConn, tenant.ID, "PROFESIONAL", subdomain.StatusActive)

	ctx := guardContext(tenant.ID)

	decision, err := svc.Evaluate(ctx, domain.FeatureRequirement(plandomain.FeatureAutomations))
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = svc.Evaluate(ctx, domain.FeatureRequirement(plandomain.FeatureAdvancedReports))
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.ReasonFeatureNotAvailable, decision.Reason)
	assert.Equal(t, domain.FallbackPromptUpgrade, decision.Fallback)
}

func TestEvaluateFailsClosedWithoutSubscription(t *testing.T) {
	svc, dbConn, _ := setupGuard(t)
	tenant := seedGuardTenant(t, dbConn, nil)

	decision, err := svc.Evaluate(guardContext(tenant.ID), domain.FeatureRequirement(plandomain.FeatureAutomations))
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.ReasonNoSubscription, decision.Reason)

	assert.False(t, svc.HasFeatureAccess(guardContext(tenant.ID), plandomain.FeatureAutomations))
	// Unknown tenant fails closed too.
	assert.False(t, svc.HasFeatureAccess(guardContext(999), plandomain.FeatureAutomations))
}

func TestEvaluateLimit(t *testing.T) {
	svc, dbConn, _ := setupGuard(t)
	tenant := seedGuardTenant(t, dbConn, nil)
	seedSub(t, dbConn, tenant.ID, "BASICO", subdomain.StatusActive)

	ctx := guardContext(tenant.ID)

	// BASICO allows 2 users; fill both seats.
	for i := int64(0); i < 2; i++ {
		require.NoError(t, dbConn.Create(&memberdomain.TenantMember{
			ID:       snowflakeID(t),
			TenantID: tenant.ID,
			UserID:   1000 + i,
			Role:     memberdomain.RoleMember,
		}).Error)
	}

	decision, err := svc.Evaluate(ctx, domain.LimitRequirement(plandomain.LimitUsers))
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.ReasonLimitReached, decision.Reason)
	require.NotNil(t, decision.Limit)
	assert.Equal(t, 2, decision.Limit.Current)
	assert.Equal(t, 0, decision.Limit.Remaining)

	decision, err = svc.Evaluate(ctx, domain.LimitRequirement(plandomain.LimitPets))
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	require.NotNil(t, decision.Limit)
	assert.Equal(t, 100, decision.Limit.Limit)
}

func TestTrialStatusEndpointValueObject(t *testing.T) {
	svc, dbConn, fake := setupGuard(t)
	ends := fake.Now().AddDate(0, 0, 1)
	tenant := seedGuardTenant(t, dbConn, &ends)
	seedSub(t, dbConn, tenant.ID, "PROFESIONAL", subdomain.StatusTrialing)

	status, err := svc.TrialStatus(guardContext(tenant.ID))
	require.NoError(t, err)
	assert.Equal(t, trial.StatusEndingSoon, status.Status)
	assert.Equal(t, 1, status.DaysRemaining)
	assert.Contains(t, status.DisplayMessage, "termina mañana")
}

func TestGuardDeniesSuspendedTenant(t *testing.T) {
	svc, dbConn, _ := setupGuard(t)
	tenant := seedGuardTenant(t, dbConn, nil)
	require.NoError(t, dbConn.Model(&tenantdomain.Tenant{}).
		Where("id = ?", tenant.ID).
		Update("status", tenantdomain.StatusSuspended).Error)

	decision, err := svc.Guard(guardContext(tenant.ID))
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.ReasonTenantSuspended, decision.Reason)
}
