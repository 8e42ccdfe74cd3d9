package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectPet           = "pet"
	ObjectOwner         = "owner"
	ObjectMember        = "member"
	ObjectSubscription  = "subscription"
	ObjectBusinessHours = "business_hours"
	ObjectWhatsApp      = "whatsapp"
	ObjectSettings      = "settings"
	ObjectBilling       = "billing"
)

const (
	ActionPetView   = "pet.view"
	ActionPetCreate = "pet.create"
	ActionPetUpdate = "pet.update"

	ActionOwnerView   = "owner.view"
	ActionOwnerCreate = "owner.create"

	ActionMemberView   = "member.view"
	ActionMemberCreate = "member.create"
	ActionMemberUpdate = "member.update"

	ActionSubscriptionView    = "subscription.view"
	ActionSubscriptionUpgrade = "subscription.upgrade"
	ActionSubscriptionExpire  = "subscription.expire"

	ActionBusinessHoursView   = "business_hours.view"
	ActionBusinessHoursUpdate = "business_hours.update"

	ActionWhatsAppView = "whatsapp.view"
	ActionWhatsAppSend = "whatsapp.send"

	ActionSettingsManage = "settings.manage"

	ActionBillingView = "billing.view"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, tenantID string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return ErrInvalidTenant
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject, roleName, err := s.resolveActor(ctx, actor, tenantID)
	if err != nil {
		return err
	}

	domain := fmt.Sprintf("tenant:%s", tenantID)
	if err := s.ensureGrouping(subject, roleName, domain); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, domain, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Warn("authorization denied",
			zap.String("subject", subject),
			zap.String("tenant_id", tenantID),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) resolveActor(ctx context.Context, actor string, tenantID string) (string, string, error) {
	if actor == "system" {
		return actor, "role:system", nil
	}
	if strings.HasPrefix(actor, "user:") {
		userIDRaw := strings.TrimPrefix(actor, "user:")
		userID, err := snowflake.ParseString(userIDRaw)
		if err != nil || userID == 0 {
			return "", "", ErrInvalidActor
		}
		parsedTenantID, err := snowflake.ParseString(tenantID)
		if err != nil || parsedTenantID == 0 {
			return "", "", ErrInvalidTenant
		}
		role, err := s.roleForUser(ctx, parsedTenantID, userID)
		if err != nil {
			return "", "", err
		}
		return actor, fmt.Sprintf("role:%s", strings.ToLower(role)), nil
	}
	return "", "", ErrInvalidActor
}

func (s *ServiceImpl) roleForUser(ctx context.Context, tenantID snowflake.ID, userID snowflake.ID) (string, error) {
	var row struct {
		Role string `gorm:"column:role"`
	}
	if err := s.db.WithContext(ctx).Raw(
		`SELECT role
		 FROM tenant_members
		 WHERE tenant_id = ? AND user_id = ?
		 LIMIT 1`,
		int64(tenantID),
		int64(userID),
	).Scan(&row).Error; err != nil {
		return "", err
	}

	role := strings.TrimSpace(row.Role)
	if role == "" {
		return "", ErrForbidden
	}
	return role, nil
}

func (s *ServiceImpl) ensureGrouping(subject string, roleName string, domain string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject, "", domain)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName, domain)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName, domain)
	return err
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Staff permissions (read-mostly)
		{"role:member", ObjectPet, ActionPetView},
		{"role:member", ObjectPet, ActionPetCreate},
		{"role:member", ObjectPet, ActionPetUpdate},
		{"role:member", ObjectOwner, ActionOwnerView},
		{"role:member", ObjectOwner, ActionOwnerCreate},
		{"role:member", ObjectWhatsApp, ActionWhatsAppView},
		{"role:member", ObjectBusinessHours, ActionBusinessHoursView},
		{"role:member", ObjectSubscription, ActionSubscriptionView},

		// Admin permissions
		{"role:admin", ObjectPet, ActionPetView},
		{"role:admin", ObjectPet, ActionPetCreate},
		{"role:admin", ObjectPet, ActionPetUpdate},
		{"role:admin", ObjectOwner, ActionOwnerView},
		{"role:admin", ObjectOwner, ActionOwnerCreate},
		{"role:admin", ObjectWhatsApp, ActionWhatsAppView},
		{"role:admin", ObjectWhatsApp, ActionWhatsAppSend},
		{"role:admin", ObjectBusinessHours, ActionBusinessHoursView},
		{"role:admin", ObjectBusinessHours, ActionBusinessHoursUpdate},
		{"role:admin", ObjectMember, ActionMemberView},
		{"role:admin", ObjectSubscription, ActionSubscriptionView},

		// Owner permissions
		{"role:owner", ObjectPet, ActionPetView},
		{"role:owner", ObjectPet, ActionPetCreate},
		{"role:owner", ObjectPet, ActionPetUpdate},
		{"role:owner", ObjectOwner, ActionOwnerView},
		{"role:owner", ObjectOwner, ActionOwnerCreate},
		{"role:owner", ObjectWhatsApp, ActionWhatsAppView},
		{"role:owner", ObjectWhatsApp, ActionWhatsAppSend},
		{"role:owner", ObjectBusinessHours, ActionBusinessHoursView},
		{"role:owner", ObjectBusinessHours, ActionBusinessHoursUpdate},
		{"role:owner", ObjectMember, ActionMemberView},
		{"role:owner", ObjectMember, ActionMemberCreate},
		{"role:owner", ObjectMember, ActionMemberUpdate},
		{"role:owner", ObjectSubscription, ActionSubscriptionView},
		{"role:owner", ObjectSubscription, ActionSubscriptionUpgrade},
		{"role:owner", ObjectSettings, ActionSettingsManage},
		{"role:owner", ObjectBilling, ActionBillingView},

		// System permissions (for automated processes)
		{"role:system", ObjectSubscription, ActionSubscriptionExpire},
	}

	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
