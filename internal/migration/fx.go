package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	analyticsdomain "github.com/vetcita/vetcita/internal/analytics/domain"
	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	businesshoursdomain "github.com/vetcita/vetcita/internal/businesshours/domain"
	"github.com/vetcita/vetcita/internal/config"
	memberdomain "github.com/vetcita/vetcita/internal/member/domain"
	petdomain "github.com/vetcita/vetcita/internal/pet/domain"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"github.com/vetcita/vetcita/internal/seed"
	subscriptiondomain "github.com/vetcita/vetcita/internal/subscription/domain"
	superadmindomain "github.com/vetcita/vetcita/internal/superadmin/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	whatsappdomain "github.com/vetcita/vetcita/internal/whatsapp/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql fall back to gorm's schema sync.
			if err := conn.AutoMigrate(
				&tenantdomain.Tenant{},
				&authdomain.User{},
				&authdomain.Session{},
				&memberdomain.TenantMember{},
				&plandomain.Plan{},
				&subscriptiondomain.TenantSubscription{},
				&petdomain.Owner{},
				&petdomain.Pet{},
				&whatsappdomain.WhatsAppMessage{},
				&superadmindomain.SuperAdmin{},
				&businesshoursdomain.BusinessHoursSetting{},
				&businesshoursdomain.BusinessHoursOverride{},
				&analyticsdomain.AnalyticsEvent{},
			); err != nil {
				return err
			}
		}

		return seed.EnsurePlans(conn)
	}),
)
