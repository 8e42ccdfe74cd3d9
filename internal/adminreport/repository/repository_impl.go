package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vetcita/vetcita/internal/adminreport/domain"
	subdomain "github.com/vetcita/vetcita/internal/subscription/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	"github.com/vetcita/vetcita/pkg/db/option"
	pkgrepo "github.com/vetcita/vetcita/pkg/repository"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindAllSubscriptions(ctx context.Context, db *gorm.DB) ([]subdomain.TenantSubscription, error) {
	store := pkgrepo.ProvideStore[subdomain.TenantSubscription](db)
	rows, err := store.Find(ctx, &subdomain.TenantSubscription{}, option.WithOrder("created_at ASC"))
	if err != nil {
		return nil, err
	}
	items := make([]subdomain.TenantSubscription, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row)
	}
	return items, nil
}

func (r *repo) CountTenants(ctx context.Context, db *gorm.DB) (int64, error) {
	return pkgrepo.ProvideStore[tenantdomain.Tenant](db).Count(ctx, &tenantdomain.Tenant{})
}

func (r *repo) CountTrialTenants(ctx context.Context, db *gorm.DB) (int64, error) {
	return pkgrepo.ProvideStore[tenantdomain.Tenant](db).Count(ctx, &tenantdomain.Tenant{IsTrialPeriod: true})
}
