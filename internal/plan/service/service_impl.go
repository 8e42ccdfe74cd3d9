package service

import (
	"context"

	"github.com/vetcita/vetcita/internal/plan/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log *zap.Logger
}

type Service struct {
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{log: p.Log.Named("plan.service")}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	plans := domain.Catalog()
	resp := make([]domain.Response, 0, len(plans))
	for _, p := range plans {
		if !p.Active {
			continue
		}
		resp = append(resp, toResponse(p))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, code string) (*domain.Response, error) {
	p, ok := domain.Lookup(code)
	if !ok {
		return nil, domain.ErrUnknownPlan
	}
	resp := toResponse(p)
	return &resp, nil
}

func toResponse(p domain.Plan) domain.Response {
	return domain.Response{
		Code:               p.Code,
		Name:               p.Name,
		Rank:               p.Rank,
		MonthlyPrice:       p.MonthlyPrice,
		AnnualPrice:        p.AnnualPrice,
		AnnualSavings:      domain.AnnualSavings(p.Code),
		MaxPets:            p.MaxPets,
		MaxUsers:           p.MaxUsers,
		MaxWhatsAppMonthly: p.MaxWhatsAppMonthly,
		MaxCashRegisters:   p.MaxCashRegisters,
		Automations:        p.Automations,
		AdvancedReports:    p.AdvancedReports,
		MultiDoctor:        p.MultiDoctor,
		SMSReminders:       p.SMSReminders,
		AdvancedInventory:  p.AdvancedInventory,
	}
}
