package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vetcita/vetcita/internal/businesshours/domain"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultLocation = "principal"

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("businesshours.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, location string) (*domain.Schedule, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}
	loc := normalizeLocation(location)

	setting, err := s.repo.FindSetting(ctx, s.db, int64(tenantID), loc)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}

	overrides, err := s.repo.FindOverrides(ctx, s.db, int64(tenantID), loc)
	if err != nil {
		return nil, err
	}

	return &domain.Schedule{Setting: *setting, Overrides: overrides}, nil
}

// Update resolves the target setting by id first, then by (tenant,
// location), and creates it when neither matches. Incoming persisted-only
// fields are ignored rather than rejected so clients can round-trip a
// fetched record.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Schedule, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}
	id := int64(tenantID)
	loc := normalizeLocation(req.Location)

	if err := validateTime(req.DefaultOpenTime, false); err != nil {
		return nil, err
	}
	if err := validateTime(req.DefaultCloseTime, false); err != nil {
		return nil, err
	}
	if err := validateTimePtr(req.DefaultLunchStart); err != nil {
		return nil, err
	}
	if err := validateTimePtr(req.DefaultLunchEnd); err != nil {
		return nil, err
	}
	for _, o := range req.Overrides {
		if o.DayOfWeek < 0 || o.DayOfWeek > 6 {
			return nil, domain.ErrInvalidDay
		}
		if err := validateTimePtr(o.OpenTime); err != nil {
			return nil, err
		}
		if err := validateTimePtr(o.CloseTime); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	var result *domain.Schedule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		setting, err := s.resolveSetting(ctx, tx, id, req.ID, loc)
		if err != nil {
			return err
		}
		if setting == nil {
			setting = &domain.BusinessHoursSetting{
				ID:        s.genID.Generate().Int64(),
				TenantID:  id,
				Location:  loc,
				CreatedAt: now,
			}
		}

		setting.DefaultOpenTime = req.DefaultOpenTime
		setting.DefaultCloseTime = req.DefaultCloseTime
		setting.DefaultLunchStart = req.DefaultLunchStart
		setting.DefaultLunchEnd = req.DefaultLunchEnd
		setting.UpdatedAt = now
		if err := s.repo.SaveSetting(ctx, tx, setting); err != nil {
			return err
		}

		for _, o := range req.Overrides {
			if err := s.upsertOverride(ctx, tx, id, setting.Location, o, now); err != nil {
				return err
			}
		}

		overrides, err := s.repo.FindOverrides(ctx, tx, id, setting.Location)
		if err != nil {
			return err
		}
		result = &domain.Schedule{Setting: *setting, Overrides: overrides}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) resolveSetting(ctx context.Context, tx *gorm.DB, tenantID, settingID int64, location string) (*domain.BusinessHoursSetting, error) {
	if settingID != 0 {
		setting, err := s.repo.FindSettingByID(ctx, tx, tenantID, settingID)
		if err != nil {
			return nil, err
		}
		if setting != nil {
			return setting, nil
		}
	}
	return s.repo.FindSetting(ctx, tx, tenantID, location)
}

// upsertOverride updates by id when given, else by the (tenant, location,
// day) natural key, else creates.
func (s *Service) upsertOverride(ctx context.Context, tx *gorm.DB, tenantID int64, location string, req domain.OverrideRequest, now time.Time) error {
	var existing *domain.BusinessHoursOverride
	var err error

	if req.ID != 0 {
		existing, err = s.repo.FindOverrideByID(ctx, tx, tenantID, req.ID)
		if err != nil {
			return err
		}
	}
	if existing == nil {
		existing, err = s.repo.FindOverrideByDay(ctx, tx, tenantID, location, req.DayOfWeek)
		if err != nil {
			return err
		}
	}
	if existing == nil {
		existing = &domain.BusinessHoursOverride{
			ID:        s.genID.Generate().Int64(),
			TenantID:  tenantID,
			Location:  location,
			DayOfWeek: req.DayOfWeek,
			CreatedAt: now,
		}
	}

	existing.DayOfWeek = req.DayOfWeek
	existing.OpenTime = req.OpenTime
	existing.CloseTime = req.CloseTime
	existing.Closed = req.Closed
	existing.UpdatedAt = now
	return s.repo.SaveOverride(ctx, tx, existing)
}

func normalizeLocation(raw string) string {
	loc := strings.TrimSpace(strings.ToLower(raw))
	if loc == "" {
		return defaultLocation
	}
	return loc
}

func validateTime(raw string, optional bool) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		if optional {
			return nil
		}
		return domain.ErrInvalidTime
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return domain.ErrInvalidTime
	}
	return nil
}

// validateTimePtr accepts nil: an explicit null clears the stored value.
func validateTimePtr(raw *string) error {
	if raw == nil {
		return nil
	}
	return validateTime(*raw, true)
}
