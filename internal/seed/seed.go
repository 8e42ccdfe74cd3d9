package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
)

// EnsurePlans seeds the plans table from the in-code catalog so reporting
// queries can join on plan_code. Existing rows are refreshed in place, the
// catalog stays the source of truth.
func EnsurePlans(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, plan := range plandomain.Catalog() {
			if err := ensurePlanTx(ctx, tx, node, plan); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensurePlanTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, plan plandomain.Plan) error {
	var existing plandomain.Plan
	err := tx.WithContext(ctx).Where("code = ?", plan.Code).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		plan.ID = int64(node.Generate())
		now := time.Now().UTC()
		plan.CreatedAt = now
		plan.UpdatedAt = now
		plan.Active = true
		return tx.WithContext(ctx).Create(&plan).Error
	}

	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = time.Now().UTC()
	plan.Active = existing.Active
	return tx.WithContext(ctx).Save(&plan).Error
}
