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
	"github.com/vetcita/vetcita/internal/tenantctx"
	"github.com/vetcita/vetcita/internal/whatsapp/domain"
	whatsapprepo "github.com/vetcita/vetcita/internal/whatsapp/repository"
	"github.com/vetcita/vetcita/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.WhatsAppMessage{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := &Service{
		db:    dbConn,
		log:   zap.NewNop(),
		genID: node,
		clock: fake,
		repo:  whatsapprepo.Provide(),
	}
	return svc, dbConn
}

func tenantCtx(tenantID int64) context.Context {
	return tenantctx.WithTenantID(context.Background(), snowflake.ID(tenantID))
}

func TestSendValidatesInput(t *testing.T) {
	svc, _ := setupService(t)
	ctx := tenantCtx(101)

	_, err := svc.Send(ctx, domain.SendRequest{ToPhone: "  ", Body: "hola"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	_, err = svc.Send(ctx, domain.SendRequest{ToPhone: "+5215512345678", Body: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyBody)

	_, err = svc.Send(context.Background(), domain.SendRequest{ToPhone: "+5215512345678", Body: "hola"})
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
}

func TestSendQueuesMessage(t *testing.T) {
	svc, dbConn := setupService(t)
	ctx := tenantCtx(101)

	resp, err := svc.Send(ctx, domain.SendRequest{ToPhone: "+5215512345678", Body: "Recordatorio de cita"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQueued, resp.Status)

	var count int64
	require.NoError(t, dbConn.Model(&domain.WhatsAppMessage{}).Where("tenant_id = ?", 101).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, _ := setupService(t)
	ctx := tenantCtx(101)

	for i := 0; i < 5; i++ {
		_, err := svc.Send(ctx, domain.SendRequest{ToPhone: "+5215512345678", Body: "mensaje"})
		require.NoError(t, err)
	}

	first, pageInfo, err := svc.List(ctx, pagination.Pagination{PageSize: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.True(t, pageInfo.HasMore)
	require.NotEmpty(t, pageInfo.NextPageToken)

	second, pageInfo, err := svc.List(ctx, pagination.Pagination{PageSize: 3, PageToken: pageInfo.NextPageToken})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.False(t, pageInfo.HasMore)
	assert.Empty(t, pageInfo.NextPageToken)

	// Snowflake IDs are time ordered, so newest first means strictly
	// descending IDs across both pages.
	seen := append(append([]domain.Response{}, first...), second...)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i-1].ID, seen[i].ID)
	}
}

func TestListRejectsGarbageToken(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.List(tenantCtx(101), pagination.Pagination{PageToken: "not-a-cursor"})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

func TestListScopedToTenant(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Send(tenantCtx(101), domain.SendRequest{ToPhone: "+5215512345678", Body: "hola"})
	require.NoError(t, err)

	items, _, err := svc.List(tenantCtx(202), pagination.Pagination{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
