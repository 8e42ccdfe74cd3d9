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
	authrepo "github.com/vetcita/vetcita/internal/auth/repository"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/superadmin/domain"
	superadminrepo "github.com/vetcita/vetcita/internal/superadmin/repository"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSuperAdmin(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&authdomain.User{}, &domain.SuperAdmin{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		db:          dbConn,
		log:         zap.NewNop(),
		genID:       node,
		clock:       clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)),
		emailDomain: "vetcita.mx",
		repo:        superadminrepo.Provide(),
		userRepo:    authrepo.ProvideUserRepository(dbConn),
	}
	return svc, dbConn
}

func seedUser(t *testing.T, db *gorm.DB, id int64, email string) *authdomain.User {
	t.Helper()
	user := &authdomain.User{
		ID:          snowflake.ID(id),
		DisplayName: email,
		Email:       email,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAssignAndListDistinguishesGrantSource(t *testing.T) {
	svc, dbConn := setupSuperAdmin(t)
	explicit := seedUser(t, dbConn, 301, "dueno@clinica.mx")
	seedUser(t, dbConn, 302, "soporte@vetcita.mx")

	entry, err := svc.Assign(context.Background(), domain.AssignRequest{Email: explicit.Email})
	require.NoError(t, err)
	assert.True(t, entry.AssignedByRole)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byEmail := map[string]domain.Entry{}
	for _, e := range entries {
		byEmail[e.Email] = e
	}
	assert.True(t, byEmail["dueno@clinica.mx"].AssignedByRole)
	assert.False(t, byEmail["soporte@vetcita.mx"].AssignedByRole)
}

func TestAssignRequiresIdentifier(t *testing.T) {
	svc, _ := setupSuperAdmin(t)

	_, err := svc.Assign(context.Background(), domain.AssignRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingIdentifier)

	_, err = svc.Assign(context.Background(), domain.AssignRequest{Email: "nadie@clinica.mx"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRemoveRejectsSelf(t *testing.T) {
	svc, dbConn := setupSuperAdmin(t)
	admin := seedUser(t, dbConn, 303, "admin@clinica.mx")

	_, err := svc.Assign(context.Background(), domain.AssignRequest{Email: admin.Email})
	require.NoError(t, err)

	ctx := tenantctx.WithUserID(context.Background(), admin.ID)
	err = svc.Remove(ctx, domain.RemoveRequest{UserID: admin.ID.String()})
	assert.ErrorIs(t, err, domain.ErrSelfRemoval)

	// A different actor may remove the grant.
	other := seedUser(t, dbConn, 304, "otro@clinica.mx")
	ctx = tenantctx.WithUserID(context.Background(), other.ID)
	require.NoError(t, svc.Remove(ctx, domain.RemoveRequest{UserID: admin.ID.String()}))

	ok, err := svc.IsSuperAdmin(context.Background(), admin.ID.Int64())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsSuperAdminByEmailDomain(t *testing.T) {
	svc, dbConn := setupSuperAdmin(t)
	user := seedUser(t, dbConn, 305, "ops@vetcita.mx")

	ok, err := svc.IsSuperAdmin(context.Background(), user.ID.Int64())
	require.NoError(t, err)
	assert.True(t, ok)

	outsider := seedUser(t, dbConn, 306, "vet@clinica.mx")
	ok, err = svc.IsSuperAdmin(context.Background(), outsider.ID.Int64())
	require.NoError(t, err)
	assert.False(t, ok)
}
