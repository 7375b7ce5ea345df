package service_test

import (
	"context"
	"testing"
	"time"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/service"
	"go-pos-admin/internal/testutil"
	"go-pos-admin/internal/ws"
	"go-pos-admin/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB, pub service.Publisher) service.AuthService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens := jwt.NewManager("test-secret", 7*24*time.Hour, "pos-admin-test")
	return service.NewAuthService(repository.NewStaffRepo(db), repository.NewRedisSessionStore(client), tokens, pub, zerolog.Nop())
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newAuthService(t, e.db, nil)

	resp, err := svc.Login(ctx, e.admin.Email, testutil.TestPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), resp.ExpiresAt, time.Minute)
	assert.Equal(t, e.admin.ID, resp.Staff.ID)

	staff, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, e.admin.ID, staff.ID)
	assert.Empty(t, staff.Password)
	assert.True(t, staff.IsSuper())
	assert.Equal(t, e.admin.BrandIDs(), staff.BrandIDs())

	pinResp, err := svc.PinLogin(ctx, e.admin.Email, testutil.TestPin)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Token, pinResp.Token)
}

func TestAuthService_LoginFailures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newAuthService(t, e.db, nil)
	inactive := e.staff(t, testutil.StaffOpts{Status: model.StatusInactive})
	noPin := e.staff(t, testutil.StaffOpts{NoPin: true})

	_, err := svc.Login(ctx, "nobody@test", testutil.TestPassword)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Login(ctx, e.admin.Email, "wrong")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Login(ctx, inactive.Email, "wrong")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Login(ctx, inactive.Email, testutil.TestPassword)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.PinLogin(ctx, noPin.Email, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestAuthService_InactiveStaffWithValidToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newAuthService(t, e.db, nil)
	staff := e.staff(t, testutil.StaffOpts{})

	resp, err := svc.Login(ctx, staff.Email, testutil.TestPassword)
	require.NoError(t, err)

	require.NoError(t, e.db.Model(&model.Staff{}).Where("id = ?", staff.ID).Update("status", model.StatusInactive).Error)
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, e.db.Model(&model.Staff{}).Where("id = ?", staff.ID).Update("status", model.StatusBanned).Error)
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newAuthService(t, e.db, nil)

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	forged, _, err := jwt.NewManager("other-secret", time.Hour, "x").GenerateToken(e.admin.ID)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newAuthService(t, e.db, nil)

	first, err := svc.Login(ctx, e.admin.Email, testutil.TestPassword)
	require.NoError(t, err)
	second, err := svc.Login(ctx, e.admin.Email, testutil.TestPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, first.Token))
	_, err = svc.Authenticate(ctx, first.Token)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, second.Token)
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestAuthService_ChangePassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newAuthService(t, e.db, nil)

	err := svc.ChangePassword(ctx, e.admin, "wrong", "brand-new-pass")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	err = svc.ChangePassword(ctx, e.admin, testutil.TestPassword, "abc")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, e.admin, testutil.TestPassword, "brand-new-pass"))
	_, err = svc.Login(ctx, e.admin.Email, testutil.TestPassword)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	_, err = svc.Login(ctx, e.admin.Email, "brand-new-pass")
	assert.NoError(t, err)
}

func TestAuthService_HeartbeatAnnouncesPresence(t *testing.T) {
	e := newEnv(t)
	rec := &recorder{}
	svc := newAuthService(t, e.db, rec)

	require.NoError(t, svc.Heartbeat(context.Background(), e.admin))
	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ws.EventPresence, events[0].Type)
	assert.Equal(t, e.brand.ID, events[0].BrandID)
	assert.Equal(t, e.admin.ID, events[0].StaffID)

	staff := identity(t, e.db, e.admin.ID)
	assert.NotNil(t, staff.LastSeenAt)
}
