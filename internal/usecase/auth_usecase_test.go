package usecase

import (
	"context"
	"testing"
	"time"

	"go-clinic-booking/config"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	uc     AuthUsecase
	users  *fakeUserRepo
	tokens *fakeTokenStore
	jwt    *jwt.JWTService
	audit  *fakeAuditService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	f := authFixture{
		users:  newFakeUserRepo(),
		tokens: newFakeTokenStore(),
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: time.Hour,
		}),
		audit: &fakeAuditService{},
	}
	f.uc = NewAuthUsecase(nil, quietLogger(), f.users, f.jwt, f.tokens, f.audit)
	f.uc.(*authUsecase).hashCost = bcrypt.MinCost

	require.NoError(t, f.uc.EnsureAdmin(context.Background(), "admin@clinic.test", "s3cret-pass"))
	return f
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.uc.EnsureAdmin(context.Background(), "admin@clinic.test", "other-pass"))
	require.NoError(t, f.uc.EnsureAdmin(context.Background(), "", ""))
	require.Len(t, f.users.rows, 1)

	for _, u := range f.users.rows {
		assert.Equal(t, entity.RoleIDAdmin, u.RoleID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")))
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "admin@clinic.test", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	claims, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.AccessToken, claims.TokenType)
	assert.Equal(t, entity.RoleIDAdmin, claims.RoleID)

	exists, err := f.tokens.Exists(context.Background(), claims.UserID, jwt.AccessToken, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{entity.AuditActionUserLogin}, f.audit.actions)
}

func TestLogin_Rejections(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "admin@clinic.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@clinic.test", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	inactive := false
	for id, u := range f.users.rows {
		u.IsActive = &inactive
		f.users.rows[id] = u
	}
	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{Email: "admin@clinic.test", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, f.tokens.keys)
}

func TestRefreshToken_RotatesOnce(t *testing.T) {
	f := newAuthFixture(t)
	first, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "admin@clinic.test", Password: "s3cret-pass"})
	require.NoError(t, err)

	second, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: second.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	f := newAuthFixture(t)
	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "admin@clinic.test", Password: "s3cret-pass"})
	require.NoError(t, err)

	access, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), access.UserID, access.TokenID, refresh.TokenID))
	assert.Empty(t, f.tokens.keys)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestCreateStaff(t *testing.T) {
	f := newAuthFixture(t)
	req := &dto.CreateStaffRequest{Email: "desk@clinic.test", Password: "password123", FullName: "Front Desk"}

	staff, err := f.uc.CreateStaff(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, staff.Role)
	assert.True(t, staff.IsActive)

	me, err := f.uc.GetCurrentUser(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", me.FullName)

	_, err = f.uc.CreateStaff(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}
