package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outings-api/core/constants"
	"outings-api/core/errors"
	"outings-api/modules/activity/repository"
	"outings-api/modules/auth/dto"
)

func newSeededService(t *testing.T) *AuthService {
	t.Helper()
	store := repository.NewStore()
	seed, err := repository.DefaultSeed(time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), seed))
	return NewAuthService(store)
}

func TestAuthService_Login(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()

	resp, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "  Alice@Example.com "})
	require.Nil(t, appErr)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, constants.HeaderUserID, resp.Header)

	_, appErr = svc.Login(ctx, &dto.LoginRequest{Email: "zoe@example.com"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.Equal(t, "Aucun utilisateur trouvé avec cet email.", appErr.Message)
}

func TestAuthService_Signup(t *testing.T) {
	svc := newSeededService(t)

	appErr := svc.Signup(context.Background(), &dto.SignupRequest{Name: "Zoé", Email: "zoe@example.com"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotImplemented, appErr.Code)
	assert.Equal(t, constants.MsgSignupNotAvailable, appErr.Message)
}

func TestAuthService_ResolveUser(t *testing.T) {
	svc := newSeededService(t)

	user, appErr := svc.ResolveUser(context.Background(), "user-2")
	require.Nil(t, appErr)
	assert.Equal(t, "Bob", user.Name)

	_, appErr = svc.ResolveUser(context.Background(), "user-9")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
