package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medville/medjobs/internal/apperrors"
	"github.com/medville/medjobs/internal/auth"
	"github.com/medville/medjobs/internal/dtos"
	"github.com/medville/medjobs/internal/models"
	"github.com/medville/medjobs/internal/store"
)

func authFixture(t *testing.T) (*AuthService, *auth.TokenManager, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	tokens := auth.NewTokenManager("test-secret")
	return NewAuthService(m, m, tokens), tokens, m
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens, m := authFixture(t)

	city := &models.City{Name: "Rennes"}
	require.NoError(t, m.CreateCity(ctx, city))

	user, err := svc.Signup(ctx, &dtos.SignupRequest{
		Mail:      "doc@example.org",
		Password:  "s3cret",
		FirstName: "Anne",
		LastName:  "Moreau",
		City:      "Rennes",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	require.NotNil(t, user.CityID)
	assert.Equal(t, city.ID, *user.CityID)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")

	result, err := svc.Login(ctx, &dtos.LoginRequest{Mail: "doc@example.org", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, "Anne", result.FirstName)

	tokenUser, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, tokenUser)
}

func TestSignupUnknownCityIsNotLinked(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := authFixture(t)

	user, err := svc.Signup(ctx, &dtos.SignupRequest{Mail: "doc@example.org", Password: "pw", City: "Atlantis"})
	require.NoError(t, err)
	assert.Nil(t, user.CityID)
}

func TestSignupDuplicateMail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := authFixture(t)

	_, err := svc.Signup(ctx, &dtos.SignupRequest{Mail: "doc@example.org", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Signup(ctx, &dtos.SignupRequest{Mail: "doc@example.org", Password: "pw"})
	requireKind(t, err, apperrors.KindConflict)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := authFixture(t)

	_, err := svc.Login(ctx, &dtos.LoginRequest{Mail: "nobody@example.org", Password: "pw"})
	requireKind(t, err, apperrors.KindUnauthorized)

	_, err = svc.Signup(ctx, &dtos.SignupRequest{Mail: "doc@example.org", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, &dtos.LoginRequest{Mail: "doc@example.org", Password: "wrong"})
	requireKind(t, err, apperrors.KindUnauthorized)
}
